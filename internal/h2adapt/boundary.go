// Package h2adapt helps the stream-frame packer avoid splitting an
// HTTP/2 frame across two STREAM frames when it doesn't have to. A
// connection carrying HTTP/2 over QUIC streams (the way h2quic layers
// requests onto a QUIC connection) reassembles data correctly either
// way, but keeping each HTTP/2 frame whole within one STREAM frame saves
// the peer a reassembly buffer on the common path.
package h2adapt

import (
	"bytes"
	"io"

	"golang.org/x/net/http2"

	"github.com/quicwire/framer/internal/protocol"
)

// countingReader tracks how many bytes have been pulled through it, so
// FrameBoundaries can recover the byte offset of each HTTP/2 frame
// boundary from a sequence of http2.Framer.ReadFrame calls, which
// otherwise only ever hand back decoded frames, not offsets.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// FrameBoundaries returns the byte offset immediately after each complete
// HTTP/2 frame found at the start of data. It stops at the first error or
// truncated frame rather than failing: data is not guaranteed to hold
// only whole frames, since it may be a snapshot of a send buffer that
// hasn't finished filling yet.
func FrameBoundaries(data []byte) []int {
	cr := &countingReader{r: bytes.NewReader(data)}
	framer := http2.NewFramer(io.Discard, cr)

	var offsets []int
	for {
		if _, err := framer.ReadFrame(); err != nil {
			break
		}
		offsets = append(offsets, cr.n)
	}
	return offsets
}

// PreferredSplitPoint returns the largest HTTP/2 frame boundary within
// data that is at most maxLen, so a STREAM frame can be cut exactly
// there. It returns maxLen unchanged when data already fits within maxLen,
// or when no whole HTTP/2 frame ends at or before maxLen (plain stream
// data, or a first frame longer than maxLen).
func PreferredSplitPoint(data []byte, maxLen protocol.ByteCount) protocol.ByteCount {
	limit := int(maxLen)
	if limit >= len(data) {
		return maxLen
	}
	best := -1
	for _, off := range FrameBoundaries(data) {
		if off > limit {
			break
		}
		best = off
	}
	if best <= 0 {
		return maxLen
	}
	return protocol.ByteCount(best)
}
