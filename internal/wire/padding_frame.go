package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/utils"
)

// PaddingFrame fills the remainder of a packet: its general frame-type
// byte followed by zero bytes. A PADDING frame, once started, runs to the
// end of the packet: there's nothing after it to parse, so it carries no
// length field of its own.
type PaddingFrame struct {
	// NumPaddingBytes is how many bytes to emit, including this frame's
	// own type byte; the rest are 0x00.
	NumPaddingBytes int
}

func (f *PaddingFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	if f.NumPaddingBytes < 1 {
		return 1, nil
	}
	return protocol.ByteCount(f.NumPaddingBytes), nil
}

func (f *PaddingFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(encodeGeneralFrameType(generalFramePadding)); err != nil {
		return err
	}
	n := f.NumPaddingBytes - 1
	if n < 0 {
		n = 0
	}
	return b.WriteBytes(make([]byte, n))
}

// parsePaddingFrame consumes every remaining byte in c as padding, per the
// wire rule that a PADDING frame runs to end-of-packet.
func parsePaddingFrame(c *utils.ByteCursor) *PaddingFrame {
	return &PaddingFrame{NumPaddingBytes: c.Remaining() + 1}
}
