package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/utils"
)

// Frame is the tagged variant every wire frame implements: Stream, Ack,
// CongestionFeedback, RstStream, ConnectionClose, GoAway, Padding, plus the
// StopWaiting and Blocked frames folded in from the originating
// implementation.
type Frame interface {
	// Write appends the frame's wire encoding, including its type byte, to b.
	Write(b *utils.ByteBuilder, version protocol.VersionNumber) error
	// MinLength is the size this frame occupies when it is not truncated
	// and not the last frame in the packet (i.e. with any optional length
	// field present).
	MinLength(version protocol.VersionNumber) (protocol.ByteCount, error)
}
