package protocol

// PacketNumber is the packet sequence number, as sent on the wire.
type PacketNumber uint64

// PacketNumberLen is the length, in bytes, used to encode a PacketNumber
// on the wire. The wire format only allows four widths.
type PacketNumberLen uint8

const (
	PacketNumberLen1 PacketNumberLen = 1
	PacketNumberLen2 PacketNumberLen = 2
	PacketNumberLen4 PacketNumberLen = 4
	PacketNumberLen6 PacketNumberLen = 6
)

const (
	packetNumberLen1Mask PacketNumber = 0x00000000000000ff
	packetNumberLen2Mask PacketNumber = 0x000000000000ffff
	packetNumberLen4Mask PacketNumber = 0x00000000ffffffff
	packetNumberLen6Mask PacketNumber = 0x0000ffffffffffff
)

// Mask returns the wire-width bitmask for this PacketNumberLen.
func (l PacketNumberLen) Mask() PacketNumber {
	switch l {
	case PacketNumberLen1:
		return packetNumberLen1Mask
	case PacketNumberLen2:
		return packetNumberLen2Mask
	case PacketNumberLen4:
		return packetNumberLen4Mask
	case PacketNumberLen6:
		return packetNumberLen6Mask
	default:
		return 0
	}
}

// EpochDelta is the size of the full-sequence-number interval this wire
// width can represent: 2^(8*len).
func (l PacketNumberLen) EpochDelta() PacketNumber {
	return l.Mask() + 1
}

// PacketNumberLengthForHeader selects the smallest wire width that still
// lets the receiver reconstruct packetNumber unambiguously given the
// lowest in-flight packet number it has not yet acknowledged. This mirrors
// the sender-side heuristic of the originating implementation: a width is
// usable as long as the gap between the packet being sent and the least
// unacked packet fits in less than half that width's range.
func PacketNumberLengthForHeader(packetNumber, leastUnacked PacketNumber) PacketNumberLen {
	var delta PacketNumber
	if packetNumber > leastUnacked {
		delta = packetNumber - leastUnacked
	}
	if delta < PacketNumber(1)<<(uint(PacketNumberLen1)*8-1) {
		return PacketNumberLen1
	}
	if delta < PacketNumber(1)<<(uint(PacketNumberLen2)*8-1) {
		return PacketNumberLen2
	}
	if delta < PacketNumber(1)<<(uint(PacketNumberLen4)*8-1) {
		return PacketNumberLen4
	}
	return PacketNumberLen6
}
