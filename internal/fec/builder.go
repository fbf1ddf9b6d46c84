// Package fec implements the FEC (forward error correction) group
// bookkeeping a sender uses to build one XOR-redundancy packet covering a
// run of data packets, and the receiver-side XOR needed to revive a
// packet that never arrived but whose group's redundancy packet did.
package fec

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
)

// Builder accumulates packets into one FEC group and produces the XOR
// redundancy payload covering them. A group's packets lie at most
// protocol.MaxFECGroupOffset packet numbers past its first packet, since
// the wire format identifies a group's first packet as a 1-byte offset
// below the packet carrying it.
type Builder struct {
	groupNumber protocol.PacketNumber
	lastAdded   protocol.PacketNumber
	redundancy  []byte
	numPackets  int
}

// NewBuilder returns an empty, inactive Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Active reports whether a group is currently open.
func (b *Builder) Active() bool { return b.numPackets > 0 }

// GroupNumber is the sequence number of the group's first packet.
func (b *Builder) GroupNumber() protocol.PacketNumber { return b.groupNumber }

// NumPackets is how many packets have been folded into the current group.
func (b *Builder) NumPackets() int { return b.numPackets }

// AddPacket folds one packet's payload into the group's running XOR. The
// first call in a group establishes the group's number.
func (b *Builder) AddPacket(packetNumber protocol.PacketNumber, payload []byte) error {
	if b.numPackets == 0 {
		b.groupNumber = packetNumber
		b.redundancy = make([]byte, len(payload))
		copy(b.redundancy, payload)
		b.numPackets = 1
		b.lastAdded = packetNumber
		return nil
	}
	if packetNumber <= b.lastAdded {
		return qerr.Error(qerr.InvalidFrameData, "FEC packets must be added in increasing order")
	}
	if uint64(packetNumber-b.groupNumber) > protocol.MaxFECGroupOffset {
		return qerr.Error(qerr.InvalidFrameData, "FEC group span exceeds the maximum offset")
	}
	b.redundancy = xor(b.redundancy, payload)
	b.numPackets++
	b.lastAdded = packetNumber
	return nil
}

// Redundancy returns the group's current XOR payload. It is valid to call
// mid-group (e.g. to size a packet) as well as once the group is closed.
func (b *Builder) Redundancy() []byte {
	return b.redundancy
}

// Reset clears the builder so it's ready to start a new group.
func (b *Builder) Reset() {
	b.groupNumber = 0
	b.lastAdded = 0
	b.redundancy = nil
	b.numPackets = 0
}

// xor combines a and b byte-wise, zero-extending the shorter operand, and
// returns a new slice sized to the longer of the two — the same rule the
// group's running redundancy uses to cover packets of differing length.
func xor(a, b []byte) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = av ^ bv
	}
	return out
}

// Revive reconstructs a missing packet's payload from its group's
// redundancy and every other packet's payload in that group.
func Revive(redundancy []byte, knownPayloads [][]byte) []byte {
	out := redundancy
	for _, p := range knownPayloads {
		out = xor(out, p)
	}
	return out
}
