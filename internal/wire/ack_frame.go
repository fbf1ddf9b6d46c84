package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// InvalidDeltaTime is the sentinel that marks delta_time_largest_observed_us
// as unknown/infinite.
const InvalidDeltaTime uint32 = 0xffffffff

// EntropyOracle supplies the coarse per-packet entropy hash the connection
// layer uses to detect ack forgery. The framer never computes it itself —
// it only asks the oracle when an ACK frame has to be truncated and its
// received-entropy field rewritten to match the shorter missing set.
type EntropyOracle interface {
	EntropyHashUpTo(largest protocol.PacketNumber) uint8
}

// AckFrame reports what the sender has received: its own send-entropy plus
// everything it knows about what arrived (and what didn't) from the peer.
type AckFrame struct {
	SentEntropy     uint8
	LeastUnacked    protocol.PacketNumber
	ReceivedEntropy uint8
	LargestObserved protocol.PacketNumber
	DeltaTimeUs     uint32 // InvalidDeltaTime means unknown/infinite
	MissingPackets  []protocol.PacketNumber
	Oracle          EntropyOracle
}

// minAckFrameSize is the fixed-size part of an ACK frame: type byte, sent
// entropy + least-unacked, received entropy + largest-observed, delta
// time, and the missing-packet count byte.
const minAckFrameSize protocol.ByteCount = 1 + 1 + 6 + 1 + 6 + 4 + 1

// MinLength reports the frame's encoded size with its full missing set.
func (f *AckFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	return minAckFrameSize + 6*protocol.ByteCount(len(f.MissingPackets)), nil
}

func (f *AckFrame) entropyHashUpTo(largest protocol.PacketNumber) uint8 {
	if f.Oracle == nil {
		return 0
	}
	return f.Oracle.EntropyHashUpTo(largest)
}

// Write appends the ACK frame. If b does not have room for the full
// missing-packet set, it truncates: it stops at the last missing packet
// number that fit, rewrites received-entropy/largest-observed/delta-time/
// num-missing in place to describe exactly what was emitted, and returns
// successfully rather than failing. This is the only frame-level local
// recovery besides ConnectionClose's embedded ack doing the same.
func (f *AckFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(0x01); err != nil {
		return err
	}
	if err := b.WriteUint8(f.SentEntropy); err != nil {
		return err
	}
	if err := b.WriteUint48(uint64(f.LeastUnacked)); err != nil {
		return err
	}

	receivedEntropyOffset := b.Len()
	if err := b.WriteUint8(f.ReceivedEntropy); err != nil {
		return err
	}
	largestObservedOffset := b.Len()
	if err := b.WriteUint48(uint64(f.LargestObserved)); err != nil {
		return err
	}
	deltaTimeOffset := b.Len()
	if err := b.WriteUint32(f.DeltaTimeUs); err != nil {
		return err
	}
	numMissingOffset := b.Len()
	if err := b.WriteUint8(uint8(len(f.MissingPackets))); err != nil {
		return err
	}

	written := 0
	for _, pn := range f.MissingPackets {
		if err := b.WriteUint48(uint64(pn)); err != nil {
			largest := calculateLargestObserved(f.MissingPackets, written-1)
			if werr := b.WriteAt(receivedEntropyOffset, uint64(f.entropyHashUpTo(largest)), 1); werr != nil {
				return werr
			}
			if werr := b.WriteAt(largestObservedOffset, uint64(largest), 6); werr != nil {
				return werr
			}
			if werr := b.WriteAt(deltaTimeOffset, uint64(InvalidDeltaTime), 4); werr != nil {
				return werr
			}
			if werr := b.WriteAt(numMissingOffset, uint64(written), 1); werr != nil {
				return werr
			}
			return nil
		}
		written++
	}
	return nil
}

// calculateLargestObserved derives the rewritten largest_observed for a
// truncated ACK: the predecessor of a gap right after the last missing
// packet that fit, or that packet itself if the full missing set continues
// unbroken from there.
func calculateLargestObserved(missing []protocol.PacketNumber, lastWrittenIdx int) protocol.PacketNumber {
	if lastWrittenIdx < 0 {
		if len(missing) > 0 {
			return missing[0] - 1
		}
		return 0
	}
	previousMissing := missing[lastWrittenIdx]
	if lastWrittenIdx+1 < len(missing) && previousMissing+1 != missing[lastWrittenIdx+1] {
		return missing[lastWrittenIdx+1] - 1
	}
	return previousMissing
}

// parseAckFrame decodes an ACK frame body (the type byte has already been
// consumed by the caller).
func parseAckFrame(c *utils.ByteCursor) (*AckFrame, error) {
	f := &AckFrame{}
	var err error
	if f.SentEntropy, err = c.ReadUint8(); err != nil {
		return nil, qerr.Error(qerr.InvalidAckData, "unable to read sent entropy")
	}
	leastUnacked, err := c.ReadUint48()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidAckData, "unable to read least unacked")
	}
	f.LeastUnacked = protocol.PacketNumber(leastUnacked)

	if f.ReceivedEntropy, err = c.ReadUint8(); err != nil {
		return nil, qerr.Error(qerr.InvalidAckData, "unable to read received entropy")
	}
	largestObserved, err := c.ReadUint48()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidAckData, "unable to read largest observed")
	}
	f.LargestObserved = protocol.PacketNumber(largestObserved)

	if f.DeltaTimeUs, err = c.ReadUint32(); err != nil {
		return nil, qerr.Error(qerr.InvalidAckData, "unable to read delta time")
	}

	numMissing, err := c.ReadUint8()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidAckData, "unable to read num missing packets")
	}
	f.MissingPackets = make([]protocol.PacketNumber, 0, numMissing)
	var prev protocol.PacketNumber
	for i := 0; i < int(numMissing); i++ {
		pn, err := c.ReadUint48()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidAckData, "unable to read missing packet")
		}
		next := protocol.PacketNumber(pn)
		if i > 0 && next <= prev {
			return nil, qerr.Error(qerr.InvalidAckData, "missing packets not in ascending order")
		}
		f.MissingPackets = append(f.MissingPackets, next)
		prev = next
	}
	return f, nil
}
