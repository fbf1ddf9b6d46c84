package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// CongestionFeedbackType discriminates the three shapes a
// CongestionFeedbackFrame can take.
type CongestionFeedbackType uint8

const (
	CongestionFeedbackInterArrival CongestionFeedbackType = iota
	CongestionFeedbackFixRate
	CongestionFeedbackTCP
)

// ReceivedPacketTime is one entry of an InterArrival feedback report: a
// packet sequence number and the absolute time (microseconds since the
// framer's creation time) it was received at.
type ReceivedPacketTime struct {
	SequenceNumber protocol.PacketNumber
	TimeUs         uint64
}

// CongestionFeedbackFrame reports receiver-side congestion signal back to
// the sender. Exactly one of the type-specific fields is meaningful,
// selected by Type.
type CongestionFeedbackFrame struct {
	Type CongestionFeedbackType

	// InterArrival
	AccumulatedLost   uint16
	ReceivedPackets   []ReceivedPacketTime
	// FixRate
	BitrateBps uint32
	// TCP
	TCPAccumulatedLost uint16
	// ReceiveWindow is the logical window size. On the wire only
	// ReceiveWindow>>4 is transmitted (2 bytes); the low 4 bits are lost.
	ReceiveWindow uint32
}

const congestionFeedbackHeaderSize protocol.ByteCount = 1 + 1 // type byte + feedback-type byte

// MinLength computes the encoded size for f.Type.
func (f *CongestionFeedbackFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	length := congestionFeedbackHeaderSize
	switch f.Type {
	case CongestionFeedbackInterArrival:
		length += 2 + 1 // accumulated_lost, num_received
		if len(f.ReceivedPackets) > 0 {
			length += 6 + 8 // smallest_received, time_received_us
			length += protocol.ByteCount(len(f.ReceivedPackets)-1) * 6
		}
	case CongestionFeedbackFixRate:
		length += 4
	case CongestionFeedbackTCP:
		length += 2 + 2
	default:
		return 0, qerr.Error(qerr.InvalidCongestionFeedbackData, "illegal feedback type")
	}
	return length, nil
}

// Write appends the CONGESTION_FEEDBACK frame.
func (f *CongestionFeedbackFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(0x03); err != nil {
		return err
	}
	if err := b.WriteUint8(uint8(f.Type)); err != nil {
		return err
	}
	switch f.Type {
	case CongestionFeedbackInterArrival:
		if err := b.WriteUint16(f.AccumulatedLost); err != nil {
			return err
		}
		if len(f.ReceivedPackets) > 0xff {
			return qerr.Error(qerr.InvalidCongestionFeedbackData, "too many received packets")
		}
		if err := b.WriteUint8(uint8(len(f.ReceivedPackets))); err != nil {
			return err
		}
		if len(f.ReceivedPackets) == 0 {
			return nil
		}
		first := f.ReceivedPackets[0]
		if err := b.WriteUint48(uint64(first.SequenceNumber)); err != nil {
			return err
		}
		if err := b.WriteUint64(first.TimeUs); err != nil {
			return err
		}
		for _, rp := range f.ReceivedPackets[1:] {
			seqDelta := uint64(rp.SequenceNumber) - uint64(first.SequenceNumber)
			timeDelta := int64(rp.TimeUs) - int64(first.TimeUs)
			if err := b.WriteUint16(uint16(seqDelta)); err != nil {
				return err
			}
			if err := b.WriteUint32(uint32(int32(timeDelta))); err != nil {
				return err
			}
		}
		return nil
	case CongestionFeedbackFixRate:
		return b.WriteUint32(f.BitrateBps)
	case CongestionFeedbackTCP:
		if err := b.WriteUint16(f.TCPAccumulatedLost); err != nil {
			return err
		}
		return b.WriteUint16(uint16(f.ReceiveWindow >> 4))
	default:
		return qerr.Error(qerr.InvalidCongestionFeedbackData, "illegal feedback type")
	}
}

// parseCongestionFeedbackFrame decodes a CONGESTION_FEEDBACK frame body
// (the common type byte has already been consumed by the caller).
func parseCongestionFeedbackFrame(c *utils.ByteCursor) (*CongestionFeedbackFrame, error) {
	feedbackType, err := c.ReadUint8()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read feedback type")
	}
	f := &CongestionFeedbackFrame{Type: CongestionFeedbackType(feedbackType)}
	switch f.Type {
	case CongestionFeedbackInterArrival:
		if f.AccumulatedLost, err = c.ReadUint16(); err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read accumulated lost")
		}
		numReceived, err := c.ReadUint8()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read num received")
		}
		if numReceived == 0 {
			return f, nil
		}
		smallest, err := c.ReadUint48()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read smallest received")
		}
		timeUs, err := c.ReadUint64()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read time received")
		}
		f.ReceivedPackets = make([]ReceivedPacketTime, 0, numReceived)
		f.ReceivedPackets = append(f.ReceivedPackets, ReceivedPacketTime{
			SequenceNumber: protocol.PacketNumber(smallest),
			TimeUs:         timeUs,
		})
		for i := 1; i < int(numReceived); i++ {
			seqDelta, err := c.ReadUint16()
			if err != nil {
				return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read sequence delta")
			}
			timeDeltaRaw, err := c.ReadUint32()
			if err != nil {
				return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read time delta")
			}
			timeDelta := int64(int32(timeDeltaRaw))
			f.ReceivedPackets = append(f.ReceivedPackets, ReceivedPacketTime{
				SequenceNumber: protocol.PacketNumber(uint64(smallest) + uint64(seqDelta)),
				TimeUs:         uint64(int64(timeUs) + timeDelta),
			})
		}
		return f, nil
	case CongestionFeedbackFixRate:
		if f.BitrateBps, err = c.ReadUint32(); err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read bitrate")
		}
		return f, nil
	case CongestionFeedbackTCP:
		if f.TCPAccumulatedLost, err = c.ReadUint16(); err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read accumulated lost")
		}
		window, err := c.ReadUint16()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "unable to read receive window")
		}
		f.ReceiveWindow = uint32(window) << 4
		return f, nil
	default:
		// The open question in the design notes: the original source has
		// unreachable "Illegal frame type" handling after a switch that
		// returns in every case. Unknown feedback type bits are treated as
		// a hard parse error here rather than silently accepted.
		return nil, qerr.Error(qerr.InvalidCongestionFeedbackData, "illegal feedback type")
	}
}
