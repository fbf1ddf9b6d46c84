package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// ParseFrame reads one frame from c, given the enclosing packet's number
// and packet-number length (needed to decode a StopWaiting frame's
// relative encoding). It returns (nil, nil) once c is exhausted, letting
// callers loop `for { frame, err := ParseFrame(...); if frame == nil {
// break } }` without a sentinel error for end-of-packet.
func ParseFrame(c *utils.ByteCursor, packetNumber protocol.PacketNumber, packetNumberLen protocol.PacketNumberLen) (Frame, error) {
	if c.Remaining() == 0 {
		return nil, nil
	}

	typeByte, err := c.ReadUint8()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidFrameData, "unable to read frame type")
	}

	category, generalType := classifyFrameType(typeByte)
	switch category {
	case frameCategoryStream:
		return parseStreamFrame(c, typeByte)
	case frameCategoryAck:
		return parseAckFrame(c)
	case frameCategoryCongestionFeedback:
		return parseCongestionFeedbackFrame(c)
	case frameCategoryGeneral:
		switch generalType {
		case generalFramePadding:
			return parsePaddingFrame(c), nil
		case generalFrameRstStream:
			return parseRstStreamFrame(c)
		case generalFrameConnectionClose:
			return parseConnectionCloseFrame(c)
		case generalFrameGoAway:
			return parseGoAwayFrame(c)
		case generalFrameStopWaiting:
			return parseStopWaitingFrame(c, packetNumber, packetNumberLen)
		case generalFrameBlocked:
			return parseBlockedFrame(c)
		}
	}
	return nil, qerr.Error(qerr.InvalidFrameData, "unknown frame type")
}

// ParseFrames decodes every frame in c, in order. A PaddingFrame, if
// present, is always last — it runs to end-of-packet by construction —
// so the loop naturally terminates once c.Remaining() hits 0 after it.
func ParseFrames(c *utils.ByteCursor, packetNumber protocol.PacketNumber, packetNumberLen protocol.PacketNumberLen) ([]Frame, error) {
	var frames []Frame
	for {
		frame, err := ParseFrame(c, packetNumber, packetNumberLen)
		if err != nil {
			return nil, err
		}
		if frame == nil {
			return frames, nil
		}
		frames = append(frames, frame)
	}
}

// FrameLength computes the encoded size of frame as it would appear at
// position within a packet's frame list. Only a StreamFrame's size
// depends on position: when it is the last frame, its 2-byte explicit
// length field is dropped, since the frame simply runs to the end of the
// packet and Data's length is implicit from the remaining packet size.
func FrameLength(frame Frame, isLastInPacket bool, version protocol.VersionNumber) (protocol.ByteCount, error) {
	if sf, ok := frame.(*StreamFrame); ok && isLastInPacket {
		return 1 +
			protocol.ByteCount(streamIDSize(uint32(sf.StreamID))) +
			protocol.ByteCount(streamOffsetSize(uint64(sf.Offset))) +
			sf.DataLen(), nil
	}
	return frame.MinLength(version)
}

// PrepareForPosition adjusts frame's internal state (currently only
// StreamFrame.DataLenPresent) to match where it sits in the packet, and
// must be called before Write for the encoded length to match what
// FrameLength reported.
func PrepareForPosition(frame Frame, isLastInPacket bool) {
	if sf, ok := frame.(*StreamFrame); ok {
		sf.DataLenPresent = !isLastInPacket
	}
}
