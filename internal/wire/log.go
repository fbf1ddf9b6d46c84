package wire

import "github.com/quicwire/framer/internal/utils"

// LogFrame logs a frame, either sent or received.
func LogFrame(frame Frame, sent bool) {
	if !utils.Debug() {
		return
	}
	dir := "<-"
	if sent {
		dir = "->"
	}
	switch f := frame.(type) {
	case *StreamFrame:
		utils.Debugf("\t%s &wire.StreamFrame{StreamID: %d, FinBit: %t, Offset: 0x%x, Data length: 0x%x, Offset + Data length: 0x%x}", dir, f.StreamID, f.FinBit, f.Offset, f.DataLen(), f.Offset+f.DataLen())
	case *StopWaitingFrame:
		utils.Debugf("\t%s &wire.StopWaitingFrame{LeastUnacked: 0x%x, PacketNumberLen: 0x%x}", dir, f.LeastUnacked, f.PacketNumberLen)
	case *AckFrame:
		utils.Debugf("\t%s &wire.AckFrame{LargestObserved: 0x%x, LeastUnacked: 0x%x, MissingPackets: %#v, DeltaTimeUs: %d}", dir, f.LargestObserved, f.LeastUnacked, f.MissingPackets, f.DeltaTimeUs)
	case *CongestionFeedbackFrame:
		utils.Debugf("\t%s &wire.CongestionFeedbackFrame{Type: %d}", dir, f.Type)
	case *RstStreamFrame:
		utils.Debugf("\t%s &wire.RstStreamFrame{StreamID: %d, ByteOffset: 0x%x, ErrorCode: %d}", dir, f.StreamID, f.ByteOffset, f.ErrorCode)
	case *ConnectionCloseFrame:
		utils.Debugf("\t%s &wire.ConnectionCloseFrame{ErrorCode: %d, ReasonPhrase: %s}", dir, f.ErrorCode, f.ReasonPhrase)
	case *GoAwayFrame:
		utils.Debugf("\t%s &wire.GoAwayFrame{ErrorCode: %d, LastGoodStreamID: %d, ReasonPhrase: %s}", dir, f.ErrorCode, f.LastGoodStreamID, f.ReasonPhrase)
	case *BlockedFrame:
		utils.Debugf("\t%s &wire.BlockedFrame{StreamID: %d}", dir, f.StreamID)
	case *PaddingFrame:
		utils.Debugf("\t%s &wire.PaddingFrame{NumPaddingBytes: %d}", dir, f.NumPaddingBytes)
	default:
		utils.Debugf("\t%s %#v", dir, frame)
	}
}
