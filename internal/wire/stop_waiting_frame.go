package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// StopWaitingFrame tells the peer not to wait for packets below
// LeastUnacked any longer — they were never sent, or the sender has given
// up retransmitting them. It is encoded relative to the packet number of
// the packet carrying it, at that packet's own PacketNumberLen, so both
// fields must be filled in by the caller immediately before Write.
type StopWaitingFrame struct {
	LeastUnacked    protocol.PacketNumber
	PacketNumber    protocol.PacketNumber
	PacketNumberLen protocol.PacketNumberLen
}

func (f *StopWaitingFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	if f.PacketNumberLen == 0 {
		return 0, qerr.Error(qerr.InvalidFrameData, "PacketNumberLen not set")
	}
	return protocol.ByteCount(1 + f.PacketNumberLen), nil
}

func (f *StopWaitingFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if f.LeastUnacked > f.PacketNumber {
		return qerr.Error(qerr.InvalidFrameData, "LeastUnacked greater than the packet number")
	}
	if f.PacketNumberLen == 0 {
		return qerr.Error(qerr.InvalidFrameData, "PacketNumberLen not set")
	}
	if err := b.WriteUint8(encodeGeneralFrameType(generalFrameStopWaiting)); err != nil {
		return err
	}
	delta := uint64(f.PacketNumber - f.LeastUnacked)
	return b.WriteUintN(delta, int(f.PacketNumberLen))
}

// parseStopWaitingFrame decodes a STOP_WAITING frame body (the type byte
// has already been consumed by the caller). packetNumber and
// packetNumberLen come from the enclosing packet's header, since the
// delta on the wire is relative to it.
func parseStopWaitingFrame(c *utils.ByteCursor, packetNumber protocol.PacketNumber, packetNumberLen protocol.PacketNumberLen) (*StopWaitingFrame, error) {
	delta, err := c.ReadUintN(int(packetNumberLen))
	if err != nil {
		return nil, qerr.Error(qerr.InvalidFrameData, "unable to read least unacked delta")
	}
	if delta > uint64(packetNumber) {
		return nil, qerr.Error(qerr.InvalidFrameData, "invalid LeastUnacked delta")
	}
	return &StopWaitingFrame{
		LeastUnacked:    packetNumber - protocol.PacketNumber(delta),
		PacketNumber:    packetNumber,
		PacketNumberLen: packetNumberLen,
	}, nil
}
