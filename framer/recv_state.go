package framer

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/wire"
)

// RecvState is the mutable per-connection state ProcessPacket needs
// across calls: the largest packet number seen so far, which anchors
// truncated-packet-number reconstruction for every subsequent packet.
type RecvState struct {
	LargestPacketNumber protocol.PacketNumber
}

// reconstruct recovers wireValue's full packet number relative to the
// largest one seen, then advances LargestPacketNumber if this packet
// turned out to be the new largest — out-of-order delivery must not
// regress it.
func (s *RecvState) reconstruct(length protocol.PacketNumberLen, wireValue protocol.PacketNumber) protocol.PacketNumber {
	pn := wire.ReconstructPacketNumber(length, s.LargestPacketNumber, wireValue)
	if pn > s.LargestPacketNumber {
		s.LargestPacketNumber = pn
	}
	return pn
}
