package wire

import "github.com/quicwire/framer/internal/protocol"

// ReconstructPacketNumber recovers the full packet number from its
// truncated wire representation given the largest packet number seen so
// far. A truncated value is ambiguous across epoch boundaries — it could
// belong to the epoch the last packet was in, the one before, or the one
// after — so the candidate closest to lastPacketNumber+1 (the number we'd
// expect next, absent loss or reordering) wins.
func ReconstructPacketNumber(length protocol.PacketNumberLen, lastPacketNumber protocol.PacketNumber, wireValue protocol.PacketNumber) protocol.PacketNumber {
	if lastPacketNumber == 0 {
		return wireValue
	}

	epochDelta := length.EpochDelta()
	nextPacketNumber := lastPacketNumber + 1
	epoch := lastPacketNumber &^ (epochDelta - 1)
	prevEpoch := epoch - epochDelta
	nextEpoch := epoch + epochDelta

	return closestTo(nextPacketNumber,
		epoch+wireValue,
		closestTo(nextPacketNumber, prevEpoch+wireValue, nextEpoch+wireValue))
}

func closestTo(target, a, b protocol.PacketNumber) protocol.PacketNumber {
	if delta(target, a) < delta(target, b) {
		return a
	}
	return b
}

func delta(a, b protocol.PacketNumber) protocol.PacketNumber {
	if a < b {
		return b - a
	}
	return a - b
}
