package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// Private flags byte: entropy, whether this packet belongs to an FEC
// group, and whether it is itself the FEC group's redundancy packet.
const (
	privateFlagEntropy  = 1 << 0
	privateFlagFECGroup = 1 << 1
	privateFlagFEC      = 1 << 2
)

// PacketHeader is the public header plus the private, FEC-aware flags that
// sit between it and the (possibly encrypted) frame payload.
type PacketHeader struct {
	Public PacketPublicHeader

	EntropyBit  bool
	IsFECPacket bool
	// FECGroupNumber is the sequence number of the first packet in this
	// packet's FEC group, or 0 if the packet is not FEC-protected. The
	// group's start lies 1 to protocol.MaxFECGroupOffset packet numbers
	// below the packet's own number, since it is encoded as a 1-byte offset.
	FECGroupNumber protocol.PacketNumber
}

// PrivateLength is the encoded size of the private portion alone (flags
// byte plus, for an FEC-grouped packet, the 1-byte group offset) — the
// part of the header that rides inside the encrypted payload, not the AD.
func (h *PacketHeader) PrivateLength() (protocol.ByteCount, error) {
	length := protocol.ByteCount(1)
	if h.FECGroupNumber != 0 {
		length++
	}
	return length, nil
}

// WritePrivate appends the private flags byte and, for an FEC-grouped
// packet, the 1-byte group offset, to b. Unlike the public header, this
// portion is written into the plaintext that gets sealed, not into the
// associated-data prefix: the AEAD boundary sits at the end of the public
// header's sequence number field.
func (h *PacketHeader) WritePrivate(b *utils.ByteBuilder) error {
	var flags byte
	if h.EntropyBit {
		flags |= privateFlagEntropy
	}
	if h.IsFECPacket {
		flags |= privateFlagFEC
	}
	var offset uint64
	if h.FECGroupNumber != 0 {
		if h.FECGroupNumber >= h.Public.PacketNumber {
			return qerr.Error(qerr.InvalidPacketHeader, "FEC group number not below packet number")
		}
		offset = uint64(h.Public.PacketNumber - h.FECGroupNumber)
		if offset > protocol.MaxFECGroupOffset {
			return qerr.Error(qerr.InvalidPacketHeader, "FEC group span too large")
		}
		flags |= privateFlagFECGroup
	}
	if err := b.WriteUint8(flags); err != nil {
		return err
	}
	if flags&privateFlagFECGroup != 0 {
		return b.WriteUint8(uint8(offset))
	}
	return nil
}

// ParsePrivateHeader decodes the private-flags portion of a packet header
// out of the decrypted plaintext. The public header has already been
// parsed into pub by the caller, from the cleartext associated-data prefix.
func ParsePrivateHeader(c *utils.ByteCursor, pub *PacketPublicHeader) (*PacketHeader, error) {
	flags, err := c.ReadUint8()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidPacketHeader, "unable to read private flags")
	}
	h := &PacketHeader{
		Public:      *pub,
		EntropyBit:  flags&privateFlagEntropy != 0,
		IsFECPacket: flags&privateFlagFEC != 0,
	}
	if flags&privateFlagFECGroup != 0 {
		offset, err := c.ReadUint8()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidPacketHeader, "unable to read FEC group offset")
		}
		if offset == 0 || protocol.PacketNumber(offset) >= pub.PacketNumber {
			return nil, qerr.Error(qerr.InvalidPacketHeader, "FEC group offset not in 1..packet number-1")
		}
		h.FECGroupNumber = pub.PacketNumber - protocol.PacketNumber(offset)
	}
	return h, nil
}
