package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// Public flags byte layout. Bit 0 marks a version-negotiation-eligible
// packet (set by the client on packets it wants the server to reject with
// a version list, echoed by the server while negotiating), bit 1 marks a
// PUBLIC_RESET packet, bit 2 marks the presence of a diversification
// nonce, bits 3-4 select the connection ID width and bits 5-6 the packet
// number width.
const (
	publicFlagVersion      = 1 << 0
	publicFlagReset        = 1 << 1
	publicFlagNonce        = 1 << 2
	publicFlagConnectionID = 1<<3 | 1<<4
	publicFlagMax          = 1<<7 - 1
)

var connectionIDLenFlags = map[protocol.ConnectionIDLen]byte{
	protocol.ConnectionIDLen0: 0,
	protocol.ConnectionIDLen1: 1 << 3,
	protocol.ConnectionIDLen4: 1 << 4,
	protocol.ConnectionIDLen8: 1<<3 | 1<<4,
}

var packetNumberLenFlags = map[protocol.PacketNumberLen]byte{
	protocol.PacketNumberLen1: 0,
	protocol.PacketNumberLen2: 1 << 5,
	protocol.PacketNumberLen4: 1 << 6,
	protocol.PacketNumberLen6: 1<<5 | 1<<6,
}

func connectionIDLenForFlag(flags byte) protocol.ConnectionIDLen {
	switch flags & publicFlagConnectionID {
	case 1 << 3:
		return protocol.ConnectionIDLen1
	case 1 << 4:
		return protocol.ConnectionIDLen4
	case 1<<3 | 1<<4:
		return protocol.ConnectionIDLen8
	default:
		return protocol.ConnectionIDLen0
	}
}

func packetNumberLenForFlag(flags byte) protocol.PacketNumberLen {
	switch flags & (1<<5 | 1<<6) {
	case 1 << 5:
		return protocol.PacketNumberLen2
	case 1 << 6:
		return protocol.PacketNumberLen4
	case 1<<5 | 1<<6:
		return protocol.PacketNumberLen6
	default:
		return protocol.PacketNumberLen1
	}
}

const diversificationNonceLen = 32

// PacketPublicHeader is the unencrypted prefix of every packet: enough to
// route it to a connection and, for forward-secure packets, enough to
// reconstruct the full packet number. It precedes the private header and
// the (possibly encrypted) frame payload.
type PacketPublicHeader struct {
	ConnectionID    protocol.ConnectionID
	ConnectionIDLen protocol.ConnectionIDLen
	VersionFlag     bool
	VersionNumber   protocol.VersionNumber
	// DiversificationNonce is 32 bytes of server-chosen randomness sent on
	// the first packet encrypted at EncryptionSecure, letting the client
	// derive a diversified key for that epoch.
	DiversificationNonce []byte
	PacketNumber         protocol.PacketNumber
	PacketNumberLen      protocol.PacketNumberLen
}

// MinLength reports the header's encoded size.
func (h *PacketPublicHeader) MinLength() (protocol.ByteCount, error) {
	if h.PacketNumberLen != protocol.PacketNumberLen1 &&
		h.PacketNumberLen != protocol.PacketNumberLen2 &&
		h.PacketNumberLen != protocol.PacketNumberLen4 &&
		h.PacketNumberLen != protocol.PacketNumberLen6 {
		return 0, qerr.Error(qerr.InvalidPacketHeader, "invalid packet number length")
	}
	length := protocol.ByteCount(1 + h.ConnectionIDLen + protocol.ConnectionIDLen(h.PacketNumberLen))
	if h.VersionFlag {
		length += 4
	}
	if len(h.DiversificationNonce) > 0 {
		length += diversificationNonceLen
	}
	return length, nil
}

// Write appends the public header. The version tag is only ever written
// by the client: a server only raises VersionFlag, without a tag, inside
// a version-negotiation packet, which has its own encoding.
func (h *PacketPublicHeader) Write(b *utils.ByteBuilder, version protocol.VersionNumber, pers protocol.Perspective) error {
	flags, ok := connectionIDLenFlags[h.ConnectionIDLen]
	if !ok {
		return qerr.Error(qerr.InvalidPacketHeader, "invalid connection id length")
	}
	pnFlag, ok := packetNumberLenFlags[h.PacketNumberLen]
	if !ok {
		return qerr.Error(qerr.InvalidPacketHeader, "invalid packet number length")
	}
	flags |= pnFlag
	if h.VersionFlag {
		flags |= publicFlagVersion
	}
	if len(h.DiversificationNonce) > 0 {
		flags |= publicFlagNonce
	}
	if err := b.WriteUint8(flags); err != nil {
		return err
	}
	if h.ConnectionIDLen > 0 {
		if err := b.WriteUintN(uint64(h.ConnectionID), int(h.ConnectionIDLen)); err != nil {
			return err
		}
	}
	if h.VersionFlag && pers == protocol.PerspectiveClient {
		if err := b.WriteUint32(protocol.VersionNumberToTag(h.VersionNumber)); err != nil {
			return err
		}
	}
	if len(h.DiversificationNonce) > 0 {
		if len(h.DiversificationNonce) != diversificationNonceLen {
			return qerr.Error(qerr.InvalidPacketHeader, "invalid diversification nonce length")
		}
		if err := b.WriteBytes(h.DiversificationNonce); err != nil {
			return err
		}
	}
	return b.WriteUintN(uint64(h.PacketNumber), int(h.PacketNumberLen))
}

// ParsePublicHeaderFlags reads (and consumes) just the first byte, letting
// the caller route reset and version-negotiation packets to their own
// parsers before committing to ParsePublicHeader.
func ParsePublicHeaderFlags(c *utils.ByteCursor) (flags byte, resetFlag bool, versionFlag bool, err error) {
	flags, err = c.ReadUint8()
	if err != nil {
		return 0, false, false, qerr.Error(qerr.InvalidPacketHeader, "unable to read public flags")
	}
	return flags, flags&publicFlagReset != 0, flags&publicFlagVersion != 0, nil
}

// ParsePublicHeader decodes the public header given its already-read flags
// byte. When the flags select a 0-length connection ID, ConnectionID is
// filled in from knownConnectionID; a 1- or 4-byte connection ID is taken
// as read and is not compared against knownConnectionID.
func ParsePublicHeader(c *utils.ByteCursor, flags byte, pers protocol.Perspective, knownConnectionID protocol.ConnectionID) (*PacketPublicHeader, error) {
	h := &PacketPublicHeader{
		ConnectionIDLen: connectionIDLenForFlag(flags),
		VersionFlag:     flags&publicFlagVersion != 0,
		PacketNumberLen: packetNumberLenForFlag(flags),
	}

	if h.ConnectionIDLen > 0 {
		id, err := c.ReadUintN(int(h.ConnectionIDLen))
		if err != nil {
			return nil, qerr.Error(qerr.InvalidPacketHeader, "unable to read connection id")
		}
		h.ConnectionID = protocol.ConnectionID(id)
	} else {
		h.ConnectionID = knownConnectionID
	}

	if h.VersionFlag && pers == protocol.PerspectiveServer {
		tag, err := c.ReadUint32()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidPacketHeader, "unable to read version tag")
		}
		h.VersionNumber = protocol.VersionTagToNumber(tag)
	}

	if flags&publicFlagNonce != 0 {
		nonce, err := c.ReadBytes(diversificationNonceLen)
		if err != nil {
			return nil, qerr.Error(qerr.InvalidPacketHeader, "unable to read diversification nonce")
		}
		h.DiversificationNonce = nonce
	}

	pn, err := c.ReadUintN(int(h.PacketNumberLen))
	if err != nil {
		return nil, qerr.Error(qerr.InvalidPacketHeader, "unable to read packet number")
	}
	h.PacketNumber = protocol.PacketNumber(pn)

	return h, nil
}
