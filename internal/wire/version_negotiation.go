package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// WriteVersionNegotiationPacket serializes the packet a server sends when
// it receives a client hello for a version it does not support: its
// connection ID echoed back, the version flag set, and every version the
// server is willing to speak instead.
func WriteVersionNegotiationPacket(connectionID protocol.ConnectionID, supportedVersions []protocol.VersionNumber) []byte {
	b := utils.NewByteBuilder(1 + 8 + 4*len(supportedVersions))
	b.WriteUint8(publicFlagVersion | publicFlagConnectionID)
	b.WriteUint64(uint64(connectionID))
	for _, v := range supportedVersions {
		b.WriteUint32(protocol.VersionNumberToTag(v))
	}
	return b.Bytes()
}

// ParseVersionNegotiationPacket parses the version list out of a
// version-negotiation packet. c must be positioned right after the
// connection ID (i.e. the public flags byte and connection ID have
// already been consumed by the caller via ParsePublicHeaderFlags and a
// manual connection ID read, since a version-negotiation packet carries
// no packet number for ParsePublicHeader to also consume).
func ParseVersionNegotiationPacket(c *utils.ByteCursor) ([]protocol.VersionNumber, error) {
	if c.Remaining()%4 != 0 || c.Remaining() == 0 {
		return nil, qerr.Error(qerr.InvalidVersionNegotiationPacket, "invalid version list length")
	}
	var versions []protocol.VersionNumber
	for c.Remaining() > 0 {
		tag, err := c.ReadUint32()
		if err != nil {
			return nil, qerr.Error(qerr.InvalidVersionNegotiationPacket, "unable to read version tag")
		}
		versions = append(versions, protocol.VersionTagToNumber(tag))
	}
	return versions, nil
}
