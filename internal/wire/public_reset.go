package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// PublicReset is the out-of-band, unencrypted packet a server (or anyone
// who can guess the connection ID) sends to kill a connection it no
// longer recognizes. Its wire layout is a flat
// public_flags | connection_id | nonce_proof | rejected_sequence_number
// rather than the tag-value handshake-message encoding older gQUIC
// servers used: there is no message framing to parse here, just a fixed
// 8-byte connection ID and nonce proof followed by a 6-byte sequence
// number, matching every other truncated packet-number field on the wire.
type PublicReset struct {
	ConnectionID         protocol.ConnectionID
	NonceProof           uint64
	RejectedPacketNumber protocol.PacketNumber
}

const publicResetSize protocol.ByteCount = 1 + 8 + 8 + 6

// WritePublicReset serializes a PUBLIC_RESET packet.
func WritePublicReset(connectionID protocol.ConnectionID, rejectedPacketNumber protocol.PacketNumber, nonceProof uint64) []byte {
	b := utils.NewByteBuilder(int(publicResetSize))
	b.WriteUint8(publicFlagReset | publicFlagConnectionID)
	b.WriteUint64(uint64(connectionID))
	b.WriteUint64(nonceProof)
	b.WriteUint48(uint64(rejectedPacketNumber))
	return b.Bytes()
}

// ParsePublicReset parses a PUBLIC_RESET packet. The public flags byte
// (identified as a reset) and the 8-byte connection ID have already been
// read by the caller, so c is positioned at the nonce proof.
func ParsePublicReset(c *utils.ByteCursor, connectionID protocol.ConnectionID) (*PublicReset, error) {
	pr := &PublicReset{ConnectionID: connectionID}

	nonceProof, err := c.ReadUint64()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidPublicRstPacket, "unable to read nonce proof")
	}
	pr.NonceProof = nonceProof

	rejected, err := c.ReadUint48()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidPublicRstPacket, "unable to read rejected packet number")
	}
	pr.RejectedPacketNumber = protocol.PacketNumber(rejected)

	return pr, nil
}
