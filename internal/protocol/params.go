package protocol

// ByteCount is a length in bytes.
type ByteCount uint64

// ConnectionID is the 64-bit opaque connection identifier. On the wire it
// may be truncated to 0, 1, 4, or 8 bytes once a connection is established.
type ConnectionID uint64

// ConnectionIDLen is the width, in bytes, used to encode a ConnectionID.
type ConnectionIDLen uint8

const (
	ConnectionIDLen0 ConnectionIDLen = 0
	ConnectionIDLen1 ConnectionIDLen = 1
	ConnectionIDLen4 ConnectionIDLen = 4
	ConnectionIDLen8 ConnectionIDLen = 8
)

// StreamID identifies a stream multiplexed over a connection. The framer
// only ever reads or writes the raw ID; stream lifecycle is owned by the
// session layer.
type StreamID uint32

// MaxPacketSize is the hard MTU ceiling: every packet, once encrypted, must
// fit within this many bytes.
const MaxPacketSize ByteCount = 1200

// NonForwardSecurePacketSizeReduction is a budget reduction for packets
// sent before the handshake completes. Nothing in this module applies it:
// the framer sizes every packet against MaxPacketSize.
const NonForwardSecurePacketSizeReduction ByteCount = 50

// MinStreamFrameSize is the smallest possible encoding of a STREAM frame:
// type byte + 1-byte stream ID + 0-byte offset + explicit 2-byte length.
const MinStreamFrameSize ByteCount = 1 + 1 + 0 + 2

// MaxFECGroupOffset bounds how far back an FEC group's first packet can be
// from the packet carrying the group offset byte (the offset is a single
// byte on the wire).
const MaxFECGroupOffset = 255

// DefaultAEADTagLength is a conservative AEAD tag length. The Cryptor does
// not consult it: every Encrypter reports its own Overhead(), and packet
// sizing uses the largest installed one.
const DefaultAEADTagLength ByteCount = 16
