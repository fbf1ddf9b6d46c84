package framer

import (
	"time"

	"github.com/quicwire/framer/internal/crypto"
	"github.com/quicwire/framer/internal/fec"
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
	"github.com/quicwire/framer/internal/wire"
)

// Framer is the single point of contact between a connection and the
// wire: it turns frames into sealed packet bytes and sealed packet bytes
// back into frames, tracking just enough state (sequence numbers, FEC
// groups, installed keys) to do both without the caller re-deriving any
// of it per packet.
type Framer struct {
	Perspective  protocol.Perspective
	Version      protocol.VersionNumber
	ConnectionID protocol.ConnectionID
	CreationTime time.Time

	Cryptor *crypto.Cryptor
	FEC     *fec.Builder
	Recv    RecvState
}

// NewFramer returns a Framer ready to build and process packets for one
// connection. perspective and version never change over the Framer's
// life; connectionID may, if the connection migrates, by direct field
// assignment.
func NewFramer(perspective protocol.Perspective, version protocol.VersionNumber, connectionID protocol.ConnectionID, creationTime time.Time) *Framer {
	return &Framer{
		Perspective:  perspective,
		Version:      version,
		ConnectionID: connectionID,
		CreationTime: creationTime,
		Cryptor:      crypto.NewCryptor(),
		FEC:          fec.NewBuilder(),
	}
}

// TimeSinceCreationUs converts t to microseconds elapsed since the
// Framer's creation time, the epoch a CongestionFeedbackFrame's
// ReceivedPacketTime.TimeUs values are relative to.
func (fr *Framer) TimeSinceCreationUs(t time.Time) uint64 {
	if t.Before(fr.CreationTime) {
		return 0
	}
	return uint64(t.Sub(fr.CreationTime) / time.Microsecond)
}

// BuildDataPacket serializes header's public portion, then its private
// portion followed by frames (in order), into a single buffer ready for
// EncryptPacket. It returns the full buffer and the byte offset where the
// private/frame payload begins: the public header is the only part that
// rides as associated data, so that offset is also the AEAD boundary.
//
// Frames are packed against the plaintext budget left once the public
// header and worst-case AEAD overhead are accounted for. A frame that
// doesn't fit as positioned is retried without its trailing-length field
// if it's a StreamFrame not already last; a later frame that still
// doesn't fit is dropped; the first frame, if it's an AckFrame or
// ConnectionCloseFrame, self-truncates against the remaining room
// instead (its Write already does this once the builder runs out of
// space); any other first frame that doesn't fit fails the packet.
func (fr *Framer) BuildDataPacket(header *wire.PacketHeader, frames []wire.Frame) ([]byte, protocol.ByteCount, error) {
	pubBuf := utils.NewByteBuilder(64)
	if err := header.Public.Write(pubBuf, fr.Version, fr.Perspective); err != nil {
		return nil, 0, err
	}
	headerLen := protocol.ByteCount(pubBuf.Len())

	maxPlaintext := fr.Cryptor.MaxPlaintextSize(protocol.MaxPacketSize - headerLen)
	payload := utils.NewByteBuilder(int(maxPlaintext))
	if err := header.WritePrivate(payload); err != nil {
		return nil, 0, err
	}
	free := maxPlaintext - protocol.ByteCount(payload.Len())

	for i, frame := range frames {
		isLast := i == len(frames)-1
		wire.PrepareForPosition(frame, isLast)
		length, err := wire.FrameLength(frame, isLast, fr.Version)
		if err != nil {
			return nil, 0, err
		}

		if length > free {
			if sf, ok := frame.(*wire.StreamFrame); ok && !isLast {
				wire.PrepareForPosition(sf, true)
				lastLen, err := wire.FrameLength(sf, true, fr.Version)
				if err != nil {
					return nil, 0, err
				}
				if lastLen <= free {
					wire.LogFrame(sf, true)
					if err := sf.Write(payload, fr.Version); err != nil {
						return nil, 0, err
					}
					break // sf now runs to end of packet; nothing can follow it
				}
			}

			if i != 0 {
				continue // a later frame that doesn't fit is simply dropped
			}

			switch frame.(type) {
			case *wire.AckFrame, *wire.ConnectionCloseFrame:
				wire.LogFrame(frame, true)
				if err := frame.Write(payload, fr.Version); err != nil {
					return nil, 0, err
				}
			default:
				return nil, 0, qerr.Error(qerr.InvalidFrameData, "packet leaves no room for its first frame")
			}
			break
		}

		wire.LogFrame(frame, true)
		if err := frame.Write(payload, fr.Version); err != nil {
			return nil, 0, err
		}
		free -= length
	}

	raw := utils.NewByteBuilder(int(headerLen) + payload.Len())
	if err := raw.WriteBytes(pubBuf.Bytes()); err != nil {
		return nil, 0, err
	}
	if err := raw.WriteBytes(payload.Bytes()); err != nil {
		return nil, 0, err
	}
	return raw.Bytes(), headerLen, nil
}

// BuildFECPacket serializes header's public portion, then its private
// portion (forced to IsFECPacket) followed by a group's raw XOR
// redundancy payload. An FEC packet carries no frames of its own: the
// redundancy bytes are opaque to the frame layer and only meaningful
// once XORed back against the group's other payloads. As with
// BuildDataPacket, only the public header rides as associated data.
func (fr *Framer) BuildFECPacket(header *wire.PacketHeader, redundancy []byte) ([]byte, protocol.ByteCount, error) {
	header.IsFECPacket = true
	pubBuf := utils.NewByteBuilder(64)
	if err := header.Public.Write(pubBuf, fr.Version, fr.Perspective); err != nil {
		return nil, 0, err
	}
	headerLen := protocol.ByteCount(pubBuf.Len())

	maxPlaintext := fr.Cryptor.MaxPlaintextSize(protocol.MaxPacketSize - headerLen)
	payload := utils.NewByteBuilder(int(maxPlaintext))
	if err := header.WritePrivate(payload); err != nil {
		return nil, 0, err
	}
	if err := payload.WriteBytes(redundancy); err != nil {
		return nil, 0, err
	}

	raw := utils.NewByteBuilder(int(headerLen) + payload.Len())
	if err := raw.WriteBytes(pubBuf.Bytes()); err != nil {
		return nil, 0, err
	}
	if err := raw.WriteBytes(payload.Bytes()); err != nil {
		return nil, 0, err
	}
	return raw.Bytes(), headerLen, nil
}

// BuildPublicReset serializes a PUBLIC_RESET packet for connectionID.
func (fr *Framer) BuildPublicReset(rejectedPacketNumber protocol.PacketNumber, nonceProof uint64) []byte {
	return wire.WritePublicReset(fr.ConnectionID, rejectedPacketNumber, nonceProof)
}

// BuildVersionNegotiationPacket serializes the server's reply to a client
// hello for an unsupported version.
func (fr *Framer) BuildVersionNegotiationPacket(supportedVersions []protocol.VersionNumber) []byte {
	return wire.WriteVersionNegotiationPacket(fr.ConnectionID, supportedVersions)
}

// EncryptPacket seals raw[headerLen:] under the key installed for level,
// using raw[:headerLen] as associated data, and returns the complete
// packet (header followed by sealed payload).
func (fr *Framer) EncryptPacket(level protocol.EncryptionLevel, raw []byte, headerLen protocol.ByteCount, packetNumber protocol.PacketNumber) ([]byte, error) {
	encrypter, err := fr.Cryptor.Encrypter(level)
	if err != nil {
		return nil, err
	}
	header := raw[:headerLen]
	payload := raw[headerLen:]

	sealed := make([]byte, len(header), len(header)+len(payload)+encrypter.Overhead())
	copy(sealed, header)
	sealed = encrypter.Seal(sealed, payload, packetNumber, header)

	if protocol.ByteCount(len(sealed)) > protocol.MaxPacketSize {
		return nil, qerr.Error(qerr.PacketTooLarge, "sealed packet exceeds max packet size")
	}
	return sealed, nil
}

// ProcessPacket parses, decrypts and dispatches one received packet.
// Reset and version-negotiation packets are recognized from the public
// flags alone and reported through onReset/onVersionNegotiation rather
// than visitor, since neither carries frames.
func (fr *Framer) ProcessPacket(data []byte, visitor *FrameVisitor, onReset func(*wire.PublicReset), onVersionNegotiation func([]protocol.VersionNumber)) error {
	c := utils.NewByteCursor(data)
	flags, resetFlag, versionFlag, err := wire.ParsePublicHeaderFlags(c)
	if err != nil {
		return err
	}

	if resetFlag {
		connID, err := c.ReadUint64()
		if err != nil {
			return qerr.Error(qerr.InvalidPublicRstPacket, "unable to read connection id")
		}
		pr, err := wire.ParsePublicReset(c, protocol.ConnectionID(connID))
		if err != nil {
			return err
		}
		if onReset != nil {
			onReset(pr)
		}
		return nil
	}

	if versionFlag && fr.Perspective == protocol.PerspectiveClient {
		// A version-negotiation packet from the server: connection ID,
		// then nothing but a list of version tags — no packet number.
		connID, err := c.ReadUint64()
		if err != nil {
			return qerr.Error(qerr.InvalidVersionNegotiationPacket, "unable to read connection id")
		}
		_ = connID
		versions, err := wire.ParseVersionNegotiationPacket(c)
		if err != nil {
			return err
		}
		if onVersionNegotiation != nil {
			onVersionNegotiation(versions)
		}
		return nil
	}

	pub, err := wire.ParsePublicHeader(c, flags, fr.Perspective, fr.ConnectionID)
	if err != nil {
		return err
	}

	packetNumber := fr.Recv.reconstruct(pub.PacketNumberLen, pub.PacketNumber)
	pub.PacketNumber = packetNumber

	// The public header is everything up to and including the sequence
	// number; it's the only part that rode as cleartext associated data.
	// Private flags, any FEC group offset, and every frame are inside the
	// sealed payload and only become readable after Open succeeds.
	associatedData := data[:c.Pos()]
	ciphertext := c.ReadRemaining()

	plaintext, level, err := fr.Cryptor.Open(nil, ciphertext, packetNumber, associatedData)
	if err != nil {
		return err
	}
	_ = level

	pc := utils.NewByteCursor(plaintext)
	header, err := wire.ParsePrivateHeader(pc, pub)
	if err != nil {
		return err
	}

	if header.IsFECPacket {
		if err := fr.FEC.AddPacket(packetNumber, pc.ReadRemaining()); err != nil {
			return err
		}
		return nil
	}

	return fr.processFramePayload(pc.ReadRemaining(), packetNumber, pub.PacketNumberLen, visitor)
}

// ProcessRevivedPacket dispatches a packet payload recovered via FEC XOR
// reconstruction exactly as if it had arrived and been decrypted
// normally. packetNumber is the number the receiver deduced the missing
// packet must have had, from the surrounding group.
func (fr *Framer) ProcessRevivedPacket(plaintext []byte, packetNumber protocol.PacketNumber, packetNumberLen protocol.PacketNumberLen, visitor *FrameVisitor) error {
	if packetNumber > fr.Recv.LargestPacketNumber {
		fr.Recv.LargestPacketNumber = packetNumber
	}
	return fr.processFramePayload(plaintext, packetNumber, packetNumberLen, visitor)
}

func (fr *Framer) processFramePayload(plaintext []byte, packetNumber protocol.PacketNumber, packetNumberLen protocol.PacketNumberLen, visitor *FrameVisitor) error {
	frames, err := wire.ParseFrames(utils.NewByteCursor(plaintext), packetNumber, packetNumberLen)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		wire.LogFrame(frame, false)
		if err := visitor.visit(frame); err != nil {
			return err
		}
	}
	return nil
}
