// Package crypto implements the AEAD sealing and opening the framer needs
// to turn a plaintext packet payload into ciphertext and back, including
// the alternative/latching decrypter swap a connection goes through while
// its keys roll over from initial to forward-secure.
package crypto

import "github.com/quicwire/framer/internal/protocol"

// Encrypter seals one packet's payload under an AEAD keyed for a given
// encryption level, using the packet's header bytes as associated data so
// a tampered header invalidates the whole packet.
type Encrypter interface {
	// Seal appends the sealed ciphertext (plaintext length plus the AEAD's
	// tag overhead) to dst and returns the result.
	Seal(dst, plaintext []byte, packetNumber protocol.PacketNumber, associatedData []byte) []byte
	// Overhead is the number of bytes Seal adds beyond len(plaintext).
	Overhead() int
}

// Decrypter opens a sealed packet payload. It returns qerr-wrapped
// DecryptionFailure on any authentication failure; callers must not act on
// a partially-opened result.
type Decrypter interface {
	Open(dst, ciphertext []byte, packetNumber protocol.PacketNumber, associatedData []byte) ([]byte, error)
}
