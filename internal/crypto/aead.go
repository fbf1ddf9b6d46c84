package crypto

import (
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
)

// aeadNonce builds the per-packet nonce: the connection's fixed IV with
// the packet number XORed into its low 8 bytes, the same construction
// TLS 1.3 record protection uses to turn a sequence number into a nonce.
func aeadNonce(iv []byte, packetNumber protocol.PacketNumber) []byte {
	nonce := make([]byte, len(iv))
	copy(nonce, iv)
	var pnBytes [8]byte
	binary.BigEndian.PutUint64(pnBytes[:], uint64(packetNumber))
	offset := len(nonce) - 8
	for i := 0; i < 8; i++ {
		nonce[offset+i] ^= pnBytes[i]
	}
	return nonce
}

type aeadEncrypter struct {
	aead cipher.AEAD
	iv   []byte
}

// NewAEADEncrypter builds an Encrypter from a ChaCha20-Poly1305 key and a
// 12-byte fixed IV.
func NewAEADEncrypter(key, iv []byte) (Encrypter, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, qerr.Error(qerr.EncryptionFailure, "unable to initialize AEAD: "+err.Error())
	}
	if len(iv) != aead.NonceSize() {
		return nil, qerr.Error(qerr.EncryptionFailure, "IV length does not match AEAD nonce size")
	}
	return &aeadEncrypter{aead: aead, iv: iv}, nil
}

func (e *aeadEncrypter) Seal(dst, plaintext []byte, packetNumber protocol.PacketNumber, associatedData []byte) []byte {
	return e.aead.Seal(dst, aeadNonce(e.iv, packetNumber), plaintext, associatedData)
}

func (e *aeadEncrypter) Overhead() int { return e.aead.Overhead() }

type aeadDecrypter struct {
	aead cipher.AEAD
	iv   []byte
}

// NewAEADDecrypter builds a Decrypter from a ChaCha20-Poly1305 key and a
// 12-byte fixed IV.
func NewAEADDecrypter(key, iv []byte) (Decrypter, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, qerr.Error(qerr.DecryptionFailure, "unable to initialize AEAD: "+err.Error())
	}
	if len(iv) != aead.NonceSize() {
		return nil, qerr.Error(qerr.DecryptionFailure, "IV length does not match AEAD nonce size")
	}
	return &aeadDecrypter{aead: aead, iv: iv}, nil
}

func (d *aeadDecrypter) Open(dst, ciphertext []byte, packetNumber protocol.PacketNumber, associatedData []byte) ([]byte, error) {
	plaintext, err := d.aead.Open(dst, aeadNonce(d.iv, packetNumber), ciphertext, associatedData)
	if err != nil {
		return nil, qerr.Error(qerr.DecryptionFailure, "AEAD authentication failed")
	}
	return plaintext, nil
}
