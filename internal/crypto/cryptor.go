package crypto

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
)

// Cryptor owns every key a connection has installed: one Encrypter per
// encryption level for sealing outgoing packets, and up to two
// Decrypters for opening incoming ones. The second decrypter exists
// because keys roll over mid-handshake — a packet sealed at the old level
// can still arrive after the new level is installed — so Open tries the
// primary decrypter first and falls back to the alternative one before
// giving up.
type Cryptor struct {
	encrypters [protocol.NumEncryptionLevels]Encrypter

	primaryDecrypter Decrypter
	primaryLevel     protocol.EncryptionLevel

	alternativeDecrypter Decrypter
	alternativeLevel     protocol.EncryptionLevel
	// latchOnce, when true, promotes a successful alternative decrypt to
	// primary and drops the alternative: the old key is assumed to never
	// be needed again once the new one has proven itself once. When
	// false, the alternative stays installed across multiple packets —
	// used while both old and new keys remain legitimately in flight.
	latchOnce bool
}

// NewCryptor returns a Cryptor with no keys installed.
func NewCryptor() *Cryptor {
	return &Cryptor{primaryLevel: protocol.EncryptionUnspecified, alternativeLevel: protocol.EncryptionUnspecified}
}

// SetEncrypter installs the Encrypter used for every packet sealed at level.
func (c *Cryptor) SetEncrypter(level protocol.EncryptionLevel, e Encrypter) {
	c.encrypters[level] = e
}

// Encrypter returns the Encrypter installed for level.
func (c *Cryptor) Encrypter(level protocol.EncryptionLevel) (Encrypter, error) {
	e := c.encrypters[level]
	if e == nil {
		return nil, qerr.Error(qerr.EncryptionFailure, "no encrypter installed for this encryption level")
	}
	return e, nil
}

// SetDecrypter installs the primary Decrypter, replacing whatever was
// there, and drops any alternative: a connection only ever explicitly
// (re)installs a decrypter when it has fully moved to a new key.
func (c *Cryptor) SetDecrypter(level protocol.EncryptionLevel, d Decrypter) {
	c.primaryDecrypter = d
	c.primaryLevel = level
	c.alternativeDecrypter = nil
	c.alternativeLevel = protocol.EncryptionUnspecified
}

// SetAlternativeDecrypter installs a fallback decrypter tried after the
// primary fails to open a packet. latchOnce controls whether a successful
// alternative decrypt promotes it to primary (see Cryptor.latchOnce).
func (c *Cryptor) SetAlternativeDecrypter(level protocol.EncryptionLevel, d Decrypter, latchOnce bool) {
	c.alternativeDecrypter = d
	c.alternativeLevel = level
	c.latchOnce = latchOnce
}

// Open decrypts a packet payload, trying the primary decrypter and then,
// if installed, the alternative. It returns the encryption level the
// packet was actually opened at, since that is what tells the caller
// which keys the peer is currently using.
func (c *Cryptor) Open(dst, ciphertext []byte, packetNumber protocol.PacketNumber, associatedData []byte) ([]byte, protocol.EncryptionLevel, error) {
	if c.primaryDecrypter != nil {
		if plaintext, err := c.primaryDecrypter.Open(dst, ciphertext, packetNumber, associatedData); err == nil {
			return plaintext, c.primaryLevel, nil
		}
	}
	if c.alternativeDecrypter != nil {
		plaintext, err := c.alternativeDecrypter.Open(dst, ciphertext, packetNumber, associatedData)
		if err == nil {
			level := c.alternativeLevel
			if c.latchOnce {
				c.primaryDecrypter = c.alternativeDecrypter
				c.primaryLevel = c.alternativeLevel
				c.alternativeDecrypter = nil
				c.alternativeLevel = protocol.EncryptionUnspecified
			} else {
				// Not latching yet: swap the two so the alternative, which
				// just proved itself current, is tried first next time.
				c.primaryDecrypter, c.alternativeDecrypter = c.alternativeDecrypter, c.primaryDecrypter
				c.primaryLevel, c.alternativeLevel = c.alternativeLevel, c.primaryLevel
			}
			return plaintext, level, nil
		}
	}
	return nil, protocol.EncryptionUnspecified, qerr.Error(qerr.DecryptionFailure, "unable to decrypt packet with any known key")
}

// MaxOverhead is the largest Overhead() among every installed Encrypter.
// A sender that does not yet know which level a packet will ultimately
// go out at (e.g. while sizing a packet before the handshake settles on
// forward-secure keys) budgets against this worst case.
func (c *Cryptor) MaxOverhead() int {
	max := 0
	for _, e := range c.encrypters {
		if e == nil {
			continue
		}
		if o := e.Overhead(); o > max {
			max = o
		}
	}
	return max
}

// MaxPlaintextSize returns the largest plaintext that still fits within
// packetSize once sealed, under the worst-case installed overhead.
func (c *Cryptor) MaxPlaintextSize(packetSize protocol.ByteCount) protocol.ByteCount {
	overhead := protocol.ByteCount(c.MaxOverhead())
	if overhead >= packetSize {
		return 0
	}
	return packetSize - overhead
}
