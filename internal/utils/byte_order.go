package utils

import "github.com/quicwire/framer/internal/protocol"

// ByteOrder abstracts the wire integer encoding. The wire format specified
// is little-endian throughout (spec.md §6); this indirection mirrors the
// teacher's utils.GetByteOrder. The wire package does not go through it:
// its frame files call the ByteBuilder/ByteCursor methods directly, which
// are little-endian themselves.
type ByteOrder interface {
	WriteUint8(b *ByteBuilder, v uint8)
	WriteUint16(b *ByteBuilder, v uint16)
	WriteUint32(b *ByteBuilder, v uint32)
	WriteUint48(b *ByteBuilder, v uint64)
	WriteUint64(b *ByteBuilder, v uint64)

	ReadUint8(c *ByteCursor) (uint8, error)
	ReadUint16(c *ByteCursor) (uint16, error)
	ReadUint32(c *ByteCursor) (uint32, error)
	ReadUint48(c *ByteCursor) (uint64, error)
	ReadUint64(c *ByteCursor) (uint64, error)
}

// GetByteOrder returns the ByteOrder to use for version. Every currently
// supported version uses little-endian encoding; the indirection is kept
// so a future version with a different wire encoding has somewhere to
// hook in, mirroring the teacher's per-version byte order selection.
func GetByteOrder(version protocol.VersionNumber) ByteOrder {
	return LittleEndian
}

// LittleEndian is the concrete, and currently only, ByteOrder.
var LittleEndian ByteOrder = littleEndian{}

type littleEndian struct{}

func (littleEndian) WriteUint8(b *ByteBuilder, v uint8)   { b.WriteUint8(v) }
func (littleEndian) WriteUint16(b *ByteBuilder, v uint16) { b.WriteUint16(v) }
func (littleEndian) WriteUint32(b *ByteBuilder, v uint32) { b.WriteUint32(v) }
func (littleEndian) WriteUint48(b *ByteBuilder, v uint64) { b.WriteUint48(v) }
func (littleEndian) WriteUint64(b *ByteBuilder, v uint64) { b.WriteUint64(v) }

func (littleEndian) ReadUint8(c *ByteCursor) (uint8, error)   { return c.ReadUint8() }
func (littleEndian) ReadUint16(c *ByteCursor) (uint16, error) { return c.ReadUint16() }
func (littleEndian) ReadUint32(c *ByteCursor) (uint32, error) { return c.ReadUint32() }
func (littleEndian) ReadUint48(c *ByteCursor) (uint64, error) { return c.ReadUint48() }
func (littleEndian) ReadUint64(c *ByteCursor) (uint64, error) { return c.ReadUint64() }
