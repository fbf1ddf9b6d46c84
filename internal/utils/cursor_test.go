package utils

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ByteCursor", func() {
	It("reads every fixed-width integer little-endian", func() {
		c := NewByteCursor([]byte{
			0x01,
			0x02, 0x03,
			0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d,
			0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15,
		})
		v8, err := c.ReadUint8()
		Expect(err).ToNot(HaveOccurred())
		Expect(v8).To(Equal(uint8(0x01)))

		v16, err := c.ReadUint16()
		Expect(err).ToNot(HaveOccurred())
		Expect(v16).To(Equal(uint16(0x0302)))

		v32, err := c.ReadUint32()
		Expect(err).ToNot(HaveOccurred())
		Expect(v32).To(Equal(uint32(0x07060504)))

		v48, err := c.ReadUint48()
		Expect(err).ToNot(HaveOccurred())
		Expect(v48).To(Equal(uint64(0x0d0c0b0a0908)))

		v64, err := c.ReadUint64()
		Expect(err).ToNot(HaveOccurred())
		Expect(v64).To(Equal(uint64(0x1514131211100f0e)))
	})

	It("fails on underflow without moving the position", func() {
		c := NewByteCursor([]byte{0x01, 0x02})
		pos := c.Pos()
		_, err := c.ReadUint32()
		Expect(err).To(Equal(ErrUnderflow))
		Expect(c.Pos()).To(Equal(pos))
	})

	It("reads a zero-width ReadUintN as zero without consuming anything", func() {
		c := NewByteCursor([]byte{0xff})
		v, err := c.ReadUintN(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(uint64(0)))
		Expect(c.Remaining()).To(Equal(1))
	})

	It("round-trips a length-prefixed string", func() {
		c := NewByteCursor([]byte{0x05, 0x00, 'h', 'e', 'l', 'l', 'o'})
		s, err := c.ReadString16()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("hello"))
	})

	It("consumes the whole remaining tail with ReadRemaining", func() {
		c := NewByteCursor([]byte{1, 2, 3, 4})
		_, _ = c.ReadUint8()
		tail := c.ReadRemaining()
		Expect(tail).To(Equal([]byte{2, 3, 4}))
		Expect(c.Remaining()).To(Equal(0))
	})
})
