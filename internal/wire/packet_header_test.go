package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/utils"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PacketHeader", func() {
	It("round-trips an FEC-grouped packet header", func() {
		h := &PacketHeader{
			Public: PacketPublicHeader{
				ConnectionID:    1,
				ConnectionIDLen: protocol.ConnectionIDLen8,
				PacketNumber:    110,
				PacketNumberLen: protocol.PacketNumberLen1,
			},
			EntropyBit:     true,
			FECGroupNumber: 100,
		}
		publicBuf := utils.NewByteBuilder(32)
		Expect(h.Public.Write(publicBuf, protocol.Version39, protocol.PerspectiveClient)).To(Succeed())
		privateBuf := utils.NewByteBuilder(32)
		Expect(h.WritePrivate(privateBuf)).To(Succeed())

		c := utils.NewByteCursor(publicBuf.Bytes())
		flags, _, _, err := ParsePublicHeaderFlags(c)
		Expect(err).ToNot(HaveOccurred())
		pub, err := ParsePublicHeader(c, flags, protocol.PerspectiveServer, 0)
		Expect(err).ToNot(HaveOccurred())

		parsed, err := ParsePrivateHeader(utils.NewByteCursor(privateBuf.Bytes()), pub)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.EntropyBit).To(BeTrue())
		Expect(parsed.FECGroupNumber).To(Equal(protocol.PacketNumber(100)))
	})

	It("rejects an FEC group span larger than the maximum offset", func() {
		h := &PacketHeader{
			Public: PacketPublicHeader{
				ConnectionIDLen: protocol.ConnectionIDLen0,
				PacketNumber:    1000,
				PacketNumberLen: protocol.PacketNumberLen4,
			},
			FECGroupNumber: 1,
		}
		b := utils.NewByteBuilder(32)
		Expect(h.WritePrivate(b)).To(HaveOccurred())
	})
})
