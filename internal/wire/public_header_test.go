package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/utils"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PacketPublicHeader", func() {
	It("round-trips a plain data packet header", func() {
		h := &PacketPublicHeader{
			ConnectionID:    0x0102030405060708,
			ConnectionIDLen: protocol.ConnectionIDLen8,
			PacketNumber:    12345,
			PacketNumberLen: protocol.PacketNumberLen4,
		}
		b := utils.NewByteBuilder(64)
		Expect(h.Write(b, protocol.Version39, protocol.PerspectiveClient)).To(Succeed())

		c := utils.NewByteCursor(b.Bytes())
		flags, resetFlag, versionFlag, err := ParsePublicHeaderFlags(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(resetFlag).To(BeFalse())
		Expect(versionFlag).To(BeFalse())

		parsed, err := ParsePublicHeader(c, flags, protocol.PerspectiveServer, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.ConnectionID).To(Equal(h.ConnectionID))
		Expect(parsed.PacketNumber).To(Equal(h.PacketNumber))
		Expect(parsed.PacketNumberLen).To(Equal(h.PacketNumberLen))
	})

	It("round-trips a client version-flagged header including the version tag", func() {
		h := &PacketPublicHeader{
			ConnectionID:    0xaa,
			ConnectionIDLen: protocol.ConnectionIDLen8,
			VersionFlag:     true,
			VersionNumber:   protocol.Version39,
			PacketNumber:    1,
			PacketNumberLen: protocol.PacketNumberLen1,
		}
		b := utils.NewByteBuilder(64)
		Expect(h.Write(b, protocol.Version39, protocol.PerspectiveClient)).To(Succeed())

		c := utils.NewByteCursor(b.Bytes())
		flags, _, versionFlag, err := ParsePublicHeaderFlags(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(versionFlag).To(BeTrue())

		parsed, err := ParsePublicHeader(c, flags, protocol.PerspectiveServer, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.VersionNumber).To(Equal(protocol.Version39))
	})

	It("omits the connection ID on the wire and fills it in from context when ConnectionIDLen0", func() {
		h := &PacketPublicHeader{
			ConnectionIDLen: protocol.ConnectionIDLen0,
			PacketNumber:    7,
			PacketNumberLen: protocol.PacketNumberLen1,
		}
		b := utils.NewByteBuilder(16)
		Expect(h.Write(b, protocol.Version39, protocol.PerspectiveClient)).To(Succeed())

		c := utils.NewByteCursor(b.Bytes())
		flags, _, _, err := ParsePublicHeaderFlags(c)
		Expect(err).ToNot(HaveOccurred())
		parsed, err := ParsePublicHeader(c, flags, protocol.PerspectiveServer, 0x99)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.ConnectionID).To(Equal(protocol.ConnectionID(0x99)))
	})
})
