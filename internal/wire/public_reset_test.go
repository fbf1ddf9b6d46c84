package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/utils"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PublicReset", func() {
	It("round-trips through WritePublicReset and ParsePublicReset", func() {
		raw := WritePublicReset(0xabcdef, 42, 0x1122334455667788)

		c := utils.NewByteCursor(raw)
		flags, resetFlag, _, err := ParsePublicHeaderFlags(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(resetFlag).To(BeTrue())
		Expect(flags & publicFlagConnectionID).To(Equal(byte(publicFlagConnectionID)))

		connID, err := c.ReadUint64()
		Expect(err).ToNot(HaveOccurred())

		pr, err := ParsePublicReset(c, protocol.ConnectionID(connID))
		Expect(err).ToNot(HaveOccurred())
		Expect(pr.ConnectionID).To(Equal(protocol.ConnectionID(0xabcdef)))
		Expect(pr.RejectedPacketNumber).To(Equal(protocol.PacketNumber(42)))
		Expect(pr.NonceProof).To(Equal(uint64(0x1122334455667788)))
	})
})
