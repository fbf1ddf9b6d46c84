package wire

import (
	"github.com/quicwire/framer/internal/protocol"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReconstructPacketNumber", func() {
	It("returns the wire value unchanged when nothing has been seen yet", func() {
		pn := ReconstructPacketNumber(protocol.PacketNumberLen1, 0, 5)
		Expect(pn).To(Equal(protocol.PacketNumber(5)))
	})

	It("reconstructs a packet number within the current epoch", func() {
		pn := ReconstructPacketNumber(protocol.PacketNumberLen1, 100, 101%256)
		Expect(pn).To(Equal(protocol.PacketNumber(101)))
	})

	It("reconstructs across an epoch rollover", func() {
		// last = 255 (epoch 0), wire value 0 should become 256, the start
		// of the next epoch, since that's closest to last+1 = 256.
		pn := ReconstructPacketNumber(protocol.PacketNumberLen1, 255, 0)
		Expect(pn).To(Equal(protocol.PacketNumber(256)))
	})

	It("reconstructs across a reverse epoch rollover", func() {
		// last just rolled over into a new epoch; a late, reordered packet
		// from just before the rollover should resolve into the prior epoch.
		pn := ReconstructPacketNumber(protocol.PacketNumberLen1, 256, 255)
		Expect(pn).To(Equal(protocol.PacketNumber(255)))
	})
})
