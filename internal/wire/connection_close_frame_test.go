package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ConnectionCloseFrame", func() {
	It("round-trips with an embedded ack", func() {
		f := &ConnectionCloseFrame{
			ErrorCode:    qerr.InvalidStreamData,
			ReasonPhrase: "stream data invalid",
			Ack: &AckFrame{
				SentEntropy:     1,
				LargestObserved: 42,
				Oracle:          constantOracle{hash: 0},
			},
		}
		b := utils.NewByteBuilder(200)
		Expect(f.Write(b, protocol.Version39)).To(Succeed())

		c := utils.NewByteCursor(b.Bytes())
		c.ReadUint8()
		parsed, err := parseConnectionCloseFrame(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.ErrorCode).To(Equal(f.ErrorCode))
		Expect(parsed.ReasonPhrase).To(Equal(f.ReasonPhrase))
		Expect(parsed.Ack).ToNot(BeNil())
		Expect(parsed.Ack.LargestObserved).To(Equal(protocol.PacketNumber(42)))
	})

	It("round-trips without an embedded ack", func() {
		f := &ConnectionCloseFrame{ErrorCode: qerr.NoError, ReasonPhrase: "bye"}
		b := utils.NewByteBuilder(100)
		Expect(f.Write(b, protocol.Version39)).To(Succeed())

		c := utils.NewByteCursor(b.Bytes())
		c.ReadUint8()
		parsed, err := parseConnectionCloseFrame(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.Ack).To(BeNil())
	})
})
