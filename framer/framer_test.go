package framer

import (
	"time"

	"github.com/quicwire/framer/internal/crypto"
	"github.com/quicwire/framer/internal/fec"
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/wire"

	"golang.org/x/crypto/chacha20poly1305"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func sharedAEAD() (crypto.Encrypter, crypto.Decrypter) {
	key := make([]byte, chacha20poly1305.KeySize)
	iv := make([]byte, chacha20poly1305.NonceSize)
	for i := range key {
		key[i] = byte(i + 1)
	}
	for i := range iv {
		iv[i] = byte(i + 2)
	}
	enc, err := crypto.NewAEADEncrypter(key, iv)
	Expect(err).ToNot(HaveOccurred())
	dec, err := crypto.NewAEADDecrypter(key, iv)
	Expect(err).ToNot(HaveOccurred())
	return enc, dec
}

var _ = Describe("Framer", func() {
	var (
		sender, receiver *Framer
		connID           protocol.ConnectionID
	)

	BeforeEach(func() {
		connID = 0xabcd1234
		sender = NewFramer(protocol.PerspectiveClient, protocol.Version39, connID, time.Time{})
		receiver = NewFramer(protocol.PerspectiveServer, protocol.Version39, connID, time.Time{})

		enc, dec := sharedAEAD()
		sender.Cryptor.SetEncrypter(protocol.EncryptionForwardSecure, enc)
		receiver.Cryptor.SetDecrypter(protocol.EncryptionForwardSecure, dec)
	})

	dataHeader := func(packetNumber protocol.PacketNumber) *wire.PacketHeader {
		return &wire.PacketHeader{
			Public: wire.PacketPublicHeader{
				ConnectionID:    connID,
				ConnectionIDLen: protocol.ConnectionIDLen8,
				PacketNumber:    packetNumber,
				PacketNumberLen: protocol.PacketNumberLen1,
			},
		}
	}

	buildAndSend := func(packetNumber protocol.PacketNumber, frames []wire.Frame) []byte {
		raw, headerLen, err := sender.BuildDataPacket(dataHeader(packetNumber), frames)
		Expect(err).ToNot(HaveOccurred())
		sealed, err := sender.EncryptPacket(protocol.EncryptionForwardSecure, raw, headerLen, packetNumber)
		Expect(err).ToNot(HaveOccurred())
		return sealed
	}

	It("carries a stream frame from build through encrypt through process", func() {
		sealed := buildAndSend(1, []wire.Frame{
			&wire.StreamFrame{StreamID: 4, Data: []byte("hello, stream"), DataLenPresent: true},
		})

		var got *wire.StreamFrame
		visitor := &FrameVisitor{
			OnStreamFrame: func(f *wire.StreamFrame) error {
				got = f
				return nil
			},
		}
		Expect(receiver.ProcessPacket(sealed, visitor, nil, nil)).To(Succeed())
		Expect(got).ToNot(BeNil())
		Expect(got.StreamID).To(Equal(protocol.StreamID(4)))
		Expect(got.Data).To(Equal([]byte("hello, stream")))
		Expect(receiver.Recv.LargestPacketNumber).To(Equal(protocol.PacketNumber(1)))
	})

	It("reconstructs ascending packet numbers across several packets", func() {
		for pn := protocol.PacketNumber(1); pn <= 3; pn++ {
			sealed := buildAndSend(pn, []wire.Frame{&wire.PaddingFrame{}})
			Expect(receiver.ProcessPacket(sealed, &FrameVisitor{}, nil, nil)).To(Succeed())
			Expect(receiver.Recv.LargestPacketNumber).To(Equal(pn))
		}
	})

	It("routes a public reset to onReset instead of the frame visitor", func() {
		sealed := sender.BuildPublicReset(7, 0xdeadbeef)

		var reset *wire.PublicReset
		err := receiver.ProcessPacket(sealed, &FrameVisitor{}, func(pr *wire.PublicReset) {
			reset = pr
		}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(reset).ToNot(BeNil())
		Expect(reset.RejectedPacketNumber).To(Equal(protocol.PacketNumber(7)))
		Expect(reset.NonceProof).To(Equal(uint64(0xdeadbeef)))
	})

	It("routes a version negotiation packet from the server to onVersionNegotiation", func() {
		server := NewFramer(protocol.PerspectiveServer, protocol.Version39, connID, time.Time{})
		sealed := server.BuildVersionNegotiationPacket(protocol.SupportedVersions)

		var versions []protocol.VersionNumber
		client := NewFramer(protocol.PerspectiveClient, protocol.Version39, connID, time.Time{})
		err := client.ProcessPacket(sealed, &FrameVisitor{}, nil, func(v []protocol.VersionNumber) {
			versions = v
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(versions).To(Equal(protocol.SupportedVersions))
	})

	It("stashes an FEC packet's plaintext without invoking the frame visitor, then revives a dropped packet from it", func() {
		raw1, headerLen1, err := sender.BuildDataPacket(dataHeader(1), []wire.Frame{
			&wire.StreamFrame{StreamID: 1, Data: []byte("aaaa")},
		})
		Expect(err).ToNot(HaveOccurred())
		// Skip the 1-byte private flags prefix (these headers carry no FEC
		// group of their own) to get at the frame bytes alone, matching
		// what ProcessRevivedPacket expects to receive.
		plaintext1 := raw1[headerLen1+1:]

		raw2, headerLen2, err := sender.BuildDataPacket(dataHeader(2), []wire.Frame{
			&wire.StreamFrame{StreamID: 1, Data: []byte("bbbb")},
		})
		Expect(err).ToNot(HaveOccurred())
		plaintext2 := raw2[headerLen2+1:]

		group := fec.NewBuilder()
		Expect(group.AddPacket(1, plaintext1)).To(Succeed())
		Expect(group.AddPacket(2, plaintext2)).To(Succeed())
		redundancy := group.Redundancy()

		rawFEC, headerLenFEC, err := sender.BuildFECPacket(dataHeader(3), redundancy)
		Expect(err).ToNot(HaveOccurred())
		sealedFEC, err := sender.EncryptPacket(protocol.EncryptionForwardSecure, rawFEC, headerLenFEC, 3)
		Expect(err).ToNot(HaveOccurred())

		visitorCalled := false
		visitor := &FrameVisitor{OnStreamFrame: func(*wire.StreamFrame) error {
			visitorCalled = true
			return nil
		}}
		Expect(receiver.ProcessPacket(sealedFEC, visitor, nil, nil)).To(Succeed())
		Expect(visitorCalled).To(BeFalse())
		Expect(receiver.FEC.NumPackets()).To(Equal(1))
		Expect(receiver.FEC.Redundancy()).To(Equal(redundancy))

		// Packet 2 never arrived: revive it from the stashed redundancy and
		// packet 1's plaintext, then dispatch it as if it had arrived directly.
		revived := fec.Revive(receiver.FEC.Redundancy(), [][]byte{plaintext1})
		Expect(revived).To(Equal(plaintext2))

		var got *wire.StreamFrame
		revivedVisitor := &FrameVisitor{OnStreamFrame: func(f *wire.StreamFrame) error {
			got = f
			return nil
		}}
		Expect(receiver.ProcessRevivedPacket(revived, 2, protocol.PacketNumberLen1, revivedVisitor)).To(Succeed())
		Expect(got).ToNot(BeNil())
		Expect(got.Data).To(Equal([]byte("bbbb")))
	})
})
