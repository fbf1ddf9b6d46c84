package wire

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("frame type classification", func() {
	It("classifies a Stream frame from its even low bit", func() {
		category, _ := classifyFrameType(0xA0) // bit0 == 0
		Expect(category).To(Equal(frameCategoryStream))
	})

	It("classifies an Ack frame", func() {
		category, _ := classifyFrameType(0x01)
		Expect(category).To(Equal(frameCategoryAck))
	})

	It("classifies a CongestionFeedback frame", func() {
		category, _ := classifyFrameType(0x03)
		Expect(category).To(Equal(frameCategoryCongestionFeedback))
	})

	It("classifies every general frame type via the high bits", func() {
		for _, gt := range []generalFrameType{
			generalFramePadding, generalFrameRstStream, generalFrameConnectionClose,
			generalFrameGoAway, generalFrameStopWaiting, generalFrameBlocked,
		} {
			typeByte := encodeGeneralFrameType(gt)
			category, decoded := classifyFrameType(typeByte)
			Expect(category).To(Equal(frameCategoryGeneral))
			Expect(decoded).To(Equal(gt))
		}
	})

	It("rejects a general type byte with an unassigned high-bit value", func() {
		category, _ := classifyFrameType(byte(6)<<generalFrameShift | frameTypeGeneralTag)
		Expect(category).To(Equal(frameCategoryInvalid))
	})

	It("round-trips the stream type byte flags", func() {
		typeByte := encodeStreamTypeByte(true, false, 3, 2)
		fin, hasLength, offsetCode, idCode := decodeStreamTypeByte(typeByte)
		Expect(fin).To(BeTrue())
		Expect(hasLength).To(BeFalse())
		Expect(offsetCode).To(Equal(uint8(3)))
		Expect(idCode).To(Equal(uint8(2)))
	})
})
