package h2adapt

import (
	"bytes"

	"golang.org/x/net/http2"

	"github.com/quicwire/framer/internal/protocol"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameBoundaries", func() {
	It("finds the boundary after each whole HTTP/2 frame", func() {
		var buf bytes.Buffer
		fr := http2.NewFramer(&buf, nil)
		Expect(fr.WriteData(1, false, []byte("first payload"))).To(Succeed())
		firstLen := buf.Len()
		Expect(fr.WriteData(1, true, []byte("second, longer payload"))).To(Succeed())

		offsets := FrameBoundaries(buf.Bytes())
		Expect(offsets).To(HaveLen(2))
		Expect(offsets[0]).To(Equal(firstLen))
		Expect(offsets[1]).To(Equal(buf.Len()))
	})

	It("returns no boundaries for data that isn't a valid HTTP/2 frame", func() {
		offsets := FrameBoundaries([]byte("not an http2 frame at all"))
		Expect(offsets).To(BeEmpty())
	})
})

var _ = Describe("PreferredSplitPoint", func() {
	It("cuts at the last whole frame boundary within the limit", func() {
		var buf bytes.Buffer
		fr := http2.NewFramer(&buf, nil)
		Expect(fr.WriteData(1, false, []byte("aaaaaaaaaa"))).To(Succeed())
		firstLen := buf.Len()
		Expect(fr.WriteData(1, true, []byte("bbbbbbbbbbbbbbbbbbbb"))).To(Succeed())

		split := PreferredSplitPoint(buf.Bytes(), protocol.ByteCount(firstLen+5))
		Expect(split).To(Equal(protocol.ByteCount(firstLen)))
	})

	It("falls back to maxLen when data is shorter than the limit", func() {
		data := []byte("short")
		split := PreferredSplitPoint(data, 100)
		Expect(split).To(Equal(protocol.ByteCount(100)))
	})

	It("falls back to maxLen when no frame boundary fits under the limit", func() {
		var buf bytes.Buffer
		fr := http2.NewFramer(&buf, nil)
		Expect(fr.WriteData(1, true, bytes.Repeat([]byte("x"), 50))).To(Succeed())

		split := PreferredSplitPoint(buf.Bytes(), 3)
		Expect(split).To(Equal(protocol.ByteCount(3)))
	})
})
