package protocol

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("VersionNumber", func() {
	It("round-trips through its wire tag", func() {
		tag := VersionNumberToTag(Version39)
		Expect(VersionTagToNumber(tag)).To(Equal(Version39))
	})

	It("reports whether a version is in a supported list", func() {
		Expect(IsSupportedVersion(SupportedVersions, Version38)).To(BeTrue())
		Expect(IsSupportedVersion(SupportedVersions, VersionNumber(99))).To(BeFalse())
	})

	It("chooses the first mutually supported version in our preference order", func() {
		ours := []VersionNumber{Version39, Version38, Version37}
		theirs := []VersionNumber{Version37, Version38}
		Expect(ChooseSupportedVersion(ours, theirs)).To(Equal(Version38))
	})

	It("reports VersionUnsupported when there is no overlap", func() {
		ours := []VersionNumber{Version39}
		theirs := []VersionNumber{Version37}
		Expect(ChooseSupportedVersion(ours, theirs)).To(Equal(VersionUnsupported))
	})
})
