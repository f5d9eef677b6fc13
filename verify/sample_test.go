package verify

import (
	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chronal/core"
)

const sampleInput = `Before: [3, 2, 1, 1]
9 2 1 2
After:  [3, 2, 2, 1]

Before: [0, 5, 0, 0]
7 1 3 2
After:  [0, 5, 8, 0]



7 3 2 0
7 2 1 1
`

var _ = ginkgo.Describe("ParseInput", func() {
	ginkgo.It("should parse samples and the raw program", func() {
		in, err := ParseInput(sampleInput)
		Expect(err).NotTo(HaveOccurred())

		Expect(in.Samples).To(HaveLen(2))
		Expect(in.Samples[0].Before).To(Equal(core.Registers{3, 2, 1, 1}))
		Expect(in.Samples[0].Raw).To(Equal(RawInstruction{9, 2, 1, 2}))
		Expect(in.Samples[0].After).To(Equal(core.Registers{3, 2, 2, 1}))
		Expect(in.Samples[1].Raw.ID()).To(Equal(uint64(7)))

		Expect(in.Program).To(Equal([]RawInstruction{{7, 3, 2, 0}, {7, 2, 1, 1}}))
	})

	ginkgo.It("should accept input without a program", func() {
		in, err := ParseInput("Before: [0, 0, 0, 0]\n1 0 0 0\nAfter: [0, 0, 0, 0]\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Samples).To(HaveLen(1))
		Expect(in.Program).To(BeEmpty())
	})

	ginkgo.It("should reject a truncated sample", func() {
		_, err := ParseInput("Before: [3, 2, 1, 1]\n9 2 1 2\n")
		Expect(err).To(MatchError(ErrMalformedInput))
	})

	ginkgo.It("should reject a sample without After", func() {
		_, err := ParseInput("Before: [3, 2, 1, 1]\n9 2 1 2\nBefore: [3, 2, 1, 1]\n")
		Expect(err).To(MatchError(ErrMalformedInput))
		Expect(err.Error()).To(ContainSubstring("line 3"))
	})

	ginkgo.It("should reject snapshots of the wrong size", func() {
		_, err := ParseInput("Before: [3, 2, 1]\n9 2 1 2\nAfter: [3, 2, 2]\n")
		Expect(err).To(MatchError(ErrMalformedInput))
	})

	ginkgo.It("should reject unbracketed snapshots", func() {
		_, err := ParseInput("Before: 3, 2, 1, 1\n9 2 1 2\nAfter: [3, 2, 2, 1]\n")
		Expect(err).To(MatchError(ErrMalformedInput))
	})

	ginkgo.It("should reject samples after the program", func() {
		_, err := ParseInput("1 2 3 4\nBefore: [3, 2, 1, 1]\n9 2 1 2\nAfter: [3, 2, 2, 1]\n")
		Expect(err).To(MatchError(ErrMalformedInput))
	})

	ginkgo.It("should reject bad raw instructions", func() {
		_, err := ParseRawInstruction("1 2 3")
		Expect(err).To(MatchError(ErrMalformedInput))

		_, err = ParseRawInstruction("1 2 x 4")
		Expect(err).To(MatchError(ErrMalformedInput))
	})
})
