package verify

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chronal/core"
)

var _ = ginkgo.Describe("Report", func() {
	ginkgo.It("should summarize a resolved run", func() {
		assign := make([]core.Opcode, core.OpcodeCount)
		for id := range assign {
			assign[id] = core.Opcode(core.OpcodeCount - 1 - id)
		}

		r, err := GenerateReport(generateSamples(assign, 40, 19))
		Expect(err).NotTo(HaveOccurred())
		Expect(r.SampleCount).To(Equal(40 * core.OpcodeCount))
		Expect(r.Resolved()).To(BeTrue())
		Expect(r.Mapping[0]).To(Equal(core.Eqrr))

		var buf bytes.Buffer
		r.WriteReport(&buf)

		out := buf.String()
		Expect(out).To(ContainSubstring("OPCODE INFERENCE REPORT"))
		Expect(out).To(ContainSubstring("All opcode ids resolved"))
		Expect(out).To(ContainSubstring("{eqrr}"))
		Expect(strings.ToLower(out)).To(ContainSubstring("candidates"))
	})

	ginkgo.It("should keep the resolution error", func() {
		in, err := ParseInput(sampleInput)
		Expect(err).NotTo(HaveOccurred())

		r, err := GenerateReport(in.Samples)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Resolved()).To(BeFalse())
		Expect(r.ResolveErr).To(MatchError(ErrAmbiguous))
		Expect(r.ThreeOrMore).To(Equal(1))
		Expect(r.Candidates[7]).To(Equal(NewOpcodeSet(core.Addi)))

		var buf bytes.Buffer
		r.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("Resolution failed"))
	})

	ginkgo.It("should fail on an unknown id", func() {
		_, err := GenerateReport([]Sample{{
			Before: core.Registers{0, 0, 0, 0},
			Raw:    RawInstruction{20, 0, 0, 0},
			After:  core.Registers{0, 0, 0, 0},
		}})
		Expect(err).To(MatchError(ErrUnknownID))
	})

	ginkgo.It("should save to a file", func() {
		r, err := GenerateReport(nil)
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(ginkgo.GinkgoT().TempDir(), "report.txt")
		Expect(r.SaveReportToFile(path)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("Samples: 0"))
	})
})
