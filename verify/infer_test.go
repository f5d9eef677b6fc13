package verify

import (
	"math/rand"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chronal/core"
)

// generateSamples executes the opcode assigned to every id on random small
// register files, the way the device manual's samples were recorded.
func generateSamples(assign []core.Opcode, perID int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))

	var samples []Sample
	for id, op := range assign {
		for n := 0; n < perID; n++ {
			before := core.NewRegisters(SampleRegisterCount)
			for i := range before {
				before[i] = uint64(rng.Intn(4))
			}
			raw := RawInstruction{
				uint64(id),
				uint64(rng.Intn(4)),
				uint64(rng.Intn(4)),
				uint64(rng.Intn(4)),
			}
			after := before.Clone()
			Expect(raw.WithOpcode(op).Execute(after)).To(Succeed())
			samples = append(samples, Sample{Before: before, Raw: raw, After: after})
		}
	}

	return samples
}

var _ = ginkgo.Describe("Opcode inference", func() {
	var (
		threeWay Sample
		onlyAddi Sample
		addOrAdd Sample
	)

	ginkgo.BeforeEach(func() {
		threeWay = Sample{
			Before: core.Registers{3, 2, 1, 1},
			Raw:    RawInstruction{7, 2, 1, 2},
			After:  core.Registers{3, 2, 2, 1},
		}
		onlyAddi = Sample{
			Before: core.Registers{0, 5, 0, 0},
			Raw:    RawInstruction{7, 1, 3, 2},
			After:  core.Registers{0, 5, 8, 0},
		}
		addOrAdd = Sample{
			Before: core.Registers{1, 1, 1, 1},
			Raw:    RawInstruction{7, 0, 1, 3},
			After:  core.Registers{1, 1, 1, 2},
		}
	})

	ginkgo.Context("Matches", func() {
		ginkgo.It("should find the three opcodes of the manual's example", func() {
			Expect(Matches(threeWay)).To(Equal(NewOpcodeSet(core.Mulr, core.Addi, core.Seti)))
		})

		ginkgo.It("should narrow to a single opcode", func() {
			Expect(Matches(onlyAddi)).To(Equal(NewOpcodeSet(core.Addi)))
			Expect(Matches(addOrAdd)).To(Equal(NewOpcodeSet(core.Addr, core.Addi)))
		})

		ginkgo.It("should treat faulting opcodes as inconsistent", func() {
			s := Sample{
				Before: core.Registers{0, 0, 0, 0},
				Raw:    RawInstruction{0, 9, 9, 0},
				After:  core.Registers{9, 0, 0, 0},
			}
			Expect(Matches(s)).To(Equal(NewOpcodeSet(core.Seti)))
		})

		ginkgo.It("should count samples that behave like three or more opcodes", func() {
			samples := []Sample{threeWay, onlyAddi, addOrAdd}
			Expect(CountMatching(samples, 3)).To(Equal(1))
			Expect(CountMatching(samples, 2)).To(Equal(2))
		})
	})

	ginkgo.Context("Candidates", func() {
		ginkgo.It("should intersect all samples of an id", func() {
			cands, err := Candidates([]Sample{threeWay, onlyAddi, addOrAdd})
			Expect(err).NotTo(HaveOccurred())

			Expect(cands[7]).To(Equal(NewOpcodeSet(core.Addi)))
			Expect(cands[0]).To(Equal(AllOpcodes))
		})

		ginkgo.It("should reject ids beyond the opcode count", func() {
			threeWay.Raw[0] = 16
			_, err := Candidates([]Sample{threeWay})
			Expect(err).To(MatchError(ErrUnknownID))
		})
	})

	ginkgo.Context("Resolve", func() {
		ginkgo.It("should recover a permutation of the opcodes", func() {
			assign := make([]core.Opcode, core.OpcodeCount)
			for id, n := range rand.New(rand.NewSource(16)).Perm(core.OpcodeCount) {
				assign[id] = core.Opcode(n)
			}
			samples := generateSamples(assign, 40, 2018)

			mapping, err := Resolve(samples)
			Expect(err).NotTo(HaveOccurred())
			Expect(mapping).To(HaveLen(core.OpcodeCount))
			for id, op := range assign {
				Expect(mapping[uint64(id)]).To(Equal(op), "id %d", id)
			}
		})

		ginkgo.It("should never give one opcode to two ids", func() {
			var cands [core.OpcodeCount]OpcodeSet
			for id := range cands {
				cands[id] = NewOpcodeSet(core.Opcode(id))
			}
			cands[7] = NewOpcodeSet(core.Addi)
			cands[core.Addi] = NewOpcodeSet(core.Addi, core.Bori)

			mapping, err := Propagate(cands)
			Expect(err).NotTo(HaveOccurred())
			Expect(mapping[7]).To(Equal(core.Addi))
			Expect(mapping[uint64(core.Addi)]).To(Equal(core.Bori))

			seen := map[core.Opcode]bool{}
			for _, op := range mapping {
				Expect(seen[op]).To(BeFalse())
				seen[op] = true
			}
		})

		ginkgo.It("should report ambiguity instead of looping", func() {
			_, err := Resolve(nil)
			Expect(err).To(MatchError(ErrAmbiguous))
		})

		ginkgo.It("should report two ids fixed to the same opcode", func() {
			var cands [core.OpcodeCount]OpcodeSet
			for id := range cands {
				cands[id] = NewOpcodeSet(core.Opcode(id))
			}
			cands[3] = NewOpcodeSet(core.Seti)

			_, err := Propagate(cands)
			Expect(err).To(MatchError(ErrContradiction))
		})

		ginkgo.It("should report an id without candidates", func() {
			impossible := Sample{
				Before: core.Registers{0, 0, 0, 0},
				Raw:    RawInstruction{2, 0, 0, 0},
				After:  core.Registers{1, 1, 0, 0},
			}
			_, err := Resolve([]Sample{impossible})
			Expect(err).To(MatchError(ErrContradiction))
		})
	})

	ginkgo.Context("Mapping", func() {
		ginkgo.It("should decode raw instructions", func() {
			m := Mapping{7: core.Addi}

			inst, err := m.Decode(RawInstruction{7, 1, 3, 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(inst).To(Equal(core.NewInstruction(core.Addi, 1, 3, 2)))

			_, err = m.DecodeAll([]RawInstruction{{7, 0, 0, 0}, {4, 0, 0, 0}})
			Expect(err).To(MatchError(ErrUnmappedOpcode))
			Expect(err.Error()).To(ContainSubstring("instruction 1"))
		})
	})

	ginkgo.Context("OpcodeSet", func() {
		ginkgo.It("should behave like a set", func() {
			s := NewOpcodeSet(core.Addr, core.Eqrr)
			Expect(s.Len()).To(Equal(2))
			Expect(s.Has(core.Eqrr)).To(BeTrue())
			Expect(s.Has(core.Addi)).To(BeFalse())
			Expect(s.String()).To(Equal("{addr eqrr}"))

			_, ok := s.Only()
			Expect(ok).To(BeFalse())

			op, ok := s.Remove(NewOpcodeSet(core.Addr)).Only()
			Expect(ok).To(BeTrue())
			Expect(op).To(Equal(core.Eqrr))

			Expect(AllOpcodes.Len()).To(Equal(core.OpcodeCount))
			Expect(AllOpcodes.Intersect(s)).To(Equal(s))
		})
	})
})
