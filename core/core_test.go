package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
)

var _ = Describe("Core", func() {
	var (
		engine sim.Engine
		c      *Core
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		c = NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Core")
	})

	It("should run a program to halt, one instruction per cycle", func() {
		m := mustMachine(exampleProgram, NewRegisters(6))
		c.Load(m)

		Expect(engine.Run()).To(Succeed())
		Expect(c.Err()).NotTo(HaveOccurred())
		Expect(c.Halted()).To(BeTrue())
		Expect(c.Cycles()).To(Equal(uint64(5)))
		Expect(m.Registers()[0]).To(Equal(uint64(7)))
		Expect(c.FinishTime()).To(BeNumerically(">", 0))
	})

	It("should stop at the step limit", func() {
		c = NewBuilder().
			WithEngine(engine).
			WithStepLimit(10).
			Build("LimitedCore")
		m := mustMachine(loopProgram, NewRegisters(4))
		c.Load(m)

		Expect(engine.Run()).To(Succeed())
		Expect(c.Err()).To(MatchError(ErrStepLimit))
		Expect(c.Cycles()).To(Equal(uint64(10)))
		Expect(c.Halted()).To(BeFalse())
	})

	It("should stop on a fault", func() {
		m := mustMachine("#ip 0\nseti 1 0 1\naddr 0 9 1\nseti 5 0 2\n", NewRegisters(6))
		c.Load(m)

		Expect(engine.Run()).To(Succeed())
		Expect(c.Err()).To(MatchError(ErrRegisterOutOfRange))
		Expect(c.Cycles()).To(Equal(uint64(1)))
		Expect(m.Registers()[2]).To(Equal(uint64(0)))
	})

	It("should not tick without a machine", func() {
		Expect(c.Tick()).To(BeFalse())
		Expect(c.Halted()).To(BeFalse())
	})
})
