package core

import (
	"fmt"
	"math"
)

// Step records one executed instruction.
type Step struct {
	Count       uint64 // 1-based number of the step
	PC          uint64 // address of the executed instruction
	Instruction Instruction
	Registers   Registers // snapshot after the instruction pointer update
}

// StepObserver is notified after every instruction a Machine executes.
type StepObserver interface {
	ObserveStep(step Step)
}

// Machine executes a Program against a register file. The program counter
// lives in the register the program binds to the instruction pointer, so
// instructions that write that register perform jumps.
type Machine struct {
	program   *Program
	regs      Registers
	steps     uint64
	fault     error
	observers []StepObserver

	// pastEnd is set when the instruction pointer cannot be incremented
	// without wrapping back into the program.
	pastEnd bool
}

// NewMachine creates a machine that runs program on regs. The machine
// takes ownership of regs and mutates it in place.
func NewMachine(program *Program, regs Registers) (*Machine, error) {
	if program.IPRegister < 0 || program.IPRegister >= len(regs) {
		return nil, fmt.Errorf("%w: ip bound to r%d with %d registers",
			ErrRegisterOutOfRange, program.IPRegister, len(regs))
	}

	return &Machine{program: program, regs: regs}, nil
}

// AcceptObserver registers an observer that sees every executed step.
func (m *Machine) AcceptObserver(o StepObserver) {
	m.observers = append(m.observers, o)
}

// Program returns the program the machine runs.
func (m *Machine) Program() *Program {
	return m.program
}

// Registers returns the live register file.
func (m *Machine) Registers() Registers {
	return m.regs
}

// PC returns the address of the next instruction.
func (m *Machine) PC() uint64 {
	return m.regs[m.program.IPRegister]
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Halted reports whether the program counter points outside the program.
func (m *Machine) Halted() bool {
	return m.pastEnd || m.PC() >= uint64(m.program.Len())
}

// Err returns the fault that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.fault
}

// Step executes the instruction at the program counter and advances the
// instruction pointer register by one. It returns false once the machine
// has halted. A fault stops the machine for good.
func (m *Machine) Step() (bool, error) {
	if m.fault != nil {
		return false, m.fault
	}

	if m.Halted() {
		return false, nil
	}

	ip := m.program.IPRegister
	pc := m.regs[ip]
	inst := m.program.Instructions[pc]

	if err := inst.Execute(m.regs); err != nil {
		m.fault = fmt.Errorf("pc %d: %w", pc, err)
		Trace("Fault", "PC", pc, "Inst", inst.String(), "Error", err)
		return false, m.fault
	}

	if m.regs[ip] == math.MaxUint64 {
		m.pastEnd = true
	} else {
		m.regs[ip]++
	}
	m.steps++

	if len(m.observers) > 0 {
		step := Step{
			Count:       m.steps,
			PC:          pc,
			Instruction: inst,
			Registers:   m.regs.Clone(),
		}
		for _, o := range m.observers {
			o.ObserveStep(step)
		}
	}

	return true, nil
}

// Run steps the machine until it halts.
func (m *Machine) Run() error {
	return m.RunLimit(0)
}

// RunLimit steps the machine until it halts or maxSteps instructions have
// run in this call. Zero means no limit. Reaching the limit without halting
// returns ErrStepLimit.
func (m *Machine) RunLimit(maxSteps uint64) error {
	for n := uint64(0); maxSteps == 0 || n < maxSteps; n++ {
		ok, err := m.Step()
		if err != nil {
			return err
		}
		if !ok {
			LogState(m)
			return nil
		}
	}

	if m.Halted() {
		LogState(m)
		return nil
	}

	return fmt.Errorf("%w: %d steps, pc %d", ErrStepLimit, maxSteps, m.PC())
}

// RunUntil steps the machine until stop reports true, checked before each
// instruction, or until the machine halts.
func (m *Machine) RunUntil(stop func(m *Machine) bool) error {
	for !m.Halted() {
		if stop(m) {
			return nil
		}

		if _, err := m.Step(); err != nil {
			return err
		}
	}

	return nil
}

// RunToPC steps the machine until the program counter equals pc.
func (m *Machine) RunToPC(pc uint64) error {
	return m.RunUntil(func(m *Machine) bool { return m.PC() == pc })
}
