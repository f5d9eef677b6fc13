package core

import "fmt"

type aluFunc func(a, b uint64) uint64

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

var aluFuncs = [OpcodeCount]aluFunc{
	Addr: func(a, b uint64) uint64 { return a + b },
	Addi: func(a, b uint64) uint64 { return a + b },
	Mulr: func(a, b uint64) uint64 { return a * b },
	Muli: func(a, b uint64) uint64 { return a * b },
	Banr: func(a, b uint64) uint64 { return a & b },
	Bani: func(a, b uint64) uint64 { return a & b },
	Borr: func(a, b uint64) uint64 { return a | b },
	Bori: func(a, b uint64) uint64 { return a | b },
	Setr: func(a, _ uint64) uint64 { return a },
	Seti: func(a, _ uint64) uint64 { return a },
	Gtir: func(a, b uint64) uint64 { return boolWord(a > b) },
	Gtri: func(a, b uint64) uint64 { return boolWord(a > b) },
	Gtrr: func(a, b uint64) uint64 { return boolWord(a > b) },
	Eqir: func(a, b uint64) uint64 { return boolWord(a == b) },
	Eqri: func(a, b uint64) uint64 { return boolWord(a == b) },
	Eqrr: func(a, b uint64) uint64 { return boolWord(a == b) },
}

func readOperand(mode OperandMode, v uint64, regs Registers) (uint64, error) {
	switch mode {
	case Register:
		return regs.read(v)
	case Immediate:
		return v, nil
	default:
		return 0, nil
	}
}

// Execute applies the instruction to regs. Only regs[C] is written. When
// any register index is out of range the register file is left untouched
// and an error wrapping ErrRegisterOutOfRange is returned.
func (i Instruction) Execute(regs Registers) error {
	if !i.Opcode.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownOpcode, i.Opcode)
	}

	modeA, modeB := i.Opcode.Modes()

	a, err := readOperand(modeA, i.A, regs)
	if err != nil {
		return fmt.Errorf("%s: input A: %w", i, err)
	}

	b, err := readOperand(modeB, i.B, regs)
	if err != nil {
		return fmt.Errorf("%s: input B: %w", i, err)
	}

	if err := regs.checkIndex(i.C); err != nil {
		return fmt.Errorf("%s: output: %w", i, err)
	}

	regs[i.C] = aluFuncs[i.Opcode](a, b)

	return nil
}

// ExecuteSequence runs the instructions one after the other without an
// instruction pointer binding and stops at the first fault.
func ExecuteSequence(insts []Instruction, regs Registers) error {
	for n, inst := range insts {
		if err := inst.Execute(regs); err != nil {
			return fmt.Errorf("instruction %d: %w", n, err)
		}
	}

	return nil
}
