package core

import (
	"fmt"
	"strings"
)

// Opcode names one of the sixteen operations of the register machine.
type Opcode int

// The opcodes, in the order the device manual lists them.
const (
	Addr Opcode = iota
	Addi
	Mulr
	Muli
	Banr
	Bani
	Borr
	Bori
	Setr
	Seti
	Gtir
	Gtri
	Gtrr
	Eqir
	Eqri
	Eqrr
)

// OpcodeCount is the number of opcodes the machine understands.
const OpcodeCount = 16

// OperandMode tells how an input operand is read.
type OperandMode int

const (
	// Ignored operands are not read at all.
	Ignored OperandMode = iota
	// Register operands name a register whose value is read.
	Register
	// Immediate operands are literal values.
	Immediate
)

type opcodeInfo struct {
	name  string
	modeA OperandMode
	modeB OperandMode
}

var opcodeTable = [OpcodeCount]opcodeInfo{
	Addr: {"addr", Register, Register},
	Addi: {"addi", Register, Immediate},
	Mulr: {"mulr", Register, Register},
	Muli: {"muli", Register, Immediate},
	Banr: {"banr", Register, Register},
	Bani: {"bani", Register, Immediate},
	Borr: {"borr", Register, Register},
	Bori: {"bori", Register, Immediate},
	Setr: {"setr", Register, Ignored},
	Seti: {"seti", Immediate, Ignored},
	Gtir: {"gtir", Immediate, Register},
	Gtri: {"gtri", Register, Immediate},
	Gtrr: {"gtrr", Register, Register},
	Eqir: {"eqir", Immediate, Register},
	Eqri: {"eqri", Register, Immediate},
	Eqrr: {"eqrr", Register, Register},
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, OpcodeCount)
	for op, info := range opcodeTable {
		m[info.name] = Opcode(op)
	}
	return m
}()

// AllOpcodes returns every opcode in declaration order.
func AllOpcodes() []Opcode {
	ops := make([]Opcode, OpcodeCount)
	for i := range ops {
		ops[i] = Opcode(i)
	}
	return ops
}

// ParseOpcode looks an opcode up by its mnemonic, ignoring case.
func ParseOpcode(name string) (Opcode, error) {
	op, ok := opcodeByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOpcode, name)
	}

	return op, nil
}

// Valid reports whether op is one of the sixteen opcodes.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OpcodeCount
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}

	return opcodeTable[op].name
}

// Modes returns how the A and B inputs of op are read. The output C is
// always a register.
func (op Opcode) Modes() (a, b OperandMode) {
	info := opcodeTable[op]
	return info.modeA, info.modeB
}
