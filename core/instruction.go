package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is a decoded instruction of the register machine.
type Instruction struct {
	Opcode Opcode
	A      uint64 // input1, a register index or a literal depending on Opcode
	B      uint64 // input2, a register index or a literal depending on Opcode
	C      uint64 // output register
}

// NewInstruction creates an instruction from an opcode and its three
// operands.
func NewInstruction(op Opcode, a, b, c uint64) Instruction {
	return Instruction{Opcode: op, A: a, B: b, C: c}
}

// ParseInstruction parses a line such as "addi 0 1 0".
func ParseInstruction(line string) (Instruction, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 4 {
		return Instruction{}, fmt.Errorf("%w: %q: want 4 fields, got %d",
			ErrMalformedInstruction, line, len(tokens))
	}

	op, err := ParseOpcode(tokens[0])
	if err != nil {
		return Instruction{}, err
	}

	var operands [3]uint64
	for i, tok := range tokens[1:] {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return Instruction{}, fmt.Errorf("%w: %q: operand %d: %v",
				ErrMalformedInstruction, line, i+1, err)
		}
		operands[i] = v
	}

	return NewInstruction(op, operands[0], operands[1], operands[2]), nil
}

// String formats the instruction in the text format of ParseInstruction.
func (i Instruction) String() string {
	return fmt.Sprintf("%s %d %d %d", i.Opcode, i.A, i.B, i.C)
}

// Registers returns the register indices the instruction touches, the
// output register last.
func (i Instruction) Registers() []uint64 {
	var idx []uint64

	modeA, modeB := i.Opcode.Modes()
	if modeA == Register {
		idx = append(idx, i.A)
	}
	if modeB == Register {
		idx = append(idx, i.B)
	}

	return append(idx, i.C)
}
