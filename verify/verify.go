// Package verify recovers the opcode numbering of the register machine from
// observed executions.
//
// The input is a list of samples. Each sample shows the register file
// before and after one instruction whose opcode is known only by a numeric
// id:
//
//	Before: [3, 2, 1, 1]
//	9 2 1 2
//	After:  [3, 2, 2, 1]
//
// An opcode is consistent with a sample when executing it against Before
// yields exactly After. Intersecting the consistent opcodes over every
// sample of an id gives that id's candidates. Resolve then fixes every id
// with a single candidate, removes the claimed opcodes from all other ids
// and repeats until all sixteen ids are assigned.
//
// # Limitations
//
// Resolve does no backtracking. When a round fixes nothing it gives up with
// ErrAmbiguous instead of searching, and it never needs more rounds than
// there are opcodes.
package verify

import (
	"errors"
	"fmt"

	"github.com/sarchlab/chronal/core"
)

var (
	// ErrMalformedInput is returned when sample text cannot be parsed.
	ErrMalformedInput = errors.New("malformed sample input")

	// ErrUnknownID is returned for raw opcode ids outside [0, 16).
	ErrUnknownID = errors.New("opcode id out of range")

	// ErrAmbiguous is returned when propagation stops before every id has a
	// unique opcode.
	ErrAmbiguous = errors.New("opcode assignment is ambiguous")

	// ErrContradiction is returned when the samples admit no assignment.
	ErrContradiction = errors.New("samples contradict each other")

	// ErrUnmappedOpcode is returned when decoding an id the mapping lacks.
	ErrUnmappedOpcode = errors.New("opcode id not mapped")
)

// SampleRegisterCount is the size of the register file in samples.
const SampleRegisterCount = 4

// Mapping assigns a named opcode to every raw opcode id.
type Mapping map[uint64]core.Opcode

// Decode turns a raw instruction into an executable instruction.
func (m Mapping) Decode(raw RawInstruction) (core.Instruction, error) {
	op, ok := m[raw.ID()]
	if !ok {
		return core.Instruction{}, ErrUnmappedOpcode
	}

	return core.NewInstruction(op, raw[1], raw[2], raw[3]), nil
}

// DecodeAll decodes a whole raw program.
func (m Mapping) DecodeAll(raws []RawInstruction) ([]core.Instruction, error) {
	insts := make([]core.Instruction, 0, len(raws))
	for n, raw := range raws {
		inst, err := m.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("instruction %d (id %d): %w", n, raw.ID(), err)
		}
		insts = append(insts, inst)
	}

	return insts, nil
}
