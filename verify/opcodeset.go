package verify

import (
	"math/bits"
	"strings"

	"github.com/sarchlab/chronal/core"
)

// OpcodeSet is a set of opcodes.
type OpcodeSet uint16

// AllOpcodes is the set of every opcode.
const AllOpcodes OpcodeSet = 1<<core.OpcodeCount - 1

// NewOpcodeSet creates a set holding ops.
func NewOpcodeSet(ops ...core.Opcode) OpcodeSet {
	var s OpcodeSet
	for _, op := range ops {
		s = s.Add(op)
	}
	return s
}

// Add returns s with op added.
func (s OpcodeSet) Add(op core.Opcode) OpcodeSet {
	return s | 1<<uint(op)
}

// Remove returns s without the opcodes in other.
func (s OpcodeSet) Remove(other OpcodeSet) OpcodeSet {
	return s &^ other
}

// Intersect returns the opcodes in both sets.
func (s OpcodeSet) Intersect(other OpcodeSet) OpcodeSet {
	return s & other
}

// Has reports whether op is in s.
func (s OpcodeSet) Has(op core.Opcode) bool {
	return s&(1<<uint(op)) != 0
}

// Len returns the number of opcodes in s.
func (s OpcodeSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Only returns the single opcode of a one-element set.
func (s OpcodeSet) Only() (core.Opcode, bool) {
	if s.Len() != 1 {
		return 0, false
	}
	return core.Opcode(bits.TrailingZeros16(uint16(s))), true
}

// Opcodes lists the members of s in opcode order.
func (s OpcodeSet) Opcodes() []core.Opcode {
	var ops []core.Opcode
	for _, op := range core.AllOpcodes() {
		if s.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

func (s OpcodeSet) String() string {
	ops := s.Opcodes()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return "{" + strings.Join(names, " ") + "}"
}
