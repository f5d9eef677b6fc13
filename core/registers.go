package core

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRegisterCount is the size of the register file used for programs
// that bind the instruction pointer.
const DefaultRegisterCount = 6

// Registers is the register file of the machine.
type Registers []uint64

// NewRegisters creates a register file of n zeroed registers.
func NewRegisters(n int) Registers {
	return make(Registers, n)
}

// ParseRegisters parses a snapshot such as "3, 2, 1, 1".
func ParseRegisters(s string) (Registers, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty snapshot", ErrMalformedRegisters)
	}

	fields := strings.Split(s, ",")
	regs := make(Registers, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedRegisters, s, err)
		}
		regs[i] = v
	}

	return regs, nil
}

// Clone returns an independent copy of the register file.
func (r Registers) Clone() Registers {
	c := make(Registers, len(r))
	copy(c, r)
	return c
}

// Equal reports whether both register files hold the same values.
func (r Registers) Equal(other Registers) bool {
	if len(r) != len(other) {
		return false
	}

	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}

	return true
}

// String formats the register file in the snapshot format accepted by
// ParseRegisters.
func (r Registers) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.FormatUint(v, 10)
	}

	return strings.Join(parts, ", ")
}

func (r Registers) checkIndex(idx uint64) error {
	if idx >= uint64(len(r)) {
		return fmt.Errorf("%w: r%d with %d registers",
			ErrRegisterOutOfRange, idx, len(r))
	}

	return nil
}

func (r Registers) read(idx uint64) (uint64, error) {
	if err := r.checkIndex(idx); err != nil {
		return 0, err
	}

	return r[idx], nil
}
