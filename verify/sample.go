package verify

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/chronal/core"
)

// RawInstruction is an instruction whose opcode is only known by its id:
// id, A, B, C.
type RawInstruction [4]uint64

// ID returns the raw opcode id.
func (r RawInstruction) ID() uint64 {
	return r[0]
}

// WithOpcode binds the operands of r to a named opcode.
func (r RawInstruction) WithOpcode(op core.Opcode) core.Instruction {
	return core.NewInstruction(op, r[1], r[2], r[3])
}

// ParseRawInstruction parses a line such as "9 2 1 2".
func ParseRawInstruction(line string) (RawInstruction, error) {
	var raw RawInstruction

	fields := strings.Fields(line)
	if len(fields) != len(raw) {
		return raw, fmt.Errorf("%w: %q: want 4 numbers, got %d",
			ErrMalformedInput, line, len(fields))
	}

	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return raw, fmt.Errorf("%w: %q: %v", ErrMalformedInput, line, err)
		}
		raw[i] = v
	}

	return raw, nil
}

// Sample is one observed execution of an instruction with an unknown
// opcode.
type Sample struct {
	Before core.Registers
	Raw    RawInstruction
	After  core.Registers
}

// Input is a parsed sample file: the samples followed by a raw program.
type Input struct {
	Samples []Sample
	Program []RawInstruction
}

type parseState int

const (
	expectBefore parseState = iota
	expectRaw
	expectAfter
)

// ParseInput parses sample text. Samples are groups of a "Before:" line,
// a raw instruction and an "After:" line. Every other non-blank line after
// the samples belongs to the raw program.
func ParseInput(text string) (*Input, error) {
	in := &Input{}
	scanner := bufio.NewScanner(strings.NewReader(text))

	state := expectBefore
	var cur Sample
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		switch state {
		case expectBefore:
			if !strings.HasPrefix(line, "Before:") {
				var raw RawInstruction
				raw, err = ParseRawInstruction(line)
				in.Program = append(in.Program, raw)
				break
			}
			if len(in.Program) > 0 {
				err = fmt.Errorf("%w: sample after the program started", ErrMalformedInput)
				break
			}
			cur = Sample{}
			cur.Before, err = parseSnapshot(line, "Before:")
			state = expectRaw
		case expectRaw:
			cur.Raw, err = ParseRawInstruction(line)
			state = expectAfter
		case expectAfter:
			cur.After, err = parseSnapshot(line, "After:")
			in.Samples = append(in.Samples, cur)
			state = expectBefore
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}

	if state != expectBefore {
		return nil, fmt.Errorf("%w: truncated sample at end of input", ErrMalformedInput)
	}

	return in, nil
}

func parseSnapshot(line, prefix string) (core.Registers, error) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: want %q, got %q", ErrMalformedInput, prefix, line)
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return nil, fmt.Errorf("%w: registers not bracketed in %q", ErrMalformedInput, line)
	}

	regs, err := core.ParseRegisters(rest[1 : len(rest)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	if len(regs) != SampleRegisterCount {
		return nil, fmt.Errorf("%w: want %d registers, got %d",
			ErrMalformedInput, SampleRegisterCount, len(regs))
	}

	return regs, nil
}
