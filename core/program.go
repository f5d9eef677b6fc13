package core

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Program is a list of instructions together with the register that is
// bound to the instruction pointer.
type Program struct {
	IPRegister   int
	Instructions []Instruction
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// ParseProgram parses program text. The first non-blank line declares the
// instruction pointer register ("#ip 0"); every following non-blank line is
// one instruction. Any malformed line fails the whole load.
func ParseProgram(text string) (*Program, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))

	prog := &Program{IPRegister: -1}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if prog.IPRegister < 0 {
			ip, err := parseIPDirective(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			prog.IPRegister = ip
			continue
		}

		inst, err := ParseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		prog.Instructions = append(prog.Instructions, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	if prog.IPRegister < 0 {
		return nil, fmt.Errorf("%w: missing #ip declaration", ErrMalformedProgram)
	}

	return prog, nil
}

func parseIPDirective(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "#ip" {
		return 0, fmt.Errorf("%w: want \"#ip N\", got %q", ErrMalformedProgram, line)
	}

	ip, err := strconv.Atoi(fields[1])
	if err != nil || ip < 0 {
		return 0, fmt.Errorf("%w: bad ip register %q", ErrMalformedProgram, fields[1])
	}

	return ip, nil
}

// LoadProgramFile reads and parses a program from a file.
func LoadProgramFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	prog, err := ParseProgram(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	Trace("ProgramLoaded",
		"Path", path,
		"IP", prog.IPRegister,
		"Instructions", prog.Len(),
	)

	return prog, nil
}

// String serializes the program in the format accepted by ParseProgram.
func (p *Program) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "#ip %d\n", p.IPRegister)
	for _, inst := range p.Instructions {
		b.WriteString(inst.String())
		b.WriteByte('\n')
	}

	return b.String()
}
