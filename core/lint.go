package core

import "fmt"

// IssueType categorizes lint issues.
type IssueType string

const (
	IssueRegister IssueType = "REGISTER" // register index outside the register file
	IssueIP       IssueType = "IP"       // instruction pointer binding cannot work
)

// Issue is a single problem found by Lint.
type Issue struct {
	Type    IssueType
	PC      int // instruction address, -1 for program-level issues
	Message string
}

func (i Issue) String() string {
	if i.PC < 0 {
		return fmt.Sprintf("[%s] %s", i.Type, i.Message)
	}
	return fmt.Sprintf("[%s] pc=%d: %s", i.Type, i.PC, i.Message)
}

// Lint checks a program against a register file of numRegisters registers
// without running it. Every issue it reports would fault at run time if the
// instruction were reached.
func Lint(p *Program, numRegisters int) []Issue {
	var issues []Issue

	if p.IPRegister < 0 || p.IPRegister >= numRegisters {
		issues = append(issues, Issue{
			Type: IssueIP,
			PC:   -1,
			Message: fmt.Sprintf("ip bound to r%d but only %d registers",
				p.IPRegister, numRegisters),
		})
	}

	for pc, inst := range p.Instructions {
		for _, idx := range inst.Registers() {
			if idx < uint64(numRegisters) {
				continue
			}
			issues = append(issues, Issue{
				Type: IssueRegister,
				PC:   pc,
				Message: fmt.Sprintf("%s uses r%d but only %d registers",
					inst, idx, numRegisters),
			})
		}
	}

	return issues
}
