package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/chronal/core"
)

// Report summarizes an opcode inference run.
type Report struct {
	SampleCount int
	// ThreeOrMore counts samples that behave like three or more opcodes.
	ThreeOrMore int
	Candidates  [core.OpcodeCount]OpcodeSet
	Mapping     Mapping
	ResolveErr  error
}

// GenerateReport computes candidates and the resolved mapping for samples.
func GenerateReport(samples []Sample) (*Report, error) {
	cands, err := Candidates(samples)
	if err != nil {
		return nil, err
	}

	r := &Report{
		SampleCount: len(samples),
		ThreeOrMore: CountMatching(samples, 3),
		Candidates:  cands,
	}
	r.Mapping, r.ResolveErr = Propagate(cands)

	return r, nil
}

// Resolved reports whether every id received an opcode.
func (r *Report) Resolved() bool {
	return r.ResolveErr == nil
}

// WriteReport writes a formatted report to a writer.
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "OPCODE INFERENCE REPORT")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Samples: %d (%d behave like three or more opcodes)\n\n",
		r.SampleCount, r.ThreeOrMore)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Candidates", "Opcode"})
	for id, set := range r.Candidates {
		resolved := "-"
		if op, ok := r.Mapping[uint64(id)]; ok {
			resolved = op.String()
		}
		t.AppendRow(table.Row{id, set.String(), resolved})
	}
	t.Render()

	fmt.Fprintln(w)
	if r.Resolved() {
		fmt.Fprintln(w, "✓ All opcode ids resolved")
	} else {
		fmt.Fprintf(w, "⚠ Resolution failed: %v\n", r.ResolveErr)
	}
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
