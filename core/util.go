package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// LevelTrace is below slog's debug level and carries per-instruction
// events.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// LogState writes a debug checkpoint of the machine state.
func LogState(m *Machine) {
	slog.Debug("StateCheckpoint",
		"PC", m.PC(),
		"Halted", m.Halted(),
		"Steps", m.Steps(),
		"Registers", m.Registers().String(),
	)
}

func registerHeader(n int) table.Row {
	row := table.Row{}
	for i := 0; i < n; i++ {
		row = append(row, fmt.Sprintf("r%d", i))
	}
	return row
}

func registerRow(regs Registers) table.Row {
	row := table.Row{}
	for _, v := range regs {
		row = append(row, v)
	}
	return row
}

// RenderState renders the program counter, step count and register file
// of m as a table.
func RenderState(m *Machine) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("pc=%d steps=%d halted=%v", m.PC(), m.Steps(), m.Halted()))
	t.AppendHeader(registerHeader(len(m.Registers())))
	t.AppendRow(registerRow(m.Registers()))

	return t.Render()
}

// TraceWriter is a StepObserver that collects executed steps and renders
// them as a table.
type TraceWriter struct {
	w    io.Writer
	t    table.Writer
	rows int
}

// NewTraceWriter creates a TraceWriter for a register file of the given
// width. Call Flush to write the table to w.
func NewTraceWriter(w io.Writer, width int) *TraceWriter {
	t := table.NewWriter()
	header := table.Row{"step", "pc", "instruction"}
	header = append(header, registerHeader(width)...)
	t.AppendHeader(header)

	return &TraceWriter{w: w, t: t}
}

// ObserveStep appends one row for the step.
func (tw *TraceWriter) ObserveStep(step Step) {
	row := table.Row{step.Count, step.PC, step.Instruction.String()}
	row = append(row, registerRow(step.Registers)...)
	tw.t.AppendRow(row)
	tw.rows++
}

// Rows returns the number of steps recorded.
func (tw *TraceWriter) Rows() int {
	return tw.rows
}

// Flush writes the collected table.
func (tw *TraceWriter) Flush() error {
	_, err := fmt.Fprintln(tw.w, tw.t.Render())
	return err
}
