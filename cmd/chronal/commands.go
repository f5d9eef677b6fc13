package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/chronal/config"
	"github.com/sarchlab/chronal/core"
	"github.com/sarchlab/chronal/puzzle"
	"github.com/sarchlab/chronal/verify"
)

type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "chronal",
		Short:         "Run and decode programs for the time travel device",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"trace, debug, info, warn or error (overrides the config)")

	root.AddCommand(a.runCmd(), a.inferCmd(), a.solveCmd(), a.listCmd())

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	w := a.errOut
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		atexit.Register(func() { f.Close() })
		w = f
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))

	return nil
}

type runOptions struct {
	registers int
	seeds     []string
	maxSteps  uint64
	trace     bool
	clocked   bool
	monitor   bool
}

func (a *app) runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Execute an ip-bound program until it halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("registers") {
				opts.registers = a.cfg.Registers
			}
			if !cmd.Flags().Changed("max-steps") {
				opts.maxSteps = a.cfg.MaxSteps
			}
			if !cmd.Flags().Changed("clocked") {
				opts.clocked = a.cfg.Clocked
			}
			return a.run(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.registers, "registers", core.DefaultRegisterCount,
		"size of the register file")
	cmd.Flags().StringArrayVar(&opts.seeds, "set", nil,
		"seed a register before the run, as r0=1 (repeatable)")
	cmd.Flags().Uint64Var(&opts.maxSteps, "max-steps", 0,
		"stop after this many instructions, 0 for no limit")
	cmd.Flags().BoolVar(&opts.trace, "trace", false,
		"print every executed instruction")
	cmd.Flags().BoolVar(&opts.clocked, "clocked", false,
		"run on a simulated clock, one instruction per cycle")
	cmd.Flags().BoolVar(&opts.monitor, "monitor", false,
		"serve the akita monitor for a clocked run")

	return cmd
}

func parseSeed(s string, regs core.Registers) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("seed %q: want r<index>=<value>", s)
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(name), "r"))
	if err != nil || idx < 0 || idx >= len(regs) {
		return fmt.Errorf("seed %q: %w", s, core.ErrRegisterOutOfRange)
	}

	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("seed %q: %w", s, err)
	}
	regs[idx] = v

	return nil
}

func (a *app) run(path string, opts runOptions) error {
	prog, err := core.LoadProgramFile(path)
	if err != nil {
		return err
	}

	if opts.registers < 1 {
		return fmt.Errorf("%w: %d registers", core.ErrMalformedRegisters, opts.registers)
	}

	regs := core.NewRegisters(opts.registers)
	for _, s := range opts.seeds {
		if err := parseSeed(s, regs); err != nil {
			return err
		}
	}

	for _, issue := range core.Lint(prog, opts.registers) {
		slog.Warn("LintIssue", "Issue", issue.String())
	}

	m, err := core.NewMachine(prog, regs)
	if err != nil {
		return err
	}

	var tw *core.TraceWriter
	if opts.trace {
		tw = core.NewTraceWriter(a.out, opts.registers)
		m.AcceptObserver(tw)
	}

	if opts.clocked {
		err = a.runClocked(m, opts.maxSteps, opts.monitor)
	} else {
		err = m.RunLimit(opts.maxSteps)
	}

	if tw != nil {
		if ferr := tw.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	fmt.Fprintln(a.out, core.RenderState(m))

	return err
}

func (a *app) runClocked(m *core.Machine, maxSteps uint64, monitor bool) error {
	engine := sim.NewSerialEngine()
	c := core.NewBuilder().
		WithEngine(engine).
		WithFreq(a.cfg.Freq()).
		WithStepLimit(maxSteps).
		Build("Core")

	if monitor {
		mon := monitoring.NewMonitor()
		mon.RegisterEngine(engine)
		mon.RegisterComponent(c)
		mon.StartServer()
	}

	c.Load(m)
	if err := engine.Run(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "cycles=%d finish=%.9fs\n", c.Cycles(), float64(c.FinishTime()))

	return c.Err()
}

func (a *app) inferCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "infer <samples>",
		Short: "Infer the opcode numbering from before/after samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			in, err := verify.ParseInput(string(data))
			if err != nil {
				return err
			}

			r, err := verify.GenerateReport(in.Samples)
			if err != nil {
				return err
			}
			r.WriteReport(a.out)

			if reportPath != "" {
				if err := r.SaveReportToFile(reportPath); err != nil {
					return err
				}
			}

			return r.ResolveErr
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "also write the report to a file")

	return cmd
}

func (a *app) solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <puzzle> <input>",
		Short: "Solve a register machine puzzle such as 19a",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			answer, err := puzzle.Solve(args[0], string(data))
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, answer)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the puzzles that can be solved",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range puzzle.Names() {
				fmt.Fprintln(a.out, name)
			}
		},
	}
}
