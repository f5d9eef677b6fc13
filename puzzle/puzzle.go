// Package puzzle holds the register machine puzzles of the 2018 calendar
// and a registry to look them up by name, such as "19a".
package puzzle

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var (
	// ErrUnknownPuzzle is returned by Lookup for unregistered names.
	ErrUnknownPuzzle = errors.New("unknown puzzle")

	// ErrNoAnswer is returned when a program halts or faults before it
	// produces the value a solver looks for.
	ErrNoAnswer = errors.New("program produced no answer")
)

// A Solver turns puzzle input into an answer.
type Solver func(input string) (string, error)

var solvers = map[string]Solver{}

// Register adds a solver under name. Registering a name twice panics.
func Register(name string, s Solver) {
	if _, dup := solvers[name]; dup {
		panic(fmt.Sprintf("puzzle %q registered twice", name))
	}
	solvers[name] = s
}

// Lookup returns the solver registered under name.
func Lookup(name string) (Solver, error) {
	s, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPuzzle, name)
	}
	return s, nil
}

// Solve runs the solver registered under name.
func Solve(name, input string) (string, error) {
	s, err := Lookup(name)
	if err != nil {
		return "", err
	}

	answer, err := s(input)
	if err != nil {
		return "", fmt.Errorf("puzzle %s: %w", name, err)
	}

	return answer, nil
}

// Names lists the registered solvers in day order.
func Names() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func answer(v uint64) string {
	return strconv.FormatUint(v, 10)
}
