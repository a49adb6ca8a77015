// Package script implements a small line-oriented language to drive named
// cells holding optional strings. It is used by the movecell command and to
// test cell behaviour with golden files.
//
// Each non-empty line that does not start with '#' is a statement made of a
// command and its arguments, separated by whitespace. A value argument is
// either the word "none" (the absent value) or any other word (a present
// string).
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mna/movecell/cell"
	"github.com/mna/movecell/cellmap"
	"github.com/rs/zerolog"
)

// Value is the type held by the cells of a script.
type Value = cell.Option[string]

// Runner executes scripts against a shared set of named cells. Cells created
// by a script remain visible to the scripts executed after it.
type Runner struct {
	// Stdout receives the output of the statements.
	Stdout io.Writer

	// Logger traces each executed statement at debug level. NewRunner sets it
	// to a no-op logger.
	Logger zerolog.Logger

	cells *cellmap.Map[string, Value]
}

// NewRunner returns a runner that writes its output to stdout.
func NewRunner(stdout io.Writer) *Runner {
	return &Runner{
		Stdout: stdout,
		Logger: zerolog.Nop(),
		cells:  cellmap.New[string, Value](0),
	}
}

// Seed creates a cell named name holding Some(value), replacing any existing
// value.
func (r *Runner) Seed(name, value string) {
	r.cells.Replace(name, cell.Some(value))
}

// Cells returns the table of named cells.
func (r *Runner) Cells() *cellmap.Map[string, Value] { return r.cells }

// RunFiles executes the script files in order. Errors are collected per
// statement and execution continues with the next statement; the returned
// error, if non-nil, is guaranteed to implement Unwrap() []error.
func (r *Runner) RunFiles(ctx context.Context, files ...string) error {
	var errs []error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		b, err := os.ReadFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		if err := r.Exec(file, b); err != nil {
			errs = append(errs, err.(interface{ Unwrap() []error }).Unwrap()...)
		}
	}
	return errors.Join(errs...)
}

// Exec executes the script src, using filename in error messages. The returned
// error, if non-nil, is guaranteed to implement Unwrap() []error.
func (r *Runner) Exec(filename string, src []byte) error {
	var errs []error
	for i, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		r.Logger.Debug().
			Str("file", filename).
			Int("line", i+1).
			Str("cmd", fields[0]).
			Strs("args", fields[1:]).
			Msg("exec")

		if err := r.exec(fields[0], fields[1:]); err != nil {
			errs = append(errs, fmt.Errorf("%s:%d: %w", filename, i+1, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) exec(name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return cmd.usageError()
	}
	return cmd.fn(r, args)
}

func (r *Runner) lookup(name string) (*cell.Cell[Value], error) {
	c, ok := r.cells.Cell(name)
	if !ok {
		return nil, fmt.Errorf("unknown cell: %s", name)
	}
	return c, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Stdout, format, args...)
}

func parseValue(s string) Value {
	if s == "none" {
		return cell.None[string]()
	}
	return cell.Some(s)
}
