package maincmd

import (
	"context"
	_ "embed"

	"github.com/mna/mainer"
	"github.com/mna/movecell/internal/script"
	"github.com/rs/zerolog"
)

//go:embed demo.cell
var demoScript []byte

// RunOptions configures the script runner created by RunFiles.
type RunOptions struct {
	// Seeds are the initial cells, by name, each holding Some(value).
	Seeds map[string]string

	// Trace logs each executed statement to stdio.Stderr.
	Trace bool
}

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts, err := c.runOptions()
	if err != nil {
		return printError(stdio, err)
	}
	return RunFiles(ctx, stdio, opts, args...)
}

func (c *Cmd) Demo(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts, err := c.runOptions()
	if err != nil {
		return printError(stdio, err)
	}
	r := newRunner(stdio, opts)
	return printError(stdio, r.Exec("demo", demoScript))
}

// RunFiles executes the script files with a new runner configured with
// opts. The output is printed to stdio.Stdout and the errors to
// stdio.Stderr.
func RunFiles(ctx context.Context, stdio mainer.Stdio, opts RunOptions, files ...string) error {
	r := newRunner(stdio, opts)
	return printError(stdio, r.RunFiles(ctx, files...))
}

func (c *Cmd) runOptions() (RunOptions, error) {
	opts := RunOptions{Trace: c.Trace}
	if c.Init != "" {
		seeds, err := loadSeeds(c.Init)
		if err != nil {
			return opts, err
		}
		opts.Seeds = seeds
	}
	return opts, nil
}

func newRunner(stdio mainer.Stdio, opts RunOptions) *script.Runner {
	r := script.NewRunner(stdio.Stdout)
	if opts.Trace {
		w := zerolog.ConsoleWriter{Out: stdio.Stderr, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
		r.Logger = zerolog.New(w).Level(zerolog.DebugLevel)
	}
	for name, v := range opts.Seeds {
		r.Seed(name, v)
	}
	return r
}
