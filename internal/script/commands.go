package script

import (
	"fmt"

	"github.com/mna/movecell/cell"
	"github.com/mna/movecell/cellmap"
)

type command struct {
	usage            string
	minArgs, maxArgs int
	fn               func(r *Runner, args []string) error
}

var commands = map[string]command{
	"new":     {"new NAME [VALUE]", 1, 2, (*Runner).cmdNew},
	"replace": {"replace NAME VALUE", 2, 2, (*Runner).cmdReplace},
	"take":    {"take NAME", 1, 1, (*Runner).cmdTake},
	"peek":    {"peek NAME", 1, 1, (*Runner).cmdPeek},
	"len":     {"len NAME", 1, 1, (*Runner).cmdLen},
	"is_some": {"is_some NAME", 1, 1, (*Runner).cmdIsSome},
	"is_none": {"is_none NAME", 1, 1, (*Runner).cmdIsNone},
	"append":  {"append NAME SUFFIX", 2, 2, (*Runner).cmdAppend},
	"unwrap":  {"unwrap NAME", 1, 1, (*Runner).cmdUnwrap},
	"clone":   {"clone SRC DST", 2, 2, (*Runner).cmdClone},
	"eq":      {"eq NAME NAME", 2, 2, (*Runner).cmdEq},
	"print":   {"print NAME", 1, 1, (*Runner).cmdPrint},
	"drop":    {"drop NAME", 1, 1, (*Runner).cmdDrop},
	"dump":    {"dump", 0, 0, (*Runner).cmdDump},
}

func (cmd command) usageError() error {
	return fmt.Errorf("usage: %s", cmd.usage)
}

func (r *Runner) cmdNew(args []string) error {
	name := args[0]
	if _, ok := r.cells.Cell(name); ok {
		return fmt.Errorf("cell already exists: %s", name)
	}

	var v Value
	if len(args) > 1 {
		v = parseValue(args[1])
	}
	r.cells.Insert(name, cell.New(v))
	return nil
}

func (r *Runner) cmdReplace(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	r.printf("replace %s: %v\n", args[0], c.Replace(parseValue(args[1])))
	return nil
}

func (r *Runner) cmdTake(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	r.printf("take %s: %v\n", args[0], cell.TakeOption(c))
	return nil
}

func (r *Runner) cmdPeek(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	c.Inspect(func(v Value) {
		r.printf("peek %s: %v\n", args[0], v)
	})
	return nil
}

func (r *Runner) cmdLen(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	n := cell.MapInner(c, func(s string) int { return len(s) })
	r.printf("len %s: %v\n", args[0], n)
	return nil
}

func (r *Runner) cmdIsSome(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	r.printf("is_some %s: %t\n", args[0], cell.IsSome(c))
	return nil
}

func (r *Runner) cmdIsNone(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	r.printf("is_none %s: %t\n", args[0], cell.IsNone(c))
	return nil
}

// append to an absent value leaves it absent.
func (r *Runner) cmdAppend(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}

	b := c.Borrow()
	defer b.Release()

	if s, ok := b.Get().Get(); ok {
		b.Set(cell.Some(s + args[1]))
	}
	r.printf("append %s: %v\n", args[0], b)
	return nil
}

func (r *Runner) cmdUnwrap(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	v := cell.With(c, func(b *cell.Borrow[Value]) Value { return b.IntoInner() })
	r.printf("unwrap %s: %v\n", args[0], v)
	return nil
}

func (r *Runner) cmdClone(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	if _, ok := r.cells.Cell(args[1]); ok {
		return fmt.Errorf("cell already exists: %s", args[1])
	}
	r.cells.Insert(args[1], c.Clone())
	return nil
}

func (r *Runner) cmdEq(args []string) error {
	a, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	b, err := r.lookup(args[1])
	if err != nil {
		return err
	}
	r.printf("eq %s %s: %t\n", args[0], args[1], cell.Equal(a, b))
	return nil
}

func (r *Runner) cmdPrint(args []string) error {
	c, err := r.lookup(args[0])
	if err != nil {
		return err
	}
	r.printf("%v\n", c)
	return nil
}

func (r *Runner) cmdDrop(args []string) error {
	v, ok := r.cells.Remove(args[0])
	if !ok {
		return fmt.Errorf("unknown cell: %s", args[0])
	}
	r.printf("drop %s: %v\n", args[0], v)
	return nil
}

func (r *Runner) cmdDump(_ []string) error {
	for _, name := range cellmap.SortedKeys(r.cells) {
		c, _ := r.cells.Cell(name)
		r.printf("%s = %v\n", name, c)
	}
	return nil
}
