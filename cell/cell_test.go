package cell_test

import (
	"fmt"
	"testing"

	"github.com/mna/movecell/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// assertMisuse runs fn and asserts that it panics with a *cell.UsageError
// wrapping want.
func assertMisuse(t *testing.T, want error, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !assert.True(t, ok, "want panic with an error, got %v", r) {
			return
		}
		var ue *cell.UsageError
		assert.ErrorAs(t, err, &ue)
		assert.ErrorIs(t, err, want)
	}()
	fn()
}

type counter struct {
	n *int
}

func (c counter) Clone() counter {
	n := *c.n
	return counter{n: &n}
}

func TestReplaceSequence(t *testing.T) {
	c := cell.New("first")
	assert.Equal(t, "first", c.Replace("second"))
	assert.Equal(t, "second", c.Replace("third"))
	assert.Equal(t, "third", c.IntoInner())
}

func TestOptionSequence(t *testing.T) {
	c := cell.New(cell.Some("fourth"))
	assert.Equal(t, cell.Some("fourth"), c.Take())
	assert.Equal(t, cell.None[string](), c.Take())
	assert.Equal(t, cell.None[string](), c.Replace(cell.Some("fifth")))
	assert.Equal(t, "Cell(Some(fifth))", fmt.Sprint(c))

	c.Inspect(func(v cell.Option[string]) {
		assert.Equal(t, cell.Some("fifth"), v)
	})
	assert.Equal(t, cell.Some(5), cell.MapInner(c, func(s string) int { return len(s) }))
	assert.Equal(t, cell.Some("fifth"), c.CloneInner())
	assert.True(t, cell.IsSome(c))
	assert.False(t, cell.IsNone(c))
	assert.True(t, cell.Equal(c.Clone(), c))
	assert.Equal(t, `Cell(Some("fifth"))`, fmt.Sprintf("%q", c))

	assert.Equal(t, cell.Some("fifth"), c.Take())
	assert.False(t, cell.IsSome(c))
	assert.True(t, cell.IsNone(c))
	c.Inspect(func(v cell.Option[string]) {
		assert.Equal(t, cell.None[string](), v)
	})
	assert.True(t, cell.Equal(c.Clone(), c))
	assert.Equal(t, "Cell(None)", c.String())
}

func TestIntoInnerRoundTrip(t *testing.T) {
	cases := []any{
		0,
		42,
		"",
		"value",
		[]int{1, 2, 3},
		map[string]int{"a": 1},
		struct{ A, B int }{1, 2},
		cell.Some(3.5),
	}
	for _, v := range cases {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			c := cell.New(v)
			assert.Equal(t, v, c.IntoInner())
		})
	}
}

func TestIntoInnerConsumes(t *testing.T) {
	c := cell.New(1)
	require.Equal(t, 1, c.IntoInner())

	assertMisuse(t, cell.ErrConsumed, func() { c.Replace(2) })
	assertMisuse(t, cell.ErrConsumed, func() { c.Take() })
	assertMisuse(t, cell.ErrConsumed, func() { c.Borrow() })
	assertMisuse(t, cell.ErrConsumed, func() { c.IntoInner() })
}

func TestTakeLeavesZeroValue(t *testing.T) {
	c := cell.New([]int{1, 2})
	assert.Equal(t, []int{1, 2}, c.Take())
	assert.Nil(t, c.Take())
}

func TestZeroCell(t *testing.T) {
	var c cell.Cell[string]
	assert.Equal(t, "", c.Replace("a"))
	assert.Equal(t, "a", c.Take())

	d := cell.Default[int]()
	assert.Equal(t, 0, d.IntoInner())
}

func TestNewWithDefault(t *testing.T) {
	calls := 0
	c := cell.NewWithDefault("value", func() string {
		calls++
		return "placeholder"
	})

	assert.Equal(t, "value", c.Take())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "placeholder", c.Replace("other"))

	// the clone keeps the placeholder constructor
	cl := c.Clone()
	assert.Equal(t, "other", cl.Take())
	assert.Equal(t, "placeholder", cl.IntoInner())

	nilDef := cell.NewWithDefault(3, nil)
	assert.Equal(t, 3, nilDef.Take())
	assert.Equal(t, 0, nilDef.IntoInner())
}

func TestPeekRestores(t *testing.T) {
	c := cell.New([]string{"a", "b"})
	identity := func(v []string) []string { return v }

	first := cell.Peek(c, identity)
	second := cell.Peek(c, identity)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b"}, c.IntoInner())
}

func TestPeekRestoresOnPanic(t *testing.T) {
	c := cell.New("kept")
	assert.PanicsWithValue(t, "boom", func() {
		cell.Peek(c, func(v string) int { panic("boom") })
	})
	assert.Equal(t, "kept", c.Replace("next"))

	assert.Panics(t, func() {
		c.Inspect(func(string) { panic("boom") })
	})
	assert.Equal(t, "next", c.IntoInner())
}

func TestPeekReentrant(t *testing.T) {
	c := cell.New(10)
	assertMisuse(t, cell.ErrInUse, func() {
		cell.Peek(c, func(v int) int { return c.Replace(v + 1) })
	})
	assertMisuse(t, cell.ErrInUse, func() {
		c.Inspect(func(int) { c.Inspect(func(int) {}) })
	})
	assertMisuse(t, cell.ErrInUse, func() {
		c.Inspect(func(int) { c.IntoInner() })
	})

	// the failed operations left the original value in place
	assert.Equal(t, 10, c.IntoInner())
}

func TestCloneInner(t *testing.T) {
	for _, v := range []string{"", "x", "hello world"} {
		assert.Equal(t, v, cell.New(v).CloneInner())
	}

	n := 1
	c := cell.New(counter{n: &n})
	cl := c.CloneInner()
	*cl.n = 2

	assert.Equal(t, 1, *c.IntoInner().n)
	assert.Equal(t, 2, *cl.n)
}

func TestClone(t *testing.T) {
	n := 7
	c := cell.New(counter{n: &n})
	cl := c.Clone()

	cl.Update(func(v *counter) { *v.n = 8 })
	assert.Equal(t, 7, *c.IntoInner().n)
	assert.Equal(t, 8, *cl.IntoInner().n)
}

func TestEqual(t *testing.T) {
	a, b := cell.New("x"), cell.New("x")
	assert.True(t, cell.Equal(a, b))
	assert.True(t, cell.Equal(a, a))

	b.Replace("y")
	assert.False(t, cell.Equal(a, b))

	// both values are restored after the comparison
	assert.Equal(t, "x", a.IntoInner())
	assert.Equal(t, "y", b.IntoInner())
}

func TestEqualFunc(t *testing.T) {
	eq := func(x, y []int) bool { return slices.Equal(x, y) }

	a, b := cell.New([]int{1, 2}), cell.New([]int{1, 2})
	assert.True(t, a.EqualFunc(b, eq))
	assert.True(t, a.EqualFunc(a, eq))

	b.Update(func(v *[]int) { *v = append(*v, 3) })
	assert.False(t, a.EqualFunc(b, eq))

	assertMisuse(t, cell.ErrInUse, func() {
		a.EqualFunc(b, func(x, y []int) bool {
			a.Take()
			return true
		})
	})
	assert.Equal(t, []int{1, 2}, a.IntoInner())
	assert.Equal(t, []int{1, 2, 3}, b.IntoInner())
}

func TestFormat(t *testing.T) {
	type point struct{ X, Y int }

	cases := []struct {
		format string
		val    any
		want   string
	}{
		{"%v", cell.New(42), "Cell(42)"},
		{"%d", cell.New(42), "Cell(42)"},
		{"%x", cell.New(255), "Cell(ff)"},
		{"%v", cell.New("s"), "Cell(s)"},
		{"%q", cell.New("s"), `Cell("s")`},
		{"%v", cell.New(point{1, 2}), "Cell({1 2})"},
		{"%+v", cell.New(point{1, 2}), "Cell({X:1 Y:2})"},
		{"%v", cell.New(cell.None[int]()), "Cell(None)"},
		{"%v", cell.New(cell.Some(cell.Some(1))), "Cell(Some(Some(1)))"},
	}
	for _, c := range cases {
		t.Run(c.format+"-"+c.want, func(t *testing.T) {
			assert.Equal(t, c.want, fmt.Sprintf(c.format, c.val))
		})
	}
}

func TestFormatInUse(t *testing.T) {
	c := cell.New("v")

	var out string
	c.Inspect(func(string) { out = fmt.Sprint(c) })
	assert.Contains(t, out, "%!v(PANIC=Format method:")
	assert.Contains(t, out, cell.ErrInUse.Error())

	// fmt recovered the panic and the value was moved back
	assert.Equal(t, "Cell(v)", c.String())
	assert.Equal(t, "v", c.IntoInner())
}

func TestPlaceholderNotBuiltOnMisuse(t *testing.T) {
	calls := 0
	c := cell.NewWithDefault(1, func() int {
		calls++
		return -1
	})

	b := c.Borrow()
	require.Equal(t, 1, calls)
	assertMisuse(t, cell.ErrInUse, func() { c.Take() })
	assertMisuse(t, cell.ErrInUse, func() { c.Inspect(func(int) {}) })
	b.Release()

	c.IntoInner()
	assertMisuse(t, cell.ErrConsumed, func() { c.Take() })
	assertMisuse(t, cell.ErrConsumed, func() { c.Borrow() })
	assert.Equal(t, 1, calls)
}

func TestPlaceholderUsesCell(t *testing.T) {
	var c *cell.Cell[int]
	c = cell.NewWithDefault(5, func() int {
		old := c.Replace(0)
		c.Replace(old)
		return -old
	})

	assert.Equal(t, 5, c.Take())
	assert.Equal(t, -5, c.IntoInner())
}

func TestCopiedCell(t *testing.T) {
	c := cell.New(1)
	c.Replace(2)

	cp := *c
	assertMisuse(t, cell.ErrCopied, func() { cp.Replace(3) })
	assert.Equal(t, 2, c.IntoInner())
}

func TestUsageErrorMessage(t *testing.T) {
	err := &cell.UsageError{Op: "Replace", Err: cell.ErrInUse}
	assert.EqualError(t, err, "cell: Replace: cell is in use")
}
