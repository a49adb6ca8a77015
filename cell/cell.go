package cell

import (
	"fmt"
	"io"
)

type state uint8

const (
	idle state = iota
	busy
	borrowed
	consumed
)

// Cloner is implemented by values that know how to duplicate themselves.
// CloneInner and Clone use it when T implements it, and a plain Go assignment
// otherwise.
type Cloner[T any] interface {
	Clone() T
}

// A Cell holds exactly one value of type T. The value can be replaced or moved
// out and back in through a shared *Cell, but never aliased: no operation
// returns a pointer into the cell. The zero value is a cell holding the zero
// value of T. A Cell must not be copied after first use.
type Cell[T any] struct {
	addr  *Cell[T] // of receiver, to detect copies by value
	v     T
	def   func() T // placeholder constructor, zero value if nil
	state state
}

// New returns a cell holding v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// NewWithDefault returns a cell holding v that uses def to build the
// placeholder left behind by Take, Peek, Borrow and the operations built on
// them. If def is nil, the zero value of T is used.
func NewWithDefault[T any](v T, def func() T) *Cell[T] {
	return &Cell[T]{v: v, def: def}
}

// Default returns a cell holding the zero value of T.
func Default[T any]() *Cell[T] {
	return &Cell[T]{}
}

// Replace stores v in the cell and returns the value it previously held.
func (c *Cell[T]) Replace(v T) T {
	return c.replaceAs("Replace", v)
}

// Take returns the value held by the cell, leaving the placeholder in its
// place.
func (c *Cell[T]) Take() T {
	c.check("Take")
	ph := c.placeholder()
	return c.replaceAs("Take", ph)
}

// IntoInner consumes the cell and returns its value. Any later operation on
// the cell panics with ErrConsumed.
func (c *Cell[T]) IntoInner() T {
	c.acquire("IntoInner", consumed)
	v := c.v
	var zero T
	c.v = zero
	return v
}

// Inspect calls f with the cell's value. The cell holds the placeholder while
// f runs and gets its value back when f returns or panics.
func (c *Cell[T]) Inspect(f func(v T)) {
	v := c.moveOut("Inspect", busy)
	defer c.moveIn(v)
	f(v)
}

// Peek calls f with the value held by c and returns its result. The cell
// holds the placeholder while f runs and gets its value back when f returns
// or panics. Calling into c from f panics with ErrInUse.
func Peek[T, U any](c *Cell[T], f func(v T) U) U {
	v := c.moveOut("Peek", busy)
	defer c.moveIn(v)
	return f(v)
}

// CloneInner returns a duplicate of the cell's value, leaving the value in the
// cell.
func (c *Cell[T]) CloneInner() T {
	return Peek(c, cloneValue[T])
}

// Clone returns a new cell holding a duplicate of c's value. The new cell uses
// the same placeholder constructor as c.
func (c *Cell[T]) Clone() *Cell[T] {
	v := c.CloneInner()
	return &Cell[T]{v: v, def: c.def}
}

// EqualFunc reports whether the values of c and other are equal according to
// eq. Both cells hold their placeholder while eq runs.
func (c *Cell[T]) EqualFunc(other *Cell[T], eq func(a, b T) bool) bool {
	if c == other {
		return Peek(c, func(v T) bool { return eq(v, v) })
	}
	return Peek(c, func(a T) bool {
		return Peek(other, func(b T) bool { return eq(a, b) })
	})
}

// Equal reports whether a and b hold equal values at the moment of the call.
func Equal[T comparable](a, b *Cell[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}

// Update borrows the cell's value, calls f with a pointer to it and puts it
// back, including when f panics.
func (c *Cell[T]) Update(f func(v *T)) {
	b := c.Borrow()
	defer b.Release()
	f(b.Ptr())
}

// Format implements fmt.Formatter. The value is formatted with the same verb
// and flags, wrapped in "Cell(...)".
func (c *Cell[T]) Format(f fmt.State, verb rune) {
	c.Inspect(func(v T) {
		_, _ = io.WriteString(f, "Cell(")
		fmt.Fprintf(f, fmt.FormatString(f, verb), v)
		_, _ = io.WriteString(f, ")")
	})
}

func (c *Cell[T]) String() string { return fmt.Sprint(c) }

func (c *Cell[T]) placeholder() T {
	if c.def != nil {
		return c.def()
	}
	var zero T
	return zero
}

func (c *Cell[T]) replaceAs(op string, v T) T {
	c.acquire(op, busy)
	old := c.v
	c.v = v
	c.state = idle
	return old
}

// load returns a shallow copy of the value without moving it. Only safe when
// no caller code runs while the copy is in use.
func (c *Cell[T]) load(op string) T {
	c.acquire(op, busy)
	v := c.v
	c.state = idle
	return v
}

// moveOut swaps the placeholder in and leaves the cell in state next until
// moveIn is called.
func (c *Cell[T]) moveOut(op string, next state) T {
	c.check(op)
	ph := c.placeholder()
	c.acquire(op, next)
	v := c.v
	c.v = ph
	return v
}

func (c *Cell[T]) moveIn(v T) {
	c.v = v
	c.state = idle
}

func (c *Cell[T]) acquire(op string, next state) {
	c.check(op)
	c.state = next
}

// check panics if the cell cannot start an operation. Callers that build a
// placeholder check before calling the constructor and again in acquire, since
// the constructor may itself use the cell.
func (c *Cell[T]) check(op string) {
	if c.addr == nil {
		c.addr = c
	} else if c.addr != c {
		misuse(op, ErrCopied)
	}

	switch c.state {
	case idle:
	case consumed:
		misuse(op, ErrConsumed)
	default:
		misuse(op, ErrInUse)
	}
}

func cloneValue[T any](v T) T {
	if cl, ok := any(v).(Cloner[T]); ok {
		return cl.Clone()
	}
	return v
}
