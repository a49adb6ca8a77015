package cell

import "fmt"

// A Borrow owns a value moved out of a Cell until it is released. While the
// Borrow is live, the cell holds its placeholder and any other operation on
// the cell panics with ErrInUse.
//
// Go has no destructors: call Release, typically deferred right after Borrow,
// to move the value back. Release runs on return and on panic when deferred.
// IntoInner keeps the value instead, leaving the placeholder in the cell.
//
// A Borrow has no Clone method; to duplicate the value, clone what Get
// returns.
type Borrow[T any] struct {
	cell *Cell[T]
	v    T
	done bool
}

// Borrow moves the cell's value into a new Borrow, leaving the placeholder in
// the cell.
func (c *Cell[T]) Borrow() *Borrow[T] {
	v := c.moveOut("Borrow", borrowed)
	return &Borrow[T]{cell: c, v: v}
}

// With borrows the value of c, calls f with the Borrow and releases it when f
// returns or panics. f may call IntoInner to keep the value.
func With[T, U any](c *Cell[T], f func(b *Borrow[T]) U) U {
	b := c.Borrow()
	defer b.Release()
	return f(b)
}

// Get returns the borrowed value.
func (b *Borrow[T]) Get() T {
	b.check("Borrow.Get")
	return b.v
}

// Ptr returns a pointer to the borrowed value for in-place mutation. The
// pointer must not be used after Release or IntoInner.
func (b *Borrow[T]) Ptr() *T {
	b.check("Borrow.Ptr")
	return &b.v
}

// Set replaces the borrowed value; v is what Release moves back into the cell.
func (b *Borrow[T]) Set(v T) {
	b.check("Borrow.Set")
	b.v = v
}

// Released reports whether Release or IntoInner has been called.
func (b *Borrow[T]) Released() bool { return b.done }

// Release moves the borrowed value back into the cell. It is a no-op if the
// Borrow was already released or consumed by IntoInner, so it is always safe
// to defer.
func (b *Borrow[T]) Release() {
	if b.done {
		return
	}
	b.done = true
	b.cell.moveIn(b.v)

	var zero T
	b.v = zero
}

// IntoInner consumes the Borrow and returns its value. The cell keeps its
// placeholder and is usable again.
func (b *Borrow[T]) IntoInner() T {
	b.check("Borrow.IntoInner")
	b.done = true
	v := b.v

	var zero T
	b.v = zero
	b.cell.state = idle
	return v
}

// Format implements fmt.Formatter by formatting the borrowed value with the
// same verb and flags.
func (b *Borrow[T]) Format(f fmt.State, verb rune) {
	b.check("Borrow.Format")
	fmt.Fprintf(f, fmt.FormatString(f, verb), b.v)
}

func (b *Borrow[T]) String() string { return fmt.Sprint(b) }

func (b *Borrow[T]) check(op string) {
	if b.done {
		misuse(op, ErrReleased)
	}
}
