package cell

import (
	"fmt"
	"io"
)

// Option is a value that is either present (Some) or absent (None). The zero
// value is None, which makes it the natural placeholder of a
// Cell[Option[T]].
type Option[T any] struct {
	v  T
	ok bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] { return Option[T]{v: v, ok: true} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and true if o is present, the zero value and false
// otherwise.
func (o Option[T]) Get() (T, bool) { return o.v, o.ok }

func (o Option[T]) IsSome() bool { return o.ok }
func (o Option[T]) IsNone() bool { return !o.ok }

// OrElse returns the value of o if present, v otherwise.
func (o Option[T]) OrElse(v T) T {
	if o.ok {
		return o.v
	}
	return v
}

// Format implements fmt.Formatter: "None", or "Some(...)" with the value
// formatted using the same verb and flags.
func (o Option[T]) Format(f fmt.State, verb rune) {
	if !o.ok {
		_, _ = io.WriteString(f, "None")
		return
	}
	_, _ = io.WriteString(f, "Some(")
	fmt.Fprintf(f, fmt.FormatString(f, verb), o.v)
	_, _ = io.WriteString(f, ")")
}

func (o Option[T]) String() string { return fmt.Sprint(o) }

// TakeOption returns the value of c and leaves None in its place, even if c
// was created with a custom placeholder.
func TakeOption[T any](c *Cell[Option[T]]) Option[T] {
	return c.replaceAs("TakeOption", None[T]())
}

// MapInner calls f with the value of c if it is present and returns its
// result as Some, or returns None if c holds None. c holds its placeholder
// while f runs.
func MapInner[T, U any](c *Cell[Option[T]], f func(v T) U) Option[U] {
	return Peek(c, func(o Option[T]) Option[U] {
		if !o.ok {
			return None[U]()
		}
		return Some(f(o.v))
	})
}

// IsSome reports whether c holds a present value. It reads the presence flag
// without moving the value out.
func IsSome[T any](c *Cell[Option[T]]) bool {
	return c.load("IsSome").ok
}

// IsNone reports whether c holds None. It reads the presence flag without
// moving the value out.
func IsNone[T any](c *Cell[Option[T]]) bool {
	return !c.load("IsNone").ok
}
