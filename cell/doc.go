// Package cell implements Cell, a single-value container that can be read,
// replaced or temporarily emptied through a shared pointer, for values that
// should be moved rather than duplicated.
//
// Every operation that needs to look at the value without keeping it moves it
// out of the cell, runs, and moves it back in. While the value is out, the
// cell holds a placeholder: the zero value of T, or the value returned by the
// function given to NewWithDefault. A Borrow extends that window to an
// explicit scope:
//
//	b := c.Borrow()
//	defer b.Release()
//	b.Ptr().Count++
//
// A cell is not safe for concurrent use. Starting an operation on a cell while
// another operation on the same cell is still in progress (for example from
// inside the function passed to Peek, or while a Borrow is live) panics with a
// *UsageError wrapping ErrInUse. The value is always restored before a panic
// raised by caller code propagates.
package cell
