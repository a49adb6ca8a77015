package cell

import "errors"

var (
	// ErrInUse is raised when an operation starts while another operation on
	// the same cell has not completed, including while a Borrow is live.
	ErrInUse = errors.New("cell is in use")

	// ErrConsumed is raised when a cell is used after IntoInner.
	ErrConsumed = errors.New("cell has been consumed")

	// ErrReleased is raised when a Borrow is accessed after Release or
	// IntoInner.
	ErrReleased = errors.New("borrow has been released")

	// ErrCopied is raised when a cell is used after being copied by value.
	ErrCopied = errors.New("cell copied by value")
)

// UsageError is the panic value raised on misuse of a Cell or Borrow. Op is
// the name of the operation that detected the misuse.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string { return "cell: " + e.Op + ": " + e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func misuse(op string, err error) {
	panic(&UsageError{Op: op, Err: err})
}
