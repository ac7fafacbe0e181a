package uid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument matches every *ArgumentError.
	ErrInvalidArgument = errors.New("uid: invalid argument")

	// ErrInvalidOperation matches errors caused by a misbehaving TimeSource.
	ErrInvalidOperation = errors.New("uid: invalid operation")

	ErrClockNotUTC      = fmt.Errorf("%w: time source value must be UTC", ErrInvalidOperation)
	ErrClockBeforeEpoch = fmt.Errorf("%w: time source value must not be before the Unix epoch", ErrInvalidOperation)
)

// ArgumentError reports a malformed caller input.
type ArgumentError struct {
	Param string
	Msg   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("uid: invalid argument %q: %s", e.Param, e.Msg)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
