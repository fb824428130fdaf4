package swipes

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrConflict              = errors.New("decision already recorded")
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}
