package storefront

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResult indicates a remote call that succeeded at the transport
	// level but whose envelope yielded no usable field.
	ErrNoResult = errors.New("storefront: response yielded no result")
	// ErrRemote indicates a non-2xx status or a transport-level failure.
	ErrRemote = errors.New("storefront: remote failure")
)

// Failure wraps any error raised during a client call together with the
// diagnostic trail of the requests that call attempted. All client methods
// return their errors wrapped this way.
type Failure struct {
	err   error
	trail *Trail
}

func wrapFailure(err error, trail *Trail) error {
	if err == nil {
		return nil
	}
	return &Failure{err: err, trail: trail}
}

// Error implements error, appending the most recent request for context.
func (f *Failure) Error() string {
	last, ok := f.trail.Last()
	if !ok {
		return f.err.Error()
	}
	if last.Status == 0 {
		return fmt.Sprintf("%v (last request %s %s)", f.err, last.Method, last.URL)
	}
	return fmt.Sprintf("%v (last request %s %s -> %d)", f.err, last.Method, last.URL, last.Status)
}

// Unwrap exposes the underlying error for errors.Is / errors.As matching.
func (f *Failure) Unwrap() error { return f.err }

// Trail returns the requests attempted by the failing call, oldest first.
func (f *Failure) Trail() []TrailEntry { return f.trail.Entries() }

// FailureTrail extracts the diagnostic trail from any error returned by a
// client method.
func FailureTrail(err error) ([]TrailEntry, bool) {
	var failure *Failure
	if !errors.As(err, &failure) {
		return nil, false
	}
	return failure.Trail(), true
}
