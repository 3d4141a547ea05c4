package analysis

import "github.com/pkg/errors"

// Fetch sources
const (
	SourceTestResults = "test results"
	SourceProfile     = "profile"
)

// FetchError is the only failure of an analysis: one of the underlying queries failed.
type FetchError struct {
	Source string
	Err    error
}

func newFetchError(source string, err error) error {
	return errors.WithStack(&FetchError{Source: source, Err: err})
}

func (e *FetchError) Error() string {
	return "fetching " + e.Source + ": " + e.Err.Error()
}

func (e *FetchError) Cause() error  { return e.Err }
func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is (or wraps) a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
