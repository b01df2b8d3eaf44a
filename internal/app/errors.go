package app

import "github.com/tphakala/weatherdash/internal/errors"

// SkipSetupAnnotation marks commands that run without the API client.
const SkipSetupAnnotation = "weatherdash/skip-setup"

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported marks err as already shown to the user, so the entry point
// exits non-zero without printing it again.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was marked with Reported.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
