package scheduler

import (
	"errors"
	"fmt"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// ErrClosed settles requests made after, or still pending at, Close.
var ErrClosed = errors.New("scheduler closed")

// ProbeError reports a probe that could not produce the requested kind.
type ProbeError struct {
	Path m.Path
	Kind m.ProbeKind
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
