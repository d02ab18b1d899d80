package glyphcheck

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentity marks a template whose identity was already loaded
// from an earlier file in the same source.
var ErrDuplicateIdentity = errors.New("duplicate character identity")

// ErrNoTemplates is returned by callers that refuse to run without a usable
// library.
var ErrNoTemplates = errors.New("no templates loaded")

// ErrUnknownMetric is returned by NewScorer for an unregistered metric name.
var ErrUnknownMetric = errors.New("unknown similarity metric")

// LoadError reports that a template source could not be read at all. The
// library returned alongside it is empty but usable.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load templates from %s: %v", e.Dir, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DecodeError reports a single template file that was skipped. Loading
// continues past it.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("skip template %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
