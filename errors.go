package lp

import "github.com/pkg/errors"

// structuralError marks a problem that is malformed before any numerical
// work starts: an unknown variable reference, inconsistent bounds, or a
// constraint that reduces to a contradiction during standardization. These
// never escape Solve/SolveMIP as Go errors — they are translated into a
// Solution with StatusInfeasible and a descriptive Message.
type structuralError struct {
	err error
}

func (e *structuralError) Error() string { return e.err.Error() }
func (e *structuralError) Unwrap() error { return e.err }

func newStructuralError(format string, args ...interface{}) error {
	return &structuralError{err: errors.Errorf(format, args...)}
}

func wrapStructuralError(err error, format string, args ...interface{}) error {
	return &structuralError{err: errors.Wrapf(err, format, args...)}
}

func isStructuralError(err error) bool {
	_, ok := err.(*structuralError)
	return ok
}
