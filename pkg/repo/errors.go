package repo

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound means no repository (or no required control file) exists.
	ErrNotFound = errors.New("not found")
	// ErrInvalidData means a control file exists but cannot be understood.
	ErrInvalidData = errors.New("invalid data")
	// ErrIO means a read failed for a reason other than absence.
	ErrIO = errors.New("i/o error")
)

// Error describes a failed structural query. Kind is one of ErrNotFound,
// ErrInvalidData or ErrIO, so callers can test with errors.Is.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) Is(target error) bool {
	return e != nil && target == e.Kind
}

// ioError classifies a filesystem error as ErrNotFound or ErrIO.
func ioError(op, path string, err error) *Error {
	kind := ErrIO
	if errors.Is(err, os.ErrNotExist) {
		kind = ErrNotFound
	}
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

func invalidData(op, path string, format string, args ...any) *Error {
	return &Error{Op: op, Path: path, Kind: ErrInvalidData, Err: fmt.Errorf(format, args...)}
}
