package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType is matched by every *UnsupportedFileTypeError.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrHistoryNotFound is returned when an import id is not in the history store.
	ErrHistoryNotFound = errors.New("import not found")
)

// UnsupportedFileTypeError reports a filename that matched no known export format.
type UnsupportedFileTypeError struct {
	Filename string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q (expected .csv, .xlsx or .xls)", e.Filename)
}

// Is makes errors.Is(err, ErrUnsupportedFileType) hold.
func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}
