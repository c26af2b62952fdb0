package sheetnames

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input path does not resolve to a file.
var ErrFileNotFound = errors.New("file not found")

// ErrBatchEnded indicates the batch was used after End.
var ErrBatchEnded = errors.New("batch already ended")

// ErrWorkbookOpen indicates an open workbook was still tracked when
// another open was attempted. A batch inspects one file at a time.
var ErrWorkbookOpen = errors.New("workbook already open")

// FileError represents a failure scoped to one input file. The batch
// stays usable for the remaining inputs after emitting it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("inspect %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path string, err error) *FileError {
	return &FileError{
		Path: path,
		Err:  err,
	}
}
