package media

import (
	"errors"
	"fmt"
)

var ErrNoFiles = errors.New("no files uploaded")

// FetchError reports an unreachable or non-image link.
type FetchError struct {
	Link string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %q: %v", e.Link, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CompressionError reports a source that could not be decoded or resized.
type CompressionError struct {
	File string
	Err  error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("failed to compress %q: %v", e.File, e.Err)
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}

// BatchError accumulates per-file failures of a multi-file upload so one
// bad file does not abort the rest of the batch.
type BatchError struct {
	errors []string
}

func IsBatchError(err error) *BatchError {
	if err == nil {
		return nil
	}

	var batchError *BatchError

	if errors.As(err, &batchError) {
		return batchError
	}

	return nil
}

func (e *BatchError) AddFile(name string, err error) {
	e.errors = append(e.errors, fmt.Sprintf("%s: %v", name, err))
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%+v", e.errors)
}

func (e *BatchError) Files() []string {
	return e.errors
}

func (e *BatchError) Count() int {
	return len(e.errors)
}
