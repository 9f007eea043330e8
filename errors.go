package textsplit

import (
	"errors"
	"os"

	"github.com/anjor/textsplit/internal/chunkwriter"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/util/stream"
)

var (
	// ErrInputNotFound: the input path is missing or not a regular file
	ErrInputNotFound = stream.ErrNotFound

	// ErrInvalidArgument wraps every job parameter validation failure
	ErrInvalidArgument = tspartitioner.ErrInvalidArgument
)

// PatternError reports a regex delimiter that failed to compile. It matches
// ErrInvalidArgument under errors.Is.
type PatternError = tspartitioner.PatternError

// WriteError reports the part that could not be persisted. The job is
// aborted on the first one.
type WriteError = chunkwriter.WriteError

type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeInput    Code = "input"
	CodeArgument Code = "argument"
	CodePattern  Code = "pattern"
	CodeIO       Code = "io"
)

// Classify maps an error returned by this package to a short code, for log
// lines and exit handling.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}

	var pe *PatternError
	if errors.As(err, &pe) {
		return CodePattern
	}
	if errors.Is(err, ErrInvalidArgument) {
		return CodeArgument
	}
	if errors.Is(err, ErrInputNotFound) {
		return CodeInput
	}

	var we *WriteError
	if errors.As(err, &we) {
		return CodeIO
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}

	return CodeUnknown
}
