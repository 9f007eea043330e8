package tspartitioner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anjor/textsplit/internal/constants"
)

// ErrInvalidArgument marks every parameter validation failure
var ErrInvalidArgument = errors.New("invalid argument")

// PatternError is returned when a delimiter pattern does not compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid delimiter pattern %q: %s", e.Pattern, e.Err)
}
func (e *PatternError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidArgument) match pattern failures as well
func (e *PatternError) Is(target error) bool { return target == ErrInvalidArgument }

type InstanceConstants struct {
	_ constants.Incomparabe

	// NeedsTotals is set by strategies that can not start before the
	// character/line totals of the whole input are known
	NeedsTotals bool
}

type Initializer func(
	partitionerCLISubArgs []string,
) (
	instance Partitioner,
	constants InstanceConstants,
	initErrors []error,
)

// Totals describes the decoded input as measured by a counting pass. Zero
// when no counting pass was made.
type Totals struct {
	Chars int64
	Lines int64
	Bytes int64
}

// Source is a decoded character stream, consumed strictly in file order.
type Source interface {
	// ReadLine returns the text up to and including the next '\n', or the
	// unterminated tail of the stream together with io.EOF.
	ReadLine() (string, error)

	// ReadChars returns exactly n characters unless the stream ends first,
	// in which case the shorter tail is returned together with io.EOF.
	// A negative n reads everything that is left.
	ReadChars(n int) (string, error)
}

type Partitioner interface {
	// ExpectedParts is the number of parts Split will emit for the given
	// totals, or 0 when that can not be known upfront.
	ExpectedParts(totals Totals) int

	Split(
		src Source,
		totals Totals,
		resultCallback SplitResultCallback,
	) error
}

// SplitResultCallback receives every finished chunk, in order. The chunk
// must be fully persisted before the callback returns.
type SplitResultCallback func(
	singleSplitResult Chunk,
) error

type Chunk struct {
	Text  string
	Chars int
	Lines int
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// PartsFor is the number of parts needed to hold total units at size units
// per part.
func PartsFor(total int64, size int) int {
	return int(ceilDiv(total, int64(size)))
}

// LineCount counts '\n' terminated lines plus a trailing unterminated one.
func LineCount(s string) int {
	n := strings.Count(s, "\n")
	if len(s) > 0 && s[len(s)-1] != '\n' {
		n++
	}
	return n
}
