package constants

import (
	"os"
	"strconv"
	"time"
)

const (
	// Upper bound for a single size-like CLI value (chars/lines/parts)
	MaxSizeArg = 1<<31 - 1

	// Bytes sniffed for charset detection unless overridden
	DefaultDetectSample = 10000
	MaxDetectSample     = 1024 * 1024

	// chardet reports confidence on a 0..100 scale: accept strictly above 0.5
	DetectMinConfidence = 50

	// Size of every read(2) performed by the streaming passes
	ReadBufSize = 64 * 1024

	// Upper bound for matching a delimiter pattern against a single line
	RegexMatchTimeout = 30 * time.Second
)

type Incomparabe [0]func()

var LongTests bool
var VeryLongTests bool

func init() {
	VeryLongTests = isTruthy("TEST_TEXTSPLIT_VERY_LONG")
	LongTests = VeryLongTests || isTruthy("TEST_TEXTSPLIT_LONG")
}

func isTruthy(varname string) bool {
	envStr := os.Getenv(varname)
	if envStr != "" {
		if num, err := strconv.ParseUint(envStr, 10, 64); err != nil || num != 0 {
			return true
		}
	}
	return false
}

var PerformSanityChecks = true
