package regex

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/dlclark/regexp2"
)

type config struct {
	Pattern          string `getopt:"--pattern=regex      Delimiter pattern"`
	IncludeDelimiter bool   `getopt:"--include-delimiter  Start every part with the delimiter that opened it instead of dropping it"`
}

type regexPartitioner struct {
	config
	re *regexp2.Regexp
}

// the amount of delimiters is not known before the scan
func (*regexPartitioner) ExpectedParts(tspartitioner.Totals) int { return 0 }

func (p *regexPartitioner) Split(
	src tspartitioner.Source,
	_ tspartitioner.Totals,
	cb tspartitioner.SplitResultCallback,
) error {

	var cur strings.Builder

	flush := func() error {
		if cur.Len() == 0 {
			return nil
		}
		s := cur.String()
		cur = strings.Builder{}
		return cb(tspartitioner.Chunk{
			Text:  s,
			Chars: utf8.RuneCountInString(s),
			Lines: tspartitioner.LineCount(s),
		})
	}

	var lineNo int
	for {
		line, readErr := src.ReadLine()
		if readErr != nil && readErr != io.EOF {
			return readErr
		}

		if line != "" {
			lineNo++
			if err := p.splitLine(lineNo, line, &cur, flush); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			return flush()
		}
	}
}

// splitLine feeds one line into cur, flushing at every delimiter. A match
// running past the pattern's MatchTimeout fails the split.
func (p *regexPartitioner) splitLine(lineNo int, line string, cur *strings.Builder, flush func() error) error {

	runes := []rune(line)

	m, err := p.re.FindRunesMatch(runes)
	if err != nil {
		return fmt.Errorf("matching delimiter on line %d: %w", lineNo, err)
	}

	var lastEnd int
	for m != nil {
		start, end := m.Index, m.Index+m.Length

		if start > lastEnd {
			cur.WriteString(string(runes[lastEnd:start]))
		}

		if err := flush(); err != nil {
			return err
		}

		if p.IncludeDelimiter && end > start {
			cur.WriteString(string(runes[start:end]))
		}
		lastEnd = end

		if m, err = p.re.FindNextMatch(m); err != nil {
			return fmt.Errorf("matching delimiter on line %d: %w", lineNo, err)
		}
	}

	if lastEnd < len(runes) {
		cur.WriteString(string(runes[lastEnd:]))
	}

	return nil
}
