package lines

import (
	"io"
	"strings"
	"unicode/utf8"

	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
)

type config struct {
	MaxLines int `getopt:"--max-lines=[1:MaxSize]  Amount of lines in every part but the last"`
}

type linesPartitioner struct {
	config
}

func (p *linesPartitioner) ExpectedParts(t tspartitioner.Totals) int {
	return tspartitioner.PartsFor(t.Lines, p.MaxLines)
}

func (p *linesPartitioner) Split(
	src tspartitioner.Source,
	_ tspartitioner.Totals,
	cb tspartitioner.SplitResultCallback,
) error {

	var cur strings.Builder
	var curChars, curLines int

	for {
		line, readErr := src.ReadLine()
		if readErr != nil && readErr != io.EOF {
			return readErr
		}

		if line != "" {
			cur.WriteString(line)
			curChars += utf8.RuneCountInString(line)
			curLines++
		}

		if curLines > 0 && (curLines == p.MaxLines || readErr == io.EOF) {
			if err := cb(tspartitioner.Chunk{
				Text:  cur.String(),
				Chars: curChars,
				Lines: curLines,
			}); err != nil {
				return err
			}
			cur = strings.Builder{}
			curChars, curLines = 0, 0
		}

		if readErr == io.EOF {
			return nil
		}
	}
}
