package chars

import (
	"io"
	"strings"
	"unicode/utf8"

	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
)

type config struct {
	MaxChars int `getopt:"--max-chars=[1:MaxSize]  Amount of characters (not bytes) in every part but the last"`
}

type charsPartitioner struct {
	config
}

func (p *charsPartitioner) ExpectedParts(t tspartitioner.Totals) int {
	return tspartitioner.PartsFor(t.Chars, p.MaxChars)
}

func (p *charsPartitioner) Split(
	src tspartitioner.Source,
	_ tspartitioner.Totals,
	cb tspartitioner.SplitResultCallback,
) error {

	var cur strings.Builder
	var curChars, curLines int

	flush := func() error {
		if curChars == 0 {
			return nil
		}
		c := tspartitioner.Chunk{Text: cur.String(), Chars: curChars, Lines: curLines}
		cur = strings.Builder{}
		curChars, curLines = 0, 0
		return cb(c)
	}

	for {
		line, readErr := src.ReadLine()
		if readErr != nil && readErr != io.EOF {
			return readErr
		}

		for line != "" {
			lineChars := utf8.RuneCountInString(line)

			if curChars+lineChars <= p.MaxChars {
				cur.WriteString(line)
				curChars += lineChars
				curLines++
				line = ""
			} else {
				// cut at the character that fills the part up to MaxChars
				cutAt := byteOffset(line, p.MaxChars-curChars)
				cur.WriteString(line[:cutAt])
				curChars = p.MaxChars
				curLines++
				line = line[cutAt:]
			}

			if curChars == p.MaxChars {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		if readErr == io.EOF {
			return flush()
		}
	}
}

// byteOffset returns the byte index of the n-th rune of s
func byteOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
