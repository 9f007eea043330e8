package parts

import (
	"io"
	"unicode/utf8"

	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
)

type config struct {
	Parts int `getopt:"--parts=[1:MaxSize]  Amount of parts to split into"`
}

type partsPartitioner struct {
	config
}

func (p *partsPartitioner) partSize(t tspartitioner.Totals) int64 {
	return (t.Chars + int64(p.Parts) - 1) / int64(p.Parts)
}

func (p *partsPartitioner) ExpectedParts(t tspartitioner.Totals) int {
	if t.Chars <= 0 {
		return 0
	}
	n := tspartitioner.PartsFor(t.Chars, int(p.partSize(t)))
	if n > p.Parts {
		n = p.Parts
	}
	return n
}

func (p *partsPartitioner) Split(
	src tspartitioner.Source,
	t tspartitioner.Totals,
	cb tspartitioner.SplitResultCallback,
) error {

	if t.Chars <= 0 {
		return nil
	}
	base := int(p.partSize(t))

	for partIdx := 1; partIdx <= p.Parts; partIdx++ {

		// the last part takes whatever is left
		want := base
		if partIdx == p.Parts {
			want = -1
		}

		chunkText, readErr := src.ReadChars(want)
		if readErr != nil && readErr != io.EOF {
			return readErr
		}

		if chunkText != "" {
			if err := cb(tspartitioner.Chunk{
				Text:  chunkText,
				Chars: utf8.RuneCountInString(chunkText),
				Lines: tspartitioner.LineCount(chunkText),
			}); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			return nil
		}
	}

	return nil
}
