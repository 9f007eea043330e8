package lines

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/anjor/textsplit/internal/constants"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/textstream"
)

func splitString(t *testing.T, size int, in string) (out []tspartitioner.Chunk) {
	t.Helper()

	p, _, errs := NewPartitioner([]string{"lines", fmt.Sprintf("--max-lines=%d", size)})
	if len(errs) > 0 {
		t.Fatalf("unexpected init errors: %v", errs)
	}

	if err := p.Split(
		textstream.NewReader(strings.NewReader(in)),
		tspartitioner.Totals{},
		func(c tspartitioner.Chunk) error { out = append(out, c); return nil },
	); err != nil {
		t.Fatalf("split failed: %s", err)
	}
	return
}

func TestFiveLinesByTwo(t *testing.T) {
	line := "123456789\n"
	chunks := splitString(t, 2, strings.Repeat(line, 5))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(chunks))
	}
	for i, want := range []int{2, 2, 1} {
		if chunks[i].Lines != want || chunks[i].Text != strings.Repeat(line, want) {
			t.Errorf("part %d: %d lines %q", i+1, chunks[i].Lines, chunks[i].Text)
		}
		if chunks[i].Chars != 10*want {
			t.Errorf("part %d: %d chars", i+1, chunks[i].Chars)
		}
	}
}

func TestEdgeCases(t *testing.T) {
	if c := splitString(t, 3, ""); len(c) != 0 {
		t.Fatalf("empty input produced %d parts", len(c))
	}

	if c := splitString(t, 1000, "a\nb\nc"); len(c) != 1 || c[0].Text != "a\nb\nc" || c[0].Lines != 3 {
		t.Fatalf("oversized limit: unexpected %+v", c)
	}

	// unterminated last line and blank lines count as lines
	c := splitString(t, 2, "a\n\n\nb")
	if len(c) != 2 || c[0].Text != "a\n\n" || c[1].Text != "\nb" {
		t.Fatalf("unexpected %+v", c)
	}
}

func TestSplitLinesProperties(t *testing.T) {
	iterations := 200
	if constants.LongTests {
		iterations = 5000
	}

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < iterations; i++ {
		var sb strings.Builder
		for l := rnd.Intn(60); l > 0; l-- {
			sb.WriteString(strings.Repeat("x", rnd.Intn(12)))
			sb.WriteString([]string{"\n", "\r\n"}[rnd.Intn(2)])
		}
		if rnd.Intn(2) == 0 {
			sb.WriteString("tail")
		}
		in := sb.String()
		size := 1 + rnd.Intn(9)

		chunks := splitString(t, size, in)

		var joined strings.Builder
		for n, c := range chunks {
			joined.WriteString(c.Text)
			if c.Lines == 0 || c.Lines > size || (n < len(chunks)-1 && c.Lines != size) {
				t.Fatalf("size %d: part %d holds %d lines", size, n+1, c.Lines)
			}
			if n < len(chunks)-1 && !strings.HasSuffix(c.Text, "\n") {
				t.Fatalf("size %d: part %d does not end on a line boundary", size, n+1)
			}
		}
		if joined.String() != in {
			t.Fatalf("size %d: concatenation does not reproduce input", size)
		}
	}
}

func TestInitErrors(t *testing.T) {
	for _, args := range [][]string{
		{"lines"},
		{"lines", "--max-lines=0"},
		{"lines", "--max-lines=x"},
	} {
		if _, _, errs := NewPartitioner(args); len(errs) == 0 {
			t.Errorf("expected errors initializing with %q", args)
		}
	}
}
