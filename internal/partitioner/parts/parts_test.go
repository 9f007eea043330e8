package parts

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/anjor/textsplit/internal/constants"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/textstream"
)

func splitString(t *testing.T, parts int, in string) []string {
	t.Helper()

	p, pc, errs := NewPartitioner([]string{"parts", fmt.Sprintf("--parts=%d", parts)})
	if len(errs) > 0 {
		t.Fatalf("unexpected init errors: %v", errs)
	}
	if !pc.NeedsTotals {
		t.Fatalf("parts partitioner must request totals")
	}

	totals, err := textstream.Count(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	var out []string
	if err := p.Split(
		textstream.NewReader(strings.NewReader(in)),
		totals,
		func(c tspartitioner.Chunk) error { out = append(out, c.Text); return nil },
	); err != nil {
		t.Fatalf("split failed: %s", err)
	}

	if expected := p.ExpectedParts(totals); expected != len(out) {
		t.Errorf("%d parts of %q: announced %d parts, emitted %d", parts, in, expected, len(out))
	}
	return out
}

func TestSplitParts(t *testing.T) {
	for _, tt := range []struct {
		parts int
		in    string
		want  []string
	}{
		{4, "abcdefghij", []string{"abc", "def", "ghi", "j"}},
		{2, "abcdefghij", []string{"abcde", "fghij"}},
		{3, "ab\ncd\nef\n", []string{"ab\n", "cd\n", "ef\n"}},
		{1, "whole\nfile", []string{"whole\nfile"}},
		{5, "abc", []string{"a", "b", "c"}},
		// ceil(10/6)=2 runs the stream dry after five parts
		{6, "abcdefghij", []string{"ab", "cd", "ef", "gh", "ij"}},
		{2, "日本語", []string{"日本", "語"}},
		{3, "", nil},
	} {
		got := splitString(t, tt.parts, tt.in)
		if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", tt.want) {
			t.Errorf("%d parts of %q: got %q, want %q", tt.parts, tt.in, got, tt.want)
		}
	}
}

func TestSplitPartsProperties(t *testing.T) {
	iterations := 200
	if constants.LongTests {
		iterations = 5000
	}

	alphabet := []rune("xy\n\tё語")
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < iterations; i++ {
		in := make([]rune, rnd.Intn(500))
		for j := range in {
			in[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		parts := 1 + rnd.Intn(20)

		got := splitString(t, parts, string(in))
		if strings.Join(got, "") != string(in) {
			t.Fatalf("%d parts: concatenation does not reproduce input", parts)
		}
		if len(got) > parts {
			t.Fatalf("%d parts requested, %d produced", parts, len(got))
		}
		if len(in) >= parts && len(got) == 0 {
			t.Fatalf("no parts produced")
		}

		base := (len(in) + parts - 1) / parts
		for n, p := range got {
			c := utf8.RuneCountInString(p)
			if n < len(got)-1 && c != base {
				t.Fatalf("%d parts of %d chars: part %d has %d chars, expected %d", parts, len(in), n+1, c, base)
			}
			if c == 0 || c > base {
				t.Fatalf("%d parts of %d chars: last part has %d chars", parts, len(in), c)
			}
		}
	}
}

func TestInitErrors(t *testing.T) {
	for _, args := range [][]string{
		{"parts"},
		{"parts", "--parts=0"},
		{"parts", "--parts=-1"},
	} {
		if _, _, errs := NewPartitioner(args); len(errs) == 0 {
			t.Errorf("expected errors initializing with %q", args)
		}
	}
}
