package argparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/pborman/getopt/v2"
)

func rangedSet(count *int, name *string) *getopt.Set {
	s := getopt.New()
	s.FlagLong(count, "count", 0, "how many", "[1:10]")
	s.FlagLong(name, "name", 0, "free text", "text")
	return s
}

func TestParse(t *testing.T) {
	for _, tt := range []struct {
		args    []string
		wantErr string
	}{
		{[]string{"x", "--count=3"}, ""},
		{[]string{"x", "--count=10", "--name=a"}, ""},
		{[]string{"x", "--count=0"}, "out of range [1:10]"},
		{[]string{"x", "--count=11"}, "out of range [1:10]"},
		{[]string{"x", "--name=a"}, "a value for count must be specified"},
		{[]string{"x", "--count=3", "stray"}, "unexpected free-form parameter(s): stray"},
		{[]string{"x", "--bogus"}, "bogus"},
	} {
		var count int
		var name string
		errs := Parse(tt.args, rangedSet(&count, &name))

		if tt.wantErr == "" {
			if len(errs) > 0 {
				t.Errorf("%v: unexpected errors %v", tt.args, errs)
			}
			continue
		}
		if len(errs) == 0 || !strings.Contains(errors.Join(errs...).Error(), tt.wantErr) {
			t.Errorf("%v: expected an error containing %q, got %v", tt.args, tt.wantErr, errs)
		}
	}
}

func TestParseRange(t *testing.T) {
	for _, tt := range []struct {
		param    string
		isRange  bool
		min, max int64
		fails    bool
	}{
		{"int", false, 0, 0, false},
		{"[1:]", true, 1, 1<<63 - 1, false},
		{"[:5]", true, -1 << 63, 5, false},
		{"[2:MaxSize]", true, 2, 1<<31 - 1, false},
		{"[a:b]", true, 0, 0, true},
		{"[7]", true, 0, 0, true},
	} {
		r, isRange, err := parseRange(tt.param)
		if isRange != tt.isRange || (err != nil) != tt.fails {
			t.Errorf("%s: isRange=%t err=%v", tt.param, isRange, err)
			continue
		}
		if !tt.fails && tt.isRange && (r.min != tt.min || r.max != tt.max) {
			t.Errorf("%s: got [%d:%d]", tt.param, r.min, r.max)
		}
	}
}

func TestSubHelp(t *testing.T) {
	var count int
	var name string
	sh := SubHelp("First line\nsecond line", rangedSet(&count, &name))
	if len(sh) != 3 {
		t.Fatalf("expected description, separator and options, got %d entries", len(sh))
	}
	if sh[0].Error() != "  First line\n  second line" {
		t.Errorf("description rendered as %q", sh[0].Error())
	}
	opts := sh[2].Error()
	if strings.Contains(opts, "--count") || !strings.Contains(opts, "count=[1:10]") {
		t.Errorf("options rendered as %q", opts)
	}

	if sh := SubHelp("only", nil); len(sh) != 1 || sh[0].Error() != "  only" {
		t.Errorf("help without options rendered as %v", sh)
	}
}
