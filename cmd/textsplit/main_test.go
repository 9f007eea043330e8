package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/anjor/textsplit"
)

func cli(t *testing.T, args ...string) *textsplit.TextSplit {
	t.Helper()
	ts, errs := textsplit.NewWithWriters(
		append([]string{"textsplit", "--no-progress", "--emit-stderr=none"}, args...),
		new(bytes.Buffer), new(bytes.Buffer),
	)
	if len(errs) > 0 {
		t.Fatalf("unexpected argument errors: %v", errs)
	}
	if ts == nil {
		t.Fatal("no job returned")
	}
	return ts
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(in, []byte("# a\nx\n# b\ny\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	if code := run(cli(t, "-i", in, "-o", out, "--mode=regex", "--regex=^# ", "--include-delimiter")); code != 0 {
		t.Fatalf("exit code %d", code)
	}

	for n, want := range []string{"# a\nx\n", "# b\ny\n"} {
		got, err := os.ReadFile(filepath.Join(out, "notes_part"+string(rune('1'+n))+".md"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("part %d: got %q, want %q", n+1, got, want)
		}
	}
}

func TestRunWriteFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(in, []byte("a\nb\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	// a populated directory sitting on the first part's path cannot be replaced
	if err := os.MkdirAll(filepath.Join(out, "in_part1.txt", "x"), 0755); err != nil {
		t.Fatal(err)
	}

	if code := run(cli(t, "-i", in, "-o", out, "--mode=lines", "-s", "1")); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if _, err := os.Stat(filepath.Join(out, "in_part2.txt")); !os.IsNotExist(err) {
		t.Errorf("part 2 written after a failed part 1: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	if code := run(cli(t, "-i", filepath.Join(dir, "absent.txt"), "-o", out, "--mode=lines", "-s", "1")); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output directory created for a missing input: %v", err)
	}
}
