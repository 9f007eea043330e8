package chunkwriter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/anjor/textsplit/internal/codec"
	"github.com/anjor/textsplit/internal/digest"
)

func mustLookup(t *testing.T, name string) codec.Codec {
	t.Helper()
	c, err := codec.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNaming(t *testing.T) {
	dir := t.TempDir()

	w, err := New(&Options{OutputDir: dir, Stem: "report", Ext: ".log", Codec: codec.UTF8})
	if err != nil {
		t.Fatal(err)
	}
	if got := w.PathFor(3); got != filepath.Join(dir, "report_part3.log") {
		t.Fatalf("got %s", got)
	}

	w, err = New(&Options{OutputDir: dir, Naming: NamingPlain, Codec: codec.UTF8})
	if err != nil {
		t.Fatal(err)
	}
	if got := w.PathFor(12); got != filepath.Join(dir, "part12.txt") {
		t.Fatalf("got %s", got)
	}
}

func TestInvalidOptions(t *testing.T) {
	for _, o := range []*Options{
		nil,
		{Codec: codec.UTF8, Stem: "a"},
		{OutputDir: "x", Stem: "a"},
		{OutputDir: "x", Codec: codec.UTF8, Naming: "fancy"},
		{OutputDir: "x", Codec: codec.UTF8},
	} {
		if _, err := New(o); !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("%+v: expected ErrInvalidOptions, got %v", o, err)
		}
	}
}

func TestWriteEncodesAndDigests(t *testing.T) {
	dir := t.TempDir()
	d, err := digest.New("sha2-256", "base36")
	if err != nil {
		t.Fatal(err)
	}

	w, err := New(&Options{
		OutputDir: dir,
		Stem:      "in",
		Ext:       ".txt",
		Codec:     mustLookup(t, "latin-1"),
		Digester:  d,
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := w.Write(1, "café ☃\n")
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("caf\xe9 \x1a\n")
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if res.Bytes != int64(len(want)) {
		t.Fatalf("reported %d bytes", res.Bytes)
	}
	if res.Digest != d.Sum(want) {
		t.Fatalf("digest %s does not match content", res.Digest)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("stray files left behind: %v", entries)
	}
}

func TestWriteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	w, err := New(&Options{OutputDir: dir, Naming: NamingPlain, Codec: codec.UTF8})
	if err != nil {
		t.Fatal(err)
	}

	unrelated := filepath.Join(dir, "keep.me")
	if err := os.WriteFile(unrelated, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(w.PathFor(1), []byte("a much longer previous content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := w.Write(1, "new"); err != nil {
		t.Fatal(err)
	}

	if b, _ := os.ReadFile(w.PathFor(1)); string(b) != "new" {
		t.Fatalf("got %q", b)
	}
	if b, _ := os.ReadFile(unrelated); string(b) != "x" {
		t.Fatal("unrelated file modified")
	}
}

func TestWriteFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	w, err := New(&Options{OutputDir: dir, Stem: "s", Codec: codec.UTF8})
	if err != nil {
		t.Fatal(err)
	}

	_, err = w.Write(7, "content")
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if we.Part != 7 || we.Path != w.PathFor(7) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected error details: %+v", we)
	}
}

func TestPrepare(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	w, err := New(&Options{OutputDir: dir, Stem: "s", Codec: codec.UTF8})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Prepare(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(1, "x"); err != nil {
		t.Fatal(err)
	}
}
