// Package chunkwriter persists finished chunks as numbered files. Every part
// is written to a temporary file next to its destination, synced, closed and
// renamed into place, so an interrupted job never leaves a truncated part
// behind.
package chunkwriter

import (
	"bufio"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anjor/textsplit/internal/codec"
	"github.com/anjor/textsplit/internal/digest"
)

const (
	NamingStem  = "stem"
	NamingPlain = "plain"
)

var AvailableNamings = map[string]string{
	NamingStem:  "<input-stem>_part<N><input-ext>",
	NamingPlain: "part<N>.txt",
}

var ErrInvalidOptions = errors.New("invalid chunk writer options")

type Options struct {
	OutputDir string
	Naming    string
	Stem      string
	Ext       string
	Codec     codec.Codec

	// nil disables digesting
	Digester *digest.Digester

	// zero values select 0644 / 0755 / 64KiB
	PermFile os.FileMode
	PermDir  os.FileMode
	BufSize  int
}

// WriteError describes a part that could not be persisted
type WriteError struct {
	Part int
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing part %d to '%s' failed: %s", e.Part, e.Path, e.Err)
}
func (e *WriteError) Unwrap() error { return e.Err }

// Written is the outcome of a single successful Write
type Written struct {
	Path   string
	Bytes  int64
	Digest string
}

type Writer struct {
	opts Options
}

func New(opts *Options) (*Writer, error) {

	if opts == nil || strings.TrimSpace(opts.OutputDir) == "" {
		return nil, fmt.Errorf("%w: an output directory is required", ErrInvalidOptions)
	}
	if opts.Codec.Encoding == nil {
		return nil, fmt.Errorf("%w: an output codec is required", ErrInvalidOptions)
	}

	w := &Writer{opts: *opts}

	if w.opts.Naming == "" {
		w.opts.Naming = NamingStem
	}
	if _, exists := AvailableNamings[w.opts.Naming]; !exists {
		return nil, fmt.Errorf("%w: unknown naming scheme '%s'", ErrInvalidOptions, w.opts.Naming)
	}
	if w.opts.Naming == NamingStem && w.opts.Stem == "" {
		return nil, fmt.Errorf("%w: naming scheme '%s' requires an input stem", ErrInvalidOptions, NamingStem)
	}

	if w.opts.PermFile == 0 {
		w.opts.PermFile = 0o644
	}
	if w.opts.PermDir == 0 {
		w.opts.PermDir = 0o755
	}
	if w.opts.BufSize <= 0 {
		w.opts.BufSize = 64 * 1024
	}

	return w, nil
}

// Prepare creates the output directory if needed
func (w *Writer) Prepare() error {
	return os.MkdirAll(w.opts.OutputDir, w.opts.PermDir)
}

func (w *Writer) PathFor(n int) string {
	var name string
	if w.opts.Naming == NamingPlain {
		name = fmt.Sprintf("part%d.txt", n)
	} else {
		name = fmt.Sprintf("%s_part%d%s", w.opts.Stem, n, w.opts.Ext)
	}
	return filepath.Join(w.opts.OutputDir, name)
}

// Write persists part n, replacing any file of the same name. Failures are
// always returned as *WriteError.
func (w *Writer) Write(n int, text string) (Written, error) {

	res := Written{Path: w.PathFor(n)}

	wrapErr := func(err error) (Written, error) {
		return Written{}, &WriteError{Part: n, Path: res.Path, Err: err}
	}

	tmp, err := os.CreateTemp(w.opts.OutputDir, ".tmp-part-*")
	if err != nil {
		return wrapErr(err)
	}
	tmpPath := tmp.Name()

	discard := func(err error) (Written, error) {
		tmp.Close()        //nolint:errcheck
		os.Remove(tmpPath) //nolint:errcheck
		return wrapErr(err)
	}

	if err := tmp.Chmod(w.opts.PermFile); err != nil {
		return discard(err)
	}

	bw := bufio.NewWriterSize(tmp, w.opts.BufSize)
	cw := &countingWriter{w: bw}

	var h hash.Hash
	var dst io.Writer = cw
	if w.opts.Digester != nil {
		h = w.opts.Digester.Hash()
		dst = io.MultiWriter(cw, h)
	}

	enc := w.opts.Codec.NewWriter(dst)
	if _, err := io.WriteString(enc, text); err != nil {
		return discard(err)
	}
	if err := enc.Close(); err != nil {
		return discard(err)
	}
	if err := bw.Flush(); err != nil {
		return discard(err)
	}
	if err := tmp.Sync(); err != nil {
		return discard(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return wrapErr(err)
	}

	if err := osReplace(tmpPath, res.Path); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return wrapErr(err)
	}
	syncDir(w.opts.OutputDir) //nolint:errcheck

	res.Bytes = cw.n
	if h != nil {
		res.Digest = w.opts.Digester.Format(h.Sum(nil))
	}
	return res, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
