package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
	"github.com/ulikunitz/xz"
)

// ErrNotFound is returned for input paths that are missing or are not
// regular files
var ErrNotFound = errors.New("input not found")

type ReadOpt struct {
	Name   string
	Action func(*os.File, os.FileInfo) error
}

func IsTTY(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type compression struct {
	name  string
	magic []byte
	exts  []string
	open  func(io.Reader) (io.ReadCloser, error)
}

var compressions = []compression{
	{
		name:  "gzip",
		magic: []byte{0x1f, 0x8b},
		exts:  []string{".gz", ".gzip"},
		open: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	},
	{
		name:  "zstd",
		magic: []byte{0x28, 0xb5, 0x2f, 0xfd},
		exts:  []string{".zst", ".zstd"},
		open: func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			return d.IOReadCloser(), nil
		},
	},
	{
		name:  "xz",
		magic: []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
		exts:  []string{".xz"},
		open: func(r io.Reader) (io.ReadCloser, error) {
			d, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(d), nil
		},
	},
}

// Input is an opened, possibly decompressed, source file
type Input struct {
	io.Reader

	// Name is the base name of the path, Stem and Ext split it for output
	// naming with any compression suffix removed
	Name        string
	Stem        string
	Ext         string
	Size        int64
	Compression string

	raw     *Counter
	file    *os.File
	decoder io.ReadCloser
}

// Consumed is the amount of raw (pre-decompression) bytes read so far
func (in *Input) Consumed() int64 { return in.raw.N }

func (in *Input) Close() error {
	var err error
	if in.decoder != nil {
		err = in.decoder.Close()
	}
	if cerr := in.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Stat checks that path names a regular file without opening it
func Stat(path string) (os.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: '%s' is not a regular file", ErrNotFound, path)
	}
	return fi, nil
}

// OpenInput opens path for a single sequential pass. When decompress is set
// gzip, zstd and xz content is recognized by its magic and unpacked on the
// fly.
func OpenInput(path string, decompress bool) (*Input, error) {

	fi, err := Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, err)
	}

	for _, opt := range ReadOptimizations {
		// best effort, os.ErrInvalid means "not applicable"
		opt.Action(f, fi) //nolint:errcheck
	}

	in := &Input{
		Name: filepath.Base(path),
		Size: fi.Size(),
		raw:  &Counter{R: f},
		file: f,
	}
	in.Stem, in.Ext = SplitName(in.Name)

	br := bufio.NewReader(in.raw)
	in.Reader = br

	if !decompress {
		return in, nil
	}

	// a short or failed peek simply means "not compressed"
	head, _ := br.Peek(8)

	for _, c := range compressions {
		if !bytes.HasPrefix(head, c.magic) {
			continue
		}

		d, err := c.open(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening %s stream of '%s' failed: %w", c.name, path, err)
		}
		in.decoder = d
		in.Reader = d
		in.Compression = c.name

		for _, e := range c.exts {
			if strings.EqualFold(in.Ext, e) {
				in.Stem, in.Ext = SplitName(in.Stem)
				break
			}
		}
		break
	}

	return in, nil
}

// SplitName separates a base name into stem and extension. Leading dots
// belong to the stem, so ".notes" has no extension at all.
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if strings.Trim(stem, ".") == "" {
		return name, ""
	}
	return stem, ext
}

// Counter tallies the bytes read through it
type Counter struct {
	R io.Reader
	N int64
}

func (c *Counter) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
