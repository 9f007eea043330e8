// Package codec resolves the input and output text encodings of a job and
// wraps them into lossless-never-failing decode/encode steps: undecodable
// input becomes U+FFFD, unencodable output becomes the codec's replacement.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/anjor/textsplit/internal/constants"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Input/output selectors with a meaning beyond a plain codec name
const (
	Auto          = "auto"
	SameAsInput   = "same-as-input"
	SystemDefault = "system-default"
)

var ErrUnknownCodec = errors.New("unknown codec")

type Codec struct {
	Name     string
	Encoding encoding.Encoding
}

// UTF8 is the fallback whenever nothing better is known
var UTF8 = Codec{Name: "utf-8", Encoding: unicode.UTF8}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// names the x/text indexes do not carry themselves
var specialCodecs = map[string]Codec{
	"utf-8-sig": {Name: "utf-8-sig", Encoding: unicode.UTF8BOM},
	"utf-16":    {Name: "utf-16", Encoding: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
}

var nameAliases = map[string]string{
	"utf8":     "utf-8",
	"u8":       "utf-8",
	"utf8-sig": "utf-8-sig",
	"latin-1":  "iso-8859-1",
	"latin1":   "iso-8859-1",
	"l1":       "iso-8859-1",
	"gb-18030": "gb18030",
	"cp936":    "gbk",
	"cp932":    "shift_jis",
	"sjis":     "shift_jis",
	"cp949":    "euc-kr",
	"cp950":    "big5",
	"ascii":    "us-ascii",
}

var codePageName = regexp.MustCompile(`^cp(12[0-9]{2}|874)$`)

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	if a, found := nameAliases[n]; found {
		return a
	}
	if m := codePageName.FindStringSubmatch(n); m != nil {
		return "windows-" + m[1]
	}
	return n
}

// Lookup finds a codec by name, case-insensitively, consulting the IANA
// registry first and the WHATWG labels second.
func Lookup(name string) (Codec, error) {

	n := normalizeName(name)
	if n == "" {
		return Codec{}, fmt.Errorf("%w: empty name", ErrUnknownCodec)
	}

	if c, found := specialCodecs[n]; found {
		return c, nil
	}

	// shift_jis keeps its underscore in both indexes
	candidates := []string{n}
	if strings.Contains(name, "_") {
		candidates = append(candidates, strings.ToLower(strings.TrimSpace(name)))
	}

	for _, cand := range candidates {
		if enc, err := ianaindex.IANA.Encoding(cand); err == nil && enc != nil {
			return Codec{Name: canonicalName(enc, n), Encoding: enc}, nil
		}
		if enc, err := htmlindex.Get(cand); err == nil && enc != nil {
			return Codec{Name: canonicalName(enc, n), Encoding: enc}, nil
		}
	}

	return Codec{}, fmt.Errorf("%w: '%s'", ErrUnknownCodec, name)
}

// canonicalName prefers the MIME name, IANA primary names read like
// "iso_8859-1:1987"
func canonicalName(enc encoding.Encoding, fallback string) string {
	if n, err := ianaindex.MIME.Name(enc); err == nil && n != "" {
		return strings.ToLower(n)
	}
	return fallback
}

// Detect picks the codec of a raw input prefix. A byte order mark wins,
// pure ASCII is taken as UTF-8, anything else goes through statistical
// detection accepted only above constants.DetectMinConfidence.
func Detect(sample []byte) Codec {

	switch {
	case len(sample) == 0:
		return UTF8
	case bytes.HasPrefix(sample, bomUTF8):
		return specialCodecs["utf-8-sig"]
	case bytes.HasPrefix(sample, bomUTF16LE):
		return Codec{Name: "utf-16le", Encoding: unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)}
	case bytes.HasPrefix(sample, bomUTF16BE):
		return Codec{Name: "utf-16be", Encoding: unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)}
	case isASCII(sample):
		return UTF8
	}

	all, err := chardet.NewTextDetector().DetectAll(sample)
	if err != nil || len(all) == 0 {
		return UTF8
	}

	// recognizers race each other, make ties deterministic
	best := all[0]
	for _, r := range all[1:] {
		if r.Confidence > best.Confidence ||
			(r.Confidence == best.Confidence && preferredOver(r.Charset, best.Charset)) {
			best = r
		}
	}
	if best.Confidence <= constants.DetectMinConfidence {
		return UTF8
	}

	c, err := Lookup(best.Charset)
	if err != nil {
		return UTF8
	}
	return c
}

func preferredOver(a, b string) bool {
	if strings.EqualFold(b, "utf-8") {
		return false
	}
	return strings.EqualFold(a, "utf-8") || a < b
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// ReadSample reads up to n bytes from r, a short read is not an error.
func ReadSample(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return buf[:got], err
}

// Resolve turns the input and output selectors into a fixed codec pair.
// sample is only consulted when inSel is Auto.
func Resolve(inSel, outSel string, sample []byte) (in, out Codec, err error) {

	if inSel == "" || strings.EqualFold(inSel, Auto) {
		in = Detect(sample)
	} else if in, err = Lookup(inSel); err != nil {
		return Codec{}, Codec{}, fmt.Errorf("input encoding: %w", err)
	}

	switch {
	case strings.EqualFold(outSel, SameAsInput):
		out = in
	case strings.EqualFold(outSel, SystemDefault):
		out = System()
	case outSel == "":
		out = UTF8
	default:
		if out, err = Lookup(outSel); err != nil {
			return Codec{}, Codec{}, fmt.Errorf("output encoding: %w", err)
		}
	}

	return in, out, nil
}

// NewReader decodes r into UTF-8 text.
func (c Codec) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, c.Encoding.NewDecoder())
}

// NewWriter encodes everything written to it into w, substituting what the
// codec can not represent. It must be closed to flush the tail.
func (c Codec) NewWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, encoding.ReplaceUnsupported(c.Encoding.NewEncoder()))
}

// Encode renders text in this codec, substituting what it can not represent.
func (c Codec) Encode(text string) ([]byte, error) {
	return encoding.ReplaceUnsupported(c.Encoding.NewEncoder()).Bytes([]byte(text))
}

func (c Codec) String() string { return c.Name }
