// Package textstream provides the decoded-text primitives the partitioners
// run on: a line/character oriented reader and the streaming counter used
// to size a split before it starts.
package textstream

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/anjor/textsplit/internal/constants"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
)

// Reader implements tspartitioner.Source over a UTF-8 stream.
type Reader struct {
	br *bufio.Reader
}

var _ tspartitioner.Source = (*Reader)(nil)

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, constants.ReadBufSize)}
}

func (r *Reader) ReadLine() (string, error) {
	return r.br.ReadString('\n')
}

func (r *Reader) ReadChars(n int) (string, error) {

	if n < 0 {
		b, err := io.ReadAll(r.br)
		if err != nil {
			return string(b), err
		}
		return string(b), io.EOF
	}

	var sb strings.Builder
	for n > 0 {
		if r.br.Buffered() == 0 {
			if _, err := r.br.Peek(1); err != nil {
				return sb.String(), err
			}
		}
		buf, _ := r.br.Peek(r.br.Buffered())

		var used, taken int
		for used < len(buf) && taken < n && utf8.FullRune(buf[used:]) {
			_, size := utf8.DecodeRune(buf[used:])
			used += size
			taken++
		}

		// a rune straddles the end of the buffer: let bufio assemble it
		if used == 0 {
			ch, _, err := r.br.ReadRune()
			if err != nil {
				return sb.String(), err
			}
			sb.WriteRune(ch)
			n--
			continue
		}

		sb.Write(buf[:used])
		if _, err := r.br.Discard(used); err != nil {
			return sb.String(), err
		}
		n -= taken
	}

	return sb.String(), nil
}

// Count makes a single streaming pass over decoded text, measuring characters
// (code points), lines and bytes without holding more than one read buffer.
func Count(r io.Reader) (t tspartitioner.Totals, err error) {

	buf := make([]byte, constants.ReadBufSize)
	var last byte

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			t.Bytes += int64(n)
			t.Lines += int64(bytes.Count(chunk, []byte{'\n'}))
			for _, b := range chunk {
				// every byte but a continuation one starts a character
				if b&0xC0 != 0x80 {
					t.Chars++
				}
			}
			last = chunk[n-1]
		}

		if readErr == io.EOF {
			break
		} else if readErr != nil {
			return t, readErr
		}
	}

	if t.Bytes > 0 && last != '\n' {
		t.Lines++
	}

	return t, nil
}
