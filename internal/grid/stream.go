package grid

// stream.go cleans spreadsheet exports on the fly before CSV parsing:
//
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF), added by Excel and Google Sheets
//     "Download as CSV" on some platforms, is dropped
//   - invalid UTF-8 bytes are replaced with U+FFFD
//
// Both happen in one pass over a bufio.Reader so memory stays at buffer size.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CleanReader strips a leading BOM and sanitizes invalid UTF-8.
type CleanReader struct {
	br         *bufio.Reader
	bomChecked bool
	pending    []byte // encoded rune that did not fit the caller's buffer
}

// NewCleanReader wraps r.
func NewCleanReader(r io.Reader) *CleanReader {
	return &CleanReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (c *CleanReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !c.bomChecked {
		c.bomChecked = true
		if head, err := c.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = c.br.Discard(len(utf8BOM))
		}
	}

	n := 0
	if len(c.pending) > 0 {
		n = copy(p, c.pending)
		c.pending = c.pending[n:]
		if len(c.pending) > 0 {
			return n, nil
		}
	}

	var buf [utf8.UTFMax]byte
	for n < len(p) {
		r, _, err := c.br.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		// ReadRune reports an invalid byte as (RuneError, 1); encoding it
		// back writes the 3-byte replacement character.
		w := utf8.EncodeRune(buf[:], r)
		copied := copy(p[n:], buf[:w])
		n += copied
		if copied < w {
			c.pending = append(c.pending[:0], buf[copied:w]...)
			break
		}
	}
	return n, nil
}
