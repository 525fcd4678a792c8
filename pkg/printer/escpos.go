package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

const (
	alignLeft   = 0
	alignCenter = 1

	sizeNormal = 0x00
	sizeDouble = 0x11
)

// DefaultColumns fits 58mm paper; 80mm paper takes 48.
const DefaultColumns = 32

// Ticket accumulates an ESC/POS byte stream and, alongside it, the plain
// text lines it prints.
type Ticket struct {
	buf   bytes.Buffer
	lines []string
	cols  int
}

// NewTicket starts a ticket that wraps at cols characters
func NewTicket(cols int) *Ticket {
	if cols <= 0 {
		cols = DefaultColumns
	}
	t := &Ticket{cols: cols}
	t.buf.Write([]byte{esc, '@'})
	return t
}

func (t *Ticket) write(s string) {
	t.buf.WriteString(s)
	t.buf.WriteByte(lf)
	t.lines = append(t.lines, s)
}

// Line prints one left-aligned line
func (t *Ticket) Line(s string) *Ticket {
	t.write(truncate(s, t.cols))
	return t
}

// Title prints a centered, double-size, bold line
func (t *Ticket) Title(s string) *Ticket {
	t.buf.Write([]byte{esc, 'a', alignCenter, esc, 'E', 1, gs, '!', sizeDouble})
	t.write(truncate(s, t.cols/2))
	t.buf.Write([]byte{gs, '!', sizeNormal, esc, 'E', 0, esc, 'a', alignLeft})
	return t
}

// Center prints one centered line
func (t *Ticket) Center(s string) *Ticket {
	t.buf.Write([]byte{esc, 'a', alignCenter})
	t.write(truncate(s, t.cols))
	t.buf.Write([]byte{esc, 'a', alignLeft})
	return t
}

// Rule prints a full-width dashed line
func (t *Ticket) Rule() *Ticket {
	t.write(strings.Repeat("-", t.cols))
	return t
}

// Columns prints left and right text on one line, shortening left to fit.
func (t *Ticket) Columns(left, right string) *Ticket {
	room := t.cols - utf8.RuneCountInString(right) - 1
	if room < 1 {
		room = 1
	}
	left = truncate(left, room)
	pad := t.cols - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	t.write(left + strings.Repeat(" ", pad) + right)
	return t
}

// Emphasis wraps the next lines in bold
func (t *Ticket) Emphasis(on bool) *Ticket {
	b := byte(0)
	if on {
		b = 1
	}
	t.buf.Write([]byte{esc, 'E', b})
	return t
}

// Feed advances the paper n lines
func (t *Ticket) Feed(n int) *Ticket {
	for i := 0; i < n; i++ {
		t.write("")
	}
	return t
}

// Cut issues a partial cut
func (t *Ticket) Cut() *Ticket {
	t.buf.Write([]byte{gs, 'V', 0x01})
	return t
}

// Bytes returns the ESC/POS stream
func (t *Ticket) Bytes() []byte {
	return t.buf.Bytes()
}

// Text returns the printed lines without control codes
func (t *Ticket) Text() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
