// Package parser implements the byte-oriented recursive-descent DBC grammar
// reader: a position-tracked cursor plus one handler per top-level keyword,
// committing into dbc domain types via dbc.New, the validation choke point
// the builder package also uses (§4.1, §4.2).
package parser

import (
	"strconv"

	dbc "github.com/aldas/go-dbc"
)

// cursor is a position-tracked reader over a borrowed byte slice. Primitive
// parsers return textual results as strings copied from the input, so each
// such result allocates; number and
// identifier parsers restore pos on failure so callers can distinguish
// "absent" from "malformed" by checking whether pos advanced.
type cursor struct {
	input []byte
	pos   int
	line  int
}

func newCursor(input []byte) *cursor {
	return &cursor{input: input, line: 1}
}

func (c *cursor) eof() bool { return c.pos >= len(c.input) }

func (c *cursor) peek() (byte, bool) {
	if c.eof() {
		return 0, false
	}
	return c.input[c.pos], true
}

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

func isLineBreak(b byte) bool { return b == '\n' || b == '\r' }

// expect consumes exactly lit or fails, leaving pos unchanged on failure.
func (c *cursor) expect(lit byte) error {
	b, ok := c.peek()
	if !ok || b != lit {
		return &dbc.ParseError{Kind: dbc.KindExpected, Msg: "expected '" + string(lit) + "'", Line: c.line}
	}
	c.pos++
	return nil
}

// skipWhitespace consumes one or more spaces/tabs, failing if none are present.
func (c *cursor) skipWhitespace() error {
	start := c.pos
	for {
		b, ok := c.peek()
		if !ok || !isSpaceOrTab(b) {
			break
		}
		c.pos++
	}
	if c.pos == start {
		return &dbc.ParseError{Kind: dbc.KindExpected, Msg: "expected whitespace", Line: c.line}
	}
	return nil
}

// skipSpaces consumes zero or more spaces/tabs.
func (c *cursor) skipSpaces() {
	for {
		b, ok := c.peek()
		if !ok || !isSpaceOrTab(b) {
			return
		}
		c.pos++
	}
}

// skipNewlinesAndSpaces consumes whitespace and line breaks, incrementing
// line on every \n, \r, or \r\n encountered.
func (c *cursor) skipNewlinesAndSpaces() {
	for {
		b, ok := c.peek()
		if !ok {
			return
		}
		switch {
		case isSpaceOrTab(b):
			c.pos++
		case b == '\r':
			c.pos++
			if nb, ok := c.peek(); ok && nb == '\n' {
				c.pos++
			}
			c.line++
		case b == '\n':
			c.pos++
			c.line++
		default:
			return
		}
	}
}

// skipToEndOfLine advances past the remainder of the current line, used for
// error recovery on malformed records.
func (c *cursor) skipToEndOfLine() {
	for {
		b, ok := c.peek()
		if !ok || isLineBreak(b) {
			return
		}
		c.pos++
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// parseIdentifier reads [A-Za-z_][A-Za-z0-9_]*, stopping at whitespace,
// ':', ',', or a line break.
func (c *cursor) parseIdentifier() (string, error) {
	start := c.pos
	b, ok := c.peek()
	if !ok || !isIdentStart(b) {
		return "", &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "expected identifier", Line: c.line}
	}
	c.pos++
	for {
		b, ok := c.peek()
		if !ok || !isIdentCont(b) {
			break
		}
		c.pos++
	}
	return string(c.input[start:c.pos]), nil
}

func isNumberByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '-' || b == '+' || b == '.' || b == 'e' || b == 'E'
}

// scanNumber collects the raw text of a number token, restoring pos and
// returning ok=false if no number-alphabet byte was present.
func (c *cursor) scanNumber() (string, bool) {
	start := c.pos
	for {
		b, ok := c.peek()
		if !ok || !isNumberByte(b) {
			break
		}
		c.pos++
	}
	if c.pos == start {
		return "", false
	}
	return string(c.input[start:c.pos]), true
}

func (c *cursor) parseU8() (uint8, error) {
	v, err := c.parseU64()
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func (c *cursor) parseU32() (uint32, error) {
	v, err := c.parseU64()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (c *cursor) parseU64() (uint64, error) {
	mark := c.pos
	tok, ok := c.scanNumber()
	if !ok {
		return 0, &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "expected unsigned integer", Line: c.line}
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		c.pos = mark
		return 0, &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "invalid unsigned integer", Line: c.line}
	}
	return v, nil
}

func (c *cursor) parseI64() (int64, error) {
	mark := c.pos
	tok, ok := c.scanNumber()
	if !ok {
		return 0, &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "expected integer", Line: c.line}
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		c.pos = mark
		return 0, &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "invalid integer", Line: c.line}
	}
	return v, nil
}

// parseF64OrDefault matches the documented "empty numeric slot defaults to
// def" behavior (§4.2.1, §9): if no number-alphabet byte is present the
// cursor is left untouched and def is returned rather than an error.
func (c *cursor) parseF64OrDefault(def float64) float64 {
	mark := c.pos
	tok, ok := c.scanNumber()
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		c.pos = mark
		return def
	}
	return v
}

func isControlByte(b byte) bool { return b < 32 || b == 127 }

// takeUntilQuote consumes bytes until an unescaped '"', rejecting embedded
// quotes, backslashes, tabs, line breaks, and other control bytes. When
// allowCIdentOnly is set every byte must additionally satisfy the C
// identifier alphabet.
func (c *cursor) takeUntilQuote(allowCIdentOnly bool, maxLen int) (string, error) {
	start := c.pos
	for {
		b, ok := c.peek()
		if !ok {
			return "", &dbc.ParseError{Kind: dbc.KindUnexpectedEOF, Msg: "unterminated quoted string", Line: c.line}
		}
		if b == '"' {
			break
		}
		if b == '\\' || b == '\t' || isLineBreak(b) || isControlByte(b) {
			return "", &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "invalid byte in quoted string", Line: c.line}
		}
		if allowCIdentOnly && !isIdentCont(b) {
			return "", &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "expected C identifier byte", Line: c.line}
		}
		if c.pos-start >= maxLen {
			return "", &dbc.ParseError{Kind: dbc.KindMaxStrLength, Msg: "quoted string exceeds max length", Line: c.line}
		}
		c.pos++
	}
	return string(c.input[start:c.pos]), nil
}

// parseQuoted consumes `"text"`.
func (c *cursor) parseQuoted(maxLen int) (string, error) {
	if err := c.expect('"'); err != nil {
		return "", err
	}
	s, err := c.takeUntilQuote(false, maxLen)
	if err != nil {
		return "", err
	}
	if err := c.expect('"'); err != nil {
		return "", err
	}
	return s, nil
}
