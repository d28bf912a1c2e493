package parser

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokNumber
	tokString
	tokOpen  // [
	tokClose // ]
	tokSep   // ; or newline
)

func (k tokenKind) String() string {
	switch k {
	case tokWord:
		return "word"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokOpen:
		return "'['"
	case tokClose:
		return "']'"
	case tokSep:
		return "separator"
	default:
		return "end of program"
	}
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lex splits src into tokens. '#' starts a comment running to end of line.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n' || c == ';':
			toks = append(toks, token{kind: tokSep, text: string(c), pos: i})
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == ',':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '[':
			toks = append(toks, token{kind: tokOpen, text: "[", pos: i})
			i++
		case c == ']':
			toks = append(toks, token{kind: tokClose, text: "]", pos: i})
			i++
		case c == '"' || c == '\'':
			text, n, err := lexString(src[i:])
			if err != nil {
				return nil, newProgramError(src, i, "%v", err)
			}
			toks = append(toks, token{kind: tokString, text: text, pos: i})
			i += n
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			i++
			for i < len(src) && isNumberByte(src[i], src[i-1]) {
				i++
			}
			raw := src[start:i]
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, newProgramError(src, start, "bad number %q", raw)
			}
			toks = append(toks, token{kind: tokNumber, text: raw, num: f, pos: start})
		case isLetter(rune(c)):
			start := i
			for i < len(src) && (isLetter(rune(src[i])) || isDigit(src[i])) {
				i++
			}
			toks = append(toks, token{kind: tokWord, text: strings.ToLower(src[start:i]), pos: start})
		default:
			return nil, newProgramError(src, i, "unexpected character %q", c)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// lexString reads a quoted string at the start of s and returns its value
// and the number of bytes consumed. Double quotes accept Go escapes; single
// quotes are raw.
func lexString(s string) (string, int, error) {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			if quote == '\'' {
				return s[1:i], i + 1, nil
			}
			v, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return "", 0, err
			}
			return v, i + 1, nil
		}
	}
	return "", 0, errUnterminated
}

type lexError string

func (e lexError) Error() string { return string(e) }

const errUnterminated = lexError("unterminated string")

func isNumberByte(c, prev byte) bool {
	switch {
	case isDigit(c), c == '.', c == 'e', c == 'E':
		return true
	case c == '-' || c == '+':
		return prev == 'e' || prev == 'E'
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}
