package literal

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const eof = -1

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokColon
	tokComma
	tokPlus
	tokMinus
	tokName
	tokNumber
	tokString
)

var punctuation = map[rune]tokenKind{
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBracket,
	']': tokRBracket,
	'(': tokLParen,
	')': tokRParen,
	':': tokColon,
	',': tokComma,
	'+': tokPlus,
	'-': tokMinus,
}

type token struct {
	kind  tokenKind
	text  string
	value any // decoded value of number and string tokens
	line  int
	col   int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokName:
		return "name '" + t.text + "'"
	case tokNumber:
		return "number " + t.text
	case tokString:
		return "string " + t.text
	default:
		return "'" + t.text + "'"
	}
}

// lexer splits literal source into tokens. Comments, whitespace, newlines and
// backslash line continuations are skipped.
type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) peek(n int) rune {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return eof
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) takeWhile(keep func(rune) bool) string {
	start := l.pos
	for l.peek(0) != eof && keep(l.peek(0)) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

func (l *lexer) skipSpace() error {
	for {
		switch r := l.peek(0); {
		case r == ' ' || r == '\t' || r == '\f' || r == '\r' || r == '\n':
			l.advance()
		case r == '#':
			l.takeWhile(func(r rune) bool { return r != '\n' })
		case r == '\\':
			switch {
			case l.peek(1) == '\n':
				l.advance()
				l.advance()
			case l.peek(1) == '\r' && l.peek(2) == '\n':
				l.advance()
				l.advance()
				l.advance()
			default:
				return syntaxErrorf(l.line, l.col, "unexpected character after line continuation character")
			}
		default:
			return nil
		}
	}
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		return token{}, err
	}

	line, col := l.line, l.col
	r := l.peek(0)

	if r == eof {
		return token{kind: tokEOF, line: line, col: col}, nil
	}

	if kind, ok := punctuation[r]; ok {
		l.advance()
		return token{kind: kind, text: string(r), line: line, col: col}, nil
	}

	switch {
	case isDigit(r) || (r == '.' && isDigit(l.peek(1))):
		return l.lexNumber(line, col)
	case r == '\'' || r == '"':
		return l.lexString(line, col, "")
	case isIdentStart(r):
		return l.lexName(line, col)
	}

	return token{}, syntaxErrorf(line, col, "unexpected character %q", r)
}

func (l *lexer) lexName(line, col int) (token, error) {
	name := l.takeWhile(isIdentPart)

	if q := l.peek(0); q == '\'' || q == '"' {
		switch strings.ToLower(name) {
		case "r", "u", "b", "br", "rb":
			return l.lexString(line, col, name)
		case "f", "fr", "rf":
			return token{}, syntaxErrorf(line, col, "f-strings are not literals")
		}
	}

	return token{kind: tokName, text: name, line: line, col: col}, nil
}

func (l *lexer) lexString(line, col int, prefix string) (token, error) {
	start := l.pos - len([]rune(prefix))
	lower := strings.ToLower(prefix)
	raw := strings.Contains(lower, "r")
	bytesLit := strings.Contains(lower, "b")

	quote := l.advance()
	triple := false
	if l.peek(0) == quote && l.peek(1) == quote {
		l.advance()
		l.advance()
		triple = true
	}

	var body []rune
scan:
	for {
		switch r := l.peek(0); {
		case r == eof:
			if triple {
				return token{}, syntaxErrorf(line, col, "unterminated triple-quoted string literal")
			}
			return token{}, syntaxErrorf(line, col, "unterminated string literal")
		case r == '\\':
			body = append(body, l.advance())
			if l.peek(0) != eof {
				body = append(body, l.advance())
			}
		case r == quote:
			if !triple {
				l.advance()
				break scan
			}
			if l.peek(1) == quote && l.peek(2) == quote {
				l.advance()
				l.advance()
				l.advance()
				break scan
			}
			body = append(body, l.advance())
		case r == '\n' && !triple:
			return token{}, syntaxErrorf(line, col, "unterminated string literal")
		default:
			body = append(body, l.advance())
		}
	}

	text := string(l.src[start:l.pos])

	if bytesLit {
		for _, r := range body {
			if r > unicode.MaxASCII {
				return token{}, syntaxErrorf(line, col, "bytes can only contain ASCII literal characters")
			}
		}
	}

	var (
		value any
		err   error
	)
	switch {
	case raw && bytesLit:
		value = Bytes(string(body))
	case raw:
		value = string(body)
	default:
		value, err = unescape(body, bytesLit)
		if err != nil {
			return token{}, syntaxErrorf(line, col, "%s", err.Error())
		}
	}

	return token{kind: tokString, text: text, value: value, line: line, col: col}, nil
}

func (l *lexer) lexNumber(line, col int) (token, error) {
	start := l.pos

	if l.peek(0) == '0' {
		if base := prefixBase(l.peek(1)); base != 0 {
			l.advance()
			l.advance()
			digits := l.takeWhile(func(r rune) bool { return r == '_' || isDigitIn(r, base) })
			if err := l.checkNumberEnd(line, col, digits == "" || !validUnderscores("0"+digits, func(r rune) bool { return isDigitIn(r, base) })); err != nil {
				return token{}, err
			}

			text := string(l.src[start:l.pos])
			return token{kind: tokNumber, text: text, value: parseInt(strings.ReplaceAll(digits, "_", ""), base), line: line, col: col}, nil
		}
	}

	isFloat := false
	l.takeWhile(isDecimalPart)
	if l.peek(0) == '.' {
		l.advance()
		isFloat = true
		l.takeWhile(isDecimalPart)
	}
	if r := l.peek(0); r == 'e' || r == 'E' {
		sign := l.peek(1) == '+' || l.peek(1) == '-'
		if (sign && isDigit(l.peek(2))) || isDigit(l.peek(1)) {
			l.advance()
			if sign {
				l.advance()
			}
			l.takeWhile(isDecimalPart)
			isFloat = true
		}
	}
	if r := l.peek(0); r == 'j' || r == 'J' {
		return token{}, syntaxErrorf(line, col, "complex literals are not supported")
	}

	text := string(l.src[start:l.pos])
	if err := l.checkNumberEnd(line, col, !validUnderscores(text, isDigit)); err != nil {
		return token{}, err
	}

	clean := strings.ReplaceAll(text, "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return token{}, syntaxErrorf(line, col, "invalid decimal literal")
		}
		return token{kind: tokNumber, text: text, value: f, line: line, col: col}, nil
	}

	if len(clean) > 1 && clean[0] == '0' && strings.Trim(clean, "0") != "" {
		return token{}, syntaxErrorf(line, col, "leading zeros in decimal integer literals are not permitted")
	}
	return token{kind: tokNumber, text: text, value: parseInt(clean, 10), line: line, col: col}, nil
}

// checkNumberEnd rejects malformed digits and numbers running into a name, as in 1abc.
func (l *lexer) checkNumberEnd(line, col int, malformed bool) error {
	if malformed || isIdentPart(l.peek(0)) || l.peek(0) == '.' {
		return syntaxErrorf(line, col, "invalid number literal")
	}
	return nil
}

// parseInt converts validated digits, falling back to *big.Int beyond int64.
func parseInt(digits string, base int) any {
	if v, err := strconv.ParseInt(digits, base, 64); err == nil {
		return v
	}

	v, _ := new(big.Int).SetString(digits, base)
	return v
}

// validUnderscores reports whether every underscore in s sits between two digits.
func validUnderscores(s string, digit func(rune) bool) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !digit(rune(s[i-1])) || !digit(rune(s[i+1])) {
			return false
		}
	}
	return true
}

func prefixBase(r rune) int {
	switch r {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isDecimalPart(r rune) bool { return isDigit(r) || r == '_' }

func isDigitIn(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	default:
		return isHexDigit(r)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r != eof && (isIdentStart(r) || unicode.IsDigit(r))
}
