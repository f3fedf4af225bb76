package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var simpleEscapes = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// unescape decodes the backslash escapes of a non-raw string body. It returns
// a string, or Bytes when bytesLit is set. Unknown escapes are kept verbatim.
func unescape(body []rune, bytesLit bool) (any, error) {
	var (
		str strings.Builder
		raw []byte
	)
	emit := func(r rune) {
		if bytesLit {
			raw = append(raw, byte(r))
			return
		}
		str.WriteRune(r)
	}

	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			emit(body[i])
			continue
		}

		i++
		r := body[i]

		if decoded, ok := simpleEscapes[r]; ok {
			emit(decoded)
			continue
		}

		switch {
		case r == '\n':
			// line continuation inside the string
		case r == '\r' && i+1 < len(body) && body[i+1] == '\n':
			i++
		case r >= '0' && r <= '7':
			end := i + 1
			for end < len(body) && end < i+3 && body[end] >= '0' && body[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(string(body[i:end]), 8, 32)
			emit(rune(v))
			i = end - 1
		case r == 'x':
			v, err := hexEscape(body, i+1, 2)
			if err != nil {
				return nil, err
			}
			emit(rune(v))
			i += 2
		case !bytesLit && (r == 'u' || r == 'U'):
			width := 4
			if r == 'U' {
				width = 8
			}
			v, err := hexEscape(body, i+1, width)
			if err != nil {
				return nil, err
			}
			if v > utf8.MaxRune {
				return nil, fmt.Errorf("illegal Unicode character in \\U escape")
			}
			if v >= 0xD800 && v <= 0xDFFF {
				return nil, fmt.Errorf("surrogate code point \\%c%0*x is not a character", r, width, v)
			}
			emit(rune(v))
			i += width
		case !bytesLit && r == 'N':
			return nil, errors.New("\\N{...} escapes are not supported")
		default:
			emit('\\')
			emit(r)
		}
	}

	if bytesLit {
		if raw == nil {
			raw = []byte{}
		}
		return Bytes(raw), nil
	}
	return str.String(), nil
}

// hexEscape reads exactly width hex digits of body starting at from.
func hexEscape(body []rune, from, width int) (uint64, error) {
	if from+width > len(body) {
		return 0, fmt.Errorf("truncated \\%c escape", body[from-1])
	}

	digits := string(body[from : from+width])
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || strings.ContainsAny(digits, "+-_") {
		return 0, fmt.Errorf("truncated \\%c escape", body[from-1])
	}
	return v, nil
}
