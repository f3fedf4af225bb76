package literal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Repr renders v in literal syntax. The output of Repr for any parsed value
// parses back to an equal value, except for non-finite floats.
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		if v {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case int64:
		sb.WriteString(strconv.FormatInt(v, 10))
	case *big.Int:
		sb.WriteString(v.String())
	case float64:
		sb.WriteString(formatFloat(v))
	case string:
		sb.WriteString(quoteString(v))
	case Bytes:
		sb.WriteString(quoteBytes(v))
	case List:
		writeSeq(sb, "[", "]", v)
	case Tuple:
		if len(v) == 1 {
			sb.WriteString("(")
			writeRepr(sb, v[0])
			sb.WriteString(",)")
			return
		}
		writeSeq(sb, "(", ")", v)
	case *Set:
		if v.Len() == 0 {
			sb.WriteString("set()")
			return
		}
		writeSeq(sb, "{", "}", v.values)
	case *Dict:
		sb.WriteString("{")
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, item.Key)
			sb.WriteString(": ")
			writeRepr(sb, item.Value)
		}
		sb.WriteString("}")
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func writeSeq(sb *strings.Builder, left, right string, values []any) {
	sb.WriteString(left)
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeRepr(sb, v)
	}
	sb.WriteString(right)
}

// formatFloat uses positional notation for exponents in [-4, 16) and always
// keeps a fractional part, so floats never read back as ints.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	exp := 0
	if f != 0 {
		exp = int(math.Floor(math.Log10(math.Abs(f))))
	}
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// quoteString prefers single quotes unless the text contains one and no double quote.
func quoteString(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteRune(quote)
	return sb.String()
}

func quoteBytes(b Bytes) string {
	quote := byte('\'')
	if strings.IndexByte(string(b), '\'') >= 0 && strings.IndexByte(string(b), '"') < 0 {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteString("b")
	sb.WriteByte(quote)
	for _, c := range b {
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
