// Package literal parses literal data displays: mappings, lists, tuples,
// sets, strings, bytes, numbers, booleans and None, written in the familiar
// Python literal syntax.
//
// Only literals are accepted. Names other than True, False and None, operators
// other than a sign in front of a number, calls other than set() and every
// other expression are rejected with a *SyntaxError, so parsing untrusted
// text never evaluates anything.
//
// Values map to Go types as follows:
//
//	None            nil
//	True, False     bool
//	int             int64, or *big.Int outside the int64 range
//	float           float64
//	str             string
//	bytes           Bytes
//	list            List
//	tuple           Tuple
//	set             *Set
//	dict            *Dict
package literal

import (
	"math/big"
)

// maxDepth bounds the nesting of containers.
const maxDepth = 1000

type parser struct {
	lex   *lexer
	tok   token
	depth int
}

// Parse parses src as a single literal.
func Parse(src []byte) (any, error) {
	return ParseString(string(src))
}

// ParseString parses src as a single literal. Surrounding whitespace and
// comments are ignored. A comma-separated sequence at the top level is a
// tuple, as in "1, 2".
func ParseString(src string) (any, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	v, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return v, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokEOF {
		return syntaxErrorf(p.tok.line, p.tok.col, "unexpected end of input")
	}
	return syntaxErrorf(p.tok.line, p.tok.col, "unexpected %s", p.tok)
}

// expect consumes a token of the given kind.
func (p *parser) expect(kind tokenKind, what string) error {
	if p.tok.kind != kind {
		if p.tok.kind == tokEOF {
			return syntaxErrorf(p.tok.line, p.tok.col, "expected %s, found end of input", what)
		}
		return syntaxErrorf(p.tok.line, p.tok.col, "expected %s, found %s", what, p.tok)
	}
	return p.advance()
}

func (p *parser) parseTopLevel() (any, error) {
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokComma {
		return first, nil
	}

	items, err := p.parseSequence(tokEOF, first)
	if err != nil {
		return nil, err
	}
	return Tuple(items), nil
}

// parseSequence parses ", value" repetitions after first until closing,
// allowing one trailing comma. The closing token is not consumed.
func (p *parser) parseSequence(closing tokenKind, first any) ([]any, error) {
	items := []any{first}
	for p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == closing {
			break
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	if p.tok.kind != closing {
		return nil, p.unexpected()
	}
	return items, nil
}

func (p *parser) parseValue() (any, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > maxDepth {
		return nil, syntaxErrorf(p.tok.line, p.tok.col, "too many nested structures")
	}

	switch p.tok.kind {
	case tokLBrace:
		return p.parseBraces()
	case tokLBracket:
		return p.parseList()
	case tokLParen:
		return p.parseParens()
	case tokPlus, tokMinus:
		return p.parseSigned()
	case tokNumber:
		v := p.tok.value
		return v, p.advance()
	case tokString:
		return p.parseStrings()
	case tokName:
		return p.parseName()
	}

	return nil, p.unexpected()
}

func (p *parser) parseName() (any, error) {
	tok := p.tok
	switch tok.text {
	case "True", "False", "None", "set":
	default:
		return nil, syntaxErrorf(tok.line, tok.col, "name '%s' is not a literal", tok.text)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	switch tok.text {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	}

	// set() is the only way to write an empty set.
	if p.tok.kind != tokLParen {
		return nil, syntaxErrorf(tok.line, tok.col, "name 'set' is not a literal")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return NewSet(), nil
}

// parseSigned accepts a single + or - in front of a number. The number may be
// wrapped in parentheses, as in -(1), but not in a second sign or a tuple.
func (p *parser) parseSigned() (any, error) {
	sign := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}

	parens := 0
	for p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parens++
	}
	if p.tok.kind != tokNumber {
		return nil, syntaxErrorf(sign.line, sign.col, "operator '%s' only applies to numbers", sign.text)
	}

	v := p.tok.value
	if err := p.advance(); err != nil {
		return nil, err
	}
	for ; parens > 0; parens-- {
		if p.tok.kind != tokRParen {
			return nil, syntaxErrorf(sign.line, sign.col, "operator '%s' only applies to numbers", sign.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if sign.kind == tokPlus {
		return v, nil
	}
	return negate(v), nil
}

// negate returns -v for a number produced by the lexer.
func negate(v any) any {
	switch n := v.(type) {
	case int64:
		return -n
	case *big.Int:
		neg := new(big.Int).Neg(n)
		if neg.IsInt64() {
			return neg.Int64()
		}
		return neg
	default:
		return -n.(float64)
	}
}

// parseStrings concatenates adjacent string literals of the same kind.
func (p *parser) parseStrings() (any, error) {
	first := p.tok
	value := first.value
	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.tok.kind == tokString {
		switch acc := value.(type) {
		case string:
			next, ok := p.tok.value.(string)
			if !ok {
				return nil, syntaxErrorf(p.tok.line, p.tok.col, "cannot mix bytes and nonbytes literals")
			}
			value = acc + next
		case Bytes:
			next, ok := p.tok.value.(Bytes)
			if !ok {
				return nil, syntaxErrorf(p.tok.line, p.tok.col, "cannot mix bytes and nonbytes literals")
			}
			value = append(append(Bytes{}, acc...), next...)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (p *parser) parseList() (any, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokRBracket {
		return List{}, p.advance()
	}

	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	items, err := p.parseSequence(tokRBracket, first)
	if err != nil {
		return nil, err
	}
	return List(items), p.advance()
}

// parseParens parses a tuple, or a parenthesised value when no comma follows it.
func (p *parser) parseParens() (any, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokRParen {
		return Tuple{}, p.advance()
	}

	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.tok.kind == tokRParen {
		return first, p.advance()
	}

	items, err := p.parseSequence(tokRParen, first)
	if err != nil {
		return nil, err
	}
	return Tuple(items), p.advance()
}

// parseBraces parses a mapping, or a set when the first element has no colon.
func (p *parser) parseBraces() (any, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokRBrace {
		return NewDict(), p.advance()
	}

	keyTok := p.tok
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.tok.kind == tokColon {
		return p.parseDict(keyTok, first)
	}
	return p.parseSet(keyTok, first)
}

func (p *parser) parseDict(keyTok token, key any) (any, error) {
	d := NewDict()
	for {
		if err := p.expect(tokColon, "':'"); err != nil {
			return nil, err
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		if err := d.Set(key, value); err != nil {
			return nil, syntaxErrorf(keyTok.line, keyTok.col, "%s", err.Error())
		}

		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokRBrace {
			break
		}

		keyTok = p.tok
		if key, err = p.parseValue(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(tokRBrace, "',' or '}'"); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) parseSet(firstTok token, first any) (any, error) {
	s := NewSet()
	if err := s.Add(first); err != nil {
		return nil, syntaxErrorf(firstTok.line, firstTok.col, "%s", err.Error())
	}

	for p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokRBrace {
			break
		}

		elemTok := p.tok
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := s.Add(v); err != nil {
			return nil, syntaxErrorf(elemTok.line, elemTok.col, "%s", err.Error())
		}
	}

	if err := p.expect(tokRBrace, "',' or '}'"); err != nil {
		return nil, err
	}
	return s, nil
}
