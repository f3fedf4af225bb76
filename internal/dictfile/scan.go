// Package dictfile extracts and parses the brace-delimited literal embedded
// in a text file, such as a mapping surrounded by comments or prose.
package dictfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabapcia/dictkit/internal/literal"
)

// Extract is the text kept by Scan. Lines[i] is the 1-based file line of the
// i-th line of Text.
type Extract struct {
	Text  string
	Lines []int
}

// Scan keeps every line read while inside braces. For each line the depth is
// raised by its '{' count, the line is kept if the depth is at least one, and
// the depth is then lowered by its '}' count. Braces inside string values are
// counted like any other.
func Scan(r io.Reader) (Extract, error) {
	var (
		ext   Extract
		sb    strings.Builder
		depth int
		num   int
	)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Extract{}, fmt.Errorf("%w: %w", ErrRead, err)
		}
		if line == "" && err != nil {
			break
		}

		num++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		depth += strings.Count(line, "{")
		if depth >= 1 {
			sb.WriteString(line)
			sb.WriteByte('\n')
			ext.Lines = append(ext.Lines, num)
		}
		depth -= strings.Count(line, "}")

		if err != nil {
			break
		}
	}

	ext.Text = sb.String()
	return ext, nil
}

// Parse scans r and parses the kept text. Line numbers of a syntax error are
// translated back to lines of r.
func Parse(r io.Reader) (any, error) {
	ext, err := Scan(r)
	if err != nil {
		return nil, err
	}

	v, err := literal.ParseString(ext.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, ext.fileError(err))
	}
	return v, nil
}

// fileError rewrites the line of a *literal.SyntaxError to a file line.
func (e Extract) fileError(err error) error {
	var syntaxErr *literal.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}

	if len(e.Lines) == 0 {
		return &literal.SyntaxError{
			Line:    1,
			Column:  1,
			Message: "no brace-delimited literal found",
		}
	}

	mapped := *syntaxErr
	switch idx := syntaxErr.Line - 1; {
	case idx < len(e.Lines):
		mapped.Line = e.Lines[idx]
	default:
		// end of input sits after the last kept line
		mapped.Line = e.Lines[len(e.Lines)-1] + 1
		mapped.Column = 1
	}
	return &mapped
}
