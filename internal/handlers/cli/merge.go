package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabapcia/dictkit/internal/kwargs"
	"github.com/gabapcia/dictkit/internal/literal"
	"github.com/gabapcia/dictkit/internal/pkg/logger"
	"github.com/gabapcia/dictkit/internal/pkg/validator"

	"github.com/urfave/cli/v3"
)

// ErrInvalidAssignment is returned for --set values without a '='.
var ErrInvalidAssignment = errors.New("invalid assignment")

// document is a dictionary file whose mapping provides the defaults of a merge.
type document struct {
	dict     *literal.Dict
	defaults kwargs.Kwargs
}

func newDocument(d *literal.Dict) (document, error) {
	defaults, err := d.StringMap()
	if err != nil {
		return document{}, err
	}

	return document{dict: d, defaults: defaults}, nil
}

func (d document) Defaults() kwargs.Kwargs {
	return d.defaults
}

// applyOverrides rebuilds the document mapping from the merged keywords,
// keeping the key order of the file.
var applyOverrides = kwargs.Wrap(func(doc document, kw kwargs.Kwargs, _ ...any) (*literal.Dict, error) {
	out := literal.NewDict()
	for _, key := range doc.dict.Keys() {
		if err := out.Set(key, kw[key.(string)]); err != nil {
			return nil, err
		}
	}
	return out, nil
})

// parseAssignments turns key=value pairs into keyword arguments. Keys and
// values are trimmed; values are read as literals when possible and kept as
// plain text otherwise.
func parseAssignments(assignments []string) (kwargs.Kwargs, error) {
	kw := make(kwargs.Kwargs, len(assignments))
	for _, assignment := range assignments {
		key, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q, expected key=value", ErrInvalidAssignment, assignment)
		}

		key, raw = strings.TrimSpace(key), strings.TrimSpace(raw)
		if err := validator.Var("key", key, "required,printascii"); err != nil {
			return nil, err
		}

		value, err := literal.ParseString(raw)
		if err != nil {
			value = raw
		}
		kw[key] = value
	}
	return kw, nil
}

// mergeCommand returns a CLI command that overrides entries of the mapping
// found in a dictionary file. Only keys already present in the file may be set.
//
// Usage example:
//
//	dictkit merge ./settings.py --set city=Paris --set "tags=['a', 'b']"
func mergeCommand(r Reader, output string) *cli.Command {
	return &cli.Command{
		Name:        "merge",
		Description: "Override entries of the mapping found in a file and print the result.",
		Usage:       "Merges key=value overrides into a dictionary file. Unknown keys are rejected.",
		ArgsUsage:   "<location>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Override as key=value; the value is parsed as a literal, or taken as text",
			},
			outputFlag(output),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			location, err := locationArg(c)
			if err != nil {
				return err
			}

			format := c.String("output")
			if err := validateFormat(format); err != nil {
				return err
			}

			overrides, err := parseAssignments(c.StringSlice("set"))
			if err != nil {
				return err
			}

			ctx = logger.WithFields(ctx, "location", location)
			d, err := r.ReadDict(ctx, location)
			if err != nil {
				return err
			}

			doc, err := newDocument(d)
			if err != nil {
				return err
			}

			merged, err := applyOverrides(doc, overrides)
			if err != nil {
				return err
			}

			logger.Debug(ctx, "overrides merged", "keys", overrides.Keys())
			return render(c.Root().Writer, format, merged)
		},
	}
}
