package cli

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	"github.com/gabapcia/dictkit/internal/literal"
	"github.com/gabapcia/dictkit/internal/pkg/validator"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrMissingLocation is returned when a command is called without a location.
var ErrMissingLocation = errors.New("missing location argument")

func outputFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: text, json or yaml",
		Value:   value,
	}
}

func validateFormat(format string) error {
	return validator.Var("output", format, "oneof=text json yaml")
}

func locationArg(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("%w: expected exactly one, got %d", ErrMissingLocation, c.Args().Len())
	}
	return c.Args().First(), nil
}

// render writes v to w in the given format.
func render(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		node, err := yamlNode(v)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, literal.Repr(v))
		return err
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// yamlNode converts a literal value into a YAML node, keeping mapping order.
func yamlNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(v)), nil
	case int64:
		return scalar("!!int", strconv.FormatInt(v, 10)), nil
	case *big.Int:
		return scalar("!!int", v.String()), nil
	case float64:
		switch {
		case math.IsInf(v, 1):
			return scalar("!!float", ".inf"), nil
		case math.IsInf(v, -1):
			return scalar("!!float", "-.inf"), nil
		case math.IsNaN(v):
			return scalar("!!float", ".nan"), nil
		}
		return scalar("!!float", literal.Repr(v)), nil
	case string:
		return scalar("!!str", v), nil
	case literal.Bytes:
		return scalar("!!binary", base64.StdEncoding.EncodeToString(v)), nil
	case literal.List:
		return yamlSequence(v)
	case literal.Tuple:
		return yamlSequence(v)
	case *literal.Set:
		return yamlSequence(v.Values())
	case *literal.Dict:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, item := range v.Items() {
			key, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			value, err := yamlNode(item.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, key, value)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("cannot encode %T as yaml", v)
	}
}

// yamlKey writes container keys such as tuples in literal syntax.
func yamlKey(k any) (*yaml.Node, error) {
	if _, ok := k.(literal.Tuple); ok {
		return scalar("!!str", literal.Repr(k)), nil
	}
	return yamlNode(k)
}

func yamlSequence(values []any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		child, err := yamlNode(v)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, child)
	}
	return node, nil
}
