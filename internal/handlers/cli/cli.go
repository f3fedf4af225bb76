package cli

import (
	"context"
	"os"

	"github.com/gabapcia/dictkit/internal/literal"

	"github.com/urfave/cli/v3"
)

// Reader reads the literal embedded in a dictionary file.
type Reader interface {
	Read(ctx context.Context, location string) (any, error)
	ReadDict(ctx context.Context, location string) (*literal.Dict, error)
}

// Run initializes and executes the dictkit CLI application.
//
// It registers all available commands, including:
//
//   - `read`: Prints the literal found in a dictionary file.
//   - `merge`: Overrides entries of a dictionary file with key=value pairs.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - r: The Reader used to load dictionary files.
//   - output: The default output format (text, json or yaml).
func Run(ctx context.Context, r Reader, output string) error {
	return newApp(r, output).Run(ctx, os.Args)
}

func newApp(r Reader, output string) *cli.Command {
	return &cli.Command{
		EnableShellCompletion:     true,
		DisableSliceFlagSeparator: true,
		Name:                      "dictkit",
		Description:               "Reads literal mappings embedded in text files and merges overrides into them.",
		Usage:                     "dictkit [command] [flags]",
		Commands: []*cli.Command{
			readCommand(r, output),
			mergeCommand(r, output),
		},
	}
}
