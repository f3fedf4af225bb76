package cli

import (
	"context"

	"github.com/gabapcia/dictkit/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// readCommand returns a CLI command that prints the literal embedded in a
// dictionary file.
//
// Usage example:
//
//	dictkit read ./settings.py --output json
func readCommand(r Reader, output string) *cli.Command {
	return &cli.Command{
		Name:        "read",
		Description: "Print the brace-delimited literal found in a file.",
		Usage:       "Reads a dictionary file from a path or URL and prints its literal.",
		ArgsUsage:   "<location>",
		Flags: []cli.Flag{
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

			ctx = logger.WithFields(ctx, "location", location)
			v, err := r.Read(ctx, location)
			if err != nil {
				return err
			}

			logger.Debug(ctx, "literal read")
			return render(c.Root().Writer, format, v)
		},
	}
}
