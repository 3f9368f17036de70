package list

import (
	"fmt"
	"text/tabwriter"

	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func List() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available checkers",
		Action: func(cliCtx *cli.Context) error {
			writer := tabwriter.NewWriter(cliCtx.App.Writer, 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "SHORT NAME\tNAME"); err != nil {
				return errors.WithStack(err)
			}

			for _, source := range checker.Sources() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", source.ShortName(), source.Name()); err != nil {
					return errors.WithStack(err)
				}
			}

			if err := writer.Flush(); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
