package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Schema() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the check reports",
		Action: func(cliCtx *cli.Context) error {
			data, err := Generate()
			if err != nil {
				return errors.WithStack(err)
			}

			if _, err := cliCtx.App.Writer.Write(append(data, '\n')); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

// Generate returns the indented JSON schema of a list of reports.
func Generate() ([]byte, error) {
	reflector := &jsonschema.Reflector{}

	schema := reflector.Reflect(&checker.Reports{})
	schema.Title = "updatechecker reports"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}
