package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodyo/constrec"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <fields.yaml>",
		Short: "Render a const record built from a YAML field file",
		Long: `Build an assign-once record from a YAML mapping and render it.

Field order follows the document. Invalid field names are sanitized with
a warning; a duplicate field name fails, since a const field cannot be
assigned twice.

Examples:
  constrec show person.yaml
  constrec show person.yaml --format json
  constrec show person.yaml --quiet`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, path string) error {
	rec, err := loadRecord(path)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		data, err := json.Marshal(rec)
		if err != nil {
			return WrapExitError(ExitFailure, "encoding record", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), rec)
	return nil
}

// loadRecord builds a record from a field file through the assign-once
// path, mapping record failures to exit code 1.
func loadRecord(path string) (*constrec.Record, error) {
	fields, err := LoadFields(path)
	if err != nil {
		return nil, err
	}

	rec, err := constrec.FromFields(fields)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "building record", err)
	}
	return rec, nil
}
