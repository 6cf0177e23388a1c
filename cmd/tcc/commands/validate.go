package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tcc/pkg/report"
)

var errNoReport = errors.New("a report path or \"-\" is required")

// stdinPath reads the report from standard input.
const stdinPath = "-"

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [report.json]",
		Short: "Check a JSON report against the report schema",
		Long: `Check a JSON report, as written by "tcc analyze -f json", against the
embedded JSON schema. Use "-" to read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				_, err := cmd.OutOrStdout().Write(report.Schema())
				if err != nil {
					return fmt.Errorf("write schema: %w", err)
				}

				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("validate: %w", errNoReport)
			}

			data, err := readReport(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			err = report.ValidateJSON(data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			if err != nil {
				return fmt.Errorf("write result: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "Print the embedded JSON schema and exit")

	return cmd
}

func readReport(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	return data, nil
}
