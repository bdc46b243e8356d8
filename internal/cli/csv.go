package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/rcli/csvconv"
)

func newCSVCommand() *cobra.Command {
	opts := csvconv.DefaultOptions()
	var in, out, delimiter string

	cmd := &cobra.Command{
		Use:   "csv --input FILE [--output FILE] [--format json|yaml|toml]",
		Short: "Convert CSV to JSON, YAML or TOML.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkInput(in); err != nil {
				return err
			}
			d := []rune(delimiter)
			if len(d) != 1 {
				return usageErrorf("delimiter must be a single character, got %q", delimiter)
			}
			opts.Delimiter = d[0]
			if out == "" {
				out = opts.Format.DefaultOutput()
			}
			if err := csvconv.ConvertFile(in, out, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "input", "i", "", "Input CSV file.")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default output.<format>).")
	cmd.Flags().Var(&opts.Format, "format", "Output format: json, yaml or toml.")
	cmd.Flags().BoolVar(&opts.Header, "header", true, "Treat the first record as column names.")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "Field delimiter.")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
