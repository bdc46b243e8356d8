package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/rcli/genpass"
)

func newGenPassCommand() *cobra.Command {
	opts := genpass.DefaultOptions()
	var noUpper, noLower, noNumbers, noSymbols bool

	cmd := &cobra.Command{
		Use:   "genpass [--length N] [--no-uppercase] [--no-lowercase] [--no-numbers] [--no-symbols]",
		Short: "Generate a random password.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Upper = opts.Upper && !noUpper
			opts.Lower = opts.Lower && !noLower
			opts.Number = opts.Number && !noNumbers
			opts.Symbol = opts.Symbol && !noSymbols

			pw, err := genpass.Generate(opts)
			if errors.Is(err, genpass.ErrNoCharset) || errors.Is(err, genpass.ErrTooShort) {
				return &UsageError{Err: err}
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw.Value)
			fmt.Fprintf(cmd.ErrOrStderr(), "Password strength: %d (score 0 to 4, 4 is best)\n", pw.Score)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Length, "length", opts.Length, "Password length.")
	cmd.Flags().BoolVar(&opts.Upper, "uppercase", true, "Include uppercase letters.")
	cmd.Flags().BoolVar(&opts.Lower, "lowercase", true, "Include lowercase letters.")
	cmd.Flags().BoolVar(&opts.Number, "numbers", true, "Include numbers.")
	cmd.Flags().BoolVar(&opts.Symbol, "symbols", true, "Include symbols.")
	cmd.Flags().BoolVar(&noUpper, "no-uppercase", false, "Exclude uppercase letters.")
	cmd.Flags().BoolVar(&noLower, "no-lowercase", false, "Exclude lowercase letters.")
	cmd.Flags().BoolVar(&noNumbers, "no-numbers", false, "Exclude numbers.")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "Exclude symbols.")
	return cmd
}
