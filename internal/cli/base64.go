package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/rcli/b64"
	"xdao.co/rcli/input"
)

func newBase64Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Encode or decode base64.",
	}
	cmd.AddCommand(newBase64EncodeCommand(), newBase64DecodeCommand())
	return cmd
}

type base64Options struct {
	input  string
	format b64.Format
}

func (o *base64Options) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.input, "input", "i", input.Stdin, "Input file, or - for stdin.")
	cmd.Flags().Var(&o.format, "format", "Alphabet: standard or urlsafe.")
}

func newBase64EncodeCommand() *cobra.Command {
	o := &base64Options{input: input.Stdin, format: b64.Standard}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode input as base64.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkInput(o.input); err != nil {
				return err
			}
			b, err := readInput(cmd, o.input, true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b64.EncodeBytes(b, o.format))
			return nil
		},
	}
	o.addFlags(cmd)
	return cmd
}

func newBase64DecodeCommand() *cobra.Command {
	o := &base64Options{input: input.Stdin, format: b64.Standard}
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode base64 input.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkInput(o.input); err != nil {
				return err
			}
			b, err := readInput(cmd, o.input, true)
			if err != nil {
				return err
			}
			decoded, err := b64.DecodeString(string(b), o.format)
			if err != nil {
				return err
			}
			return input.Write(cmd.OutOrStdout(), decoded)
		},
	}
	o.addFlags(cmd)
	return cmd
}
