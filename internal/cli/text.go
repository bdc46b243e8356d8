package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"xdao.co/rcli/input"
	"xdao.co/rcli/keys"
	"xdao.co/rcli/signrpc"
	"xdao.co/rcli/textsign"
)

const remoteTimeout = 10 * time.Second

func newTextCommand(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Sign and verify text with blake3 or ed25519 keys.",
	}
	cmd.AddCommand(
		newTextSignCommand(ro),
		newTextVerifyCommand(ro),
		newTextGenerateCommand(ro),
		newTextServeCommand(ro),
	)
	return cmd
}

type textOptions struct {
	input  string
	key    string
	remote string
	format textsign.Format
}

// defaultFormat is the RCLI_TEXT_FORMAT setting. An invalid value is left
// as the zero Format so the first textsign call reports it.
func defaultFormat(ro *rootOptions) textsign.Format {
	format, _ := textsign.ParseFormat(ro.settings.TextFormat())
	return format
}

func newTextOptions(ro *rootOptions) *textOptions {
	return &textOptions{input: input.Stdin, format: defaultFormat(ro)}
}

func (o *textOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.input, "input", "i", input.Stdin, "Input file, or - for stdin.")
	cmd.Flags().StringVarP(&o.key, "key", "k", "", "Key file.")
	cmd.Flags().StringVar(&o.remote, "remote", "", "Use the rcli-signd at this address instead of a local key.")
	cmd.Flags().Var(&o.format, "format", "Signature scheme: blake3 or ed25519.")
}

func (o *textOptions) check() error {
	if err := checkInput(o.input); err != nil {
		return err
	}
	if o.remote == "" && o.key == "" {
		return usageErrorf("one of --key or --remote is required")
	}
	if o.key != "" {
		if err := checkInput(o.key); err != nil {
			return err
		}
	}
	return nil
}

// message returns the untrimmed input bytes.
func (o *textOptions) message(cmd *cobra.Command) ([]byte, error) {
	return readInput(cmd, o.input, false)
}

func (o *textOptions) dial() (*signrpc.Client, error) {
	client, err := signrpc.Dial(o.remote, signrpc.DialOptions{Timeout: remoteTimeout})
	if err != nil {
		return nil, err
	}
	client.Timeout = remoteTimeout
	return client, nil
}

func newTextSignCommand(ro *rootOptions) *cobra.Command {
	o := newTextOptions(ro)
	cmd := &cobra.Command{
		Use:   "sign --key FILE [--input FILE] [--format blake3|ed25519]",
		Short: "Sign input and print the signature.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.check(); err != nil {
				return err
			}
			sig, err := o.sign(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}
	o.addFlags(cmd)
	return cmd
}

func (o *textOptions) sign(cmd *cobra.Command) (string, error) {
	if o.remote != "" {
		msg, err := o.message(cmd)
		if err != nil {
			return "", err
		}
		client, err := o.dial()
		if err != nil {
			return "", err
		}
		defer client.Close()
		return client.Sign(cmd.Context(), msg)
	}
	if o.input == input.Stdin {
		return textsign.SignReader(cmd.InOrStdin(), o.key, o.format)
	}
	return textsign.Sign(o.input, o.key, o.format)
}

func newTextVerifyCommand(ro *rootOptions) *cobra.Command {
	o := newTextOptions(ro)
	var signature string
	cmd := &cobra.Command{
		Use:   "verify --key FILE --sig SIGNATURE [--input FILE] [--format blake3|ed25519]",
		Short: "Verify a signature over input.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.check(); err != nil {
				return err
			}
			ok, err := o.verify(cmd, signature)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "⚠ Signature not verified")
				return ErrNotVerified
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Signature verified")
			return nil
		},
	}
	o.addFlags(cmd)
	cmd.Flags().StringVarP(&signature, "sig", "s", "", "Signature text.")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func (o *textOptions) verify(cmd *cobra.Command, signature string) (bool, error) {
	if o.remote != "" {
		msg, err := o.message(cmd)
		if err != nil {
			return false, err
		}
		client, err := o.dial()
		if err != nil {
			return false, err
		}
		defer client.Close()
		return client.Verify(cmd.Context(), msg, signature)
	}
	if o.input == input.Stdin {
		return textsign.VerifyReader(cmd.InOrStdin(), o.key, signature, o.format)
	}
	return textsign.Verify(o.input, o.key, signature, o.format)
}

func newTextGenerateCommand(ro *rootOptions) *cobra.Command {
	var (
		outDir    string
		overwrite bool
	)
	format := defaultFormat(ro)
	cmd := &cobra.Command{
		Use:     "generate --output DIR [--format blake3|ed25519]",
		Aliases: []string{"key-generate"},
		Short:   "Generate signing keys into a directory.",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fi, err := os.Stat(outDir); err != nil || !fi.IsDir() {
				return usageErrorf("output directory %s does not exist", outDir)
			}
			bundle, err := textsign.GenerateKeys(format)
			if err != nil {
				return err
			}
			written, err := keys.WriteBundle(outDir, format, bundle, overwrite)
			if err != nil {
				return err
			}
			for _, w := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", w.Path, w.Fingerprint)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Directory to write key files into.")
	cmd.Flags().Var(&format, "format", "Signature scheme: blake3 or ed25519.")
	cmd.Flags().BoolVar(&overwrite, "force", false, "Overwrite existing key files.")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newTextServeCommand(ro *rootOptions) *cobra.Command {
	var signKey, verifyKey, listen string
	format := defaultFormat(ro)
	cmd := &cobra.Command{
		Use:   "serve [--listen ADDR] [--sign-key FILE] [--verify-key FILE]",
		Short: "Serve signing and verification over gRPC.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if signKey == "" && verifyKey == "" {
				return usageErrorf("at least one of --sign-key or --verify-key is required")
			}
			if format.KeyFileNames() == nil {
				return usageErrorf("unknown text sign format %s", format)
			}
			logger, err := ro.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			lis, err := net.Listen("tcp", listen)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			srv := &signrpc.Server{SignKeyPath: signKey, VerifyKeyPath: verifyKey, Format: format}
			return signrpc.Serve(ctx, lis, srv, logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ro.settings.SigndListen(), "Listen address.")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "Key used by Sign (blake3.txt or ed25519.sk).")
	cmd.Flags().StringVar(&verifyKey, "verify-key", "", "Key used by Verify (blake3.txt or ed25519.pk).")
	cmd.Flags().Var(&format, "format", "Signature scheme: blake3 or ed25519.")
	return cmd
}

