// Package cli builds the rcli command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"xdao.co/rcli/input"
	"xdao.co/rcli/internal/logging"
	"xdao.co/rcli/internal/settings"
)

// ErrNotVerified is returned by "text verify" when the signature does not
// match. The command has already reported the outcome on stdout.
var ErrNotVerified = errors.New("signature not verified")

// UsageError marks bad flags or arguments.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err came from flag or argument parsing,
// including the unknown-command and required-flag errors cobra builds itself.
func IsUsageError(err error) bool {
	var ue *UsageError
	if errors.As(err, &ue) {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "required flag")
}

type rootOptions struct {
	settings  *settings.Settings
	logLevel  string
	logFormat string
}

func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(w, o.logLevel, o.logFormat)
	if err != nil {
		return nil, &UsageError{Err: err}
	}
	return logger, nil
}

// New returns the root command writing normal output to out and
// diagnostics to errOut.
func New(out, errOut io.Writer) *cobra.Command {
	ro := &rootOptions{settings: settings.Load()}

	cmd := &cobra.Command{
		Use:           "rcli",
		Short:         "Text signing, encoding and file conversion tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	cmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", ro.settings.LogLevel(), "Log level for serve commands: debug, info, warn, error.")
	cmd.PersistentFlags().StringVar(&ro.logFormat, "log-format", ro.settings.LogFormat(), "Log format for serve commands: text or json.")

	cmd.AddCommand(
		newCSVCommand(),
		newGenPassCommand(),
		newBase64Command(),
		newTextCommand(ro),
		newHTTPCommand(ro),
	)
	return cmd
}

// exactArgs is cobra.ExactArgs with a UsageError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// checkInput validates an --input flag before any work is done.
func checkInput(source string) error {
	if err := input.Exists(source); err != nil {
		return &UsageError{Err: err}
	}
	return nil
}

// readInput reads source, taking "-" from the command's stdin.
func readInput(cmd *cobra.Command, source string, trim bool) ([]byte, error) {
	if source == input.Stdin {
		return input.ReadFrom(cmd.InOrStdin(), trim)
	}
	return input.Read(source, trim)
}
