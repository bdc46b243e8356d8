package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"xdao.co/rcli/httpserve"
)

func newHTTPCommand(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "HTTP utilities.",
	}
	cmd.AddCommand(newHTTPServeCommand(ro))
	return cmd
}

func newHTTPServeCommand(ro *rootOptions) *cobra.Command {
	var cfg httpserve.Config
	cmd := &cobra.Command{
		Use:   "serve [--dir DIR] [--port PORT]",
		Short: "Serve a directory over HTTP.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fi, err := os.Stat(cfg.Directory); err != nil || !fi.IsDir() {
				return usageErrorf("directory %s does not exist", cfg.Directory)
			}
			if cfg.Port < 0 || cfg.Port > 65535 {
				return usageErrorf("invalid port %d", cfg.Port)
			}
			logger, err := ro.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg.Logger = logger
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpserve.New(cfg).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVarP(&cfg.Directory, "dir", "d", ro.settings.HTTPDir(), "Directory to serve.")
	cmd.Flags().IntVarP(&cfg.Port, "port", "p", ro.settings.HTTPPort(), "Port to listen on (127.0.0.1).")
	return cmd
}
