package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"xdao.co/rcli/internal/logging"
	"xdao.co/rcli/internal/settings"
	"xdao.co/rcli/signrpc"
	"xdao.co/rcli/textsign"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, errOut io.Writer) int {
	s := settings.Load()

	fs := flag.NewFlagSet("rcli-signd", flag.ContinueOnError)
	fs.SetOutput(errOut)
	listen := fs.String("listen", s.SigndListen(), "listen address")
	formatName := fs.String("format", s.TextFormat(), "signature scheme: blake3 or ed25519")
	signKey := fs.String("sign-key", "", "key used by Sign (blake3.txt or ed25519.sk)")
	verifyKey := fs.String("verify-key", "", "key used by Verify (blake3.txt or ed25519.pk)")
	logLevel := fs.String("log-level", s.LogLevel(), "debug, info, warn or error")
	logFormat := fs.String("log-format", s.LogFormat(), "text or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	format, err := textsign.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if *signKey == "" && *verifyKey == "" {
		fmt.Fprintln(errOut, "at least one of -sign-key or -verify-key is required")
		return 2
	}
	logger, err := logging.New(errOut, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer lis.Close()

	srv := &signrpc.Server{SignKeyPath: *signKey, VerifyKeyPath: *verifyKey, Format: format}
	if err := signrpc.Serve(ctx, lis, srv, logger); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}
