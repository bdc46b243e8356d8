package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"xdao.co/rcli/internal/cli"
	"xdao.co/rcli/textsign"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	return runWithInput(args, nil, out, errOut)
}

func runWithInput(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	cmd := cli.New(out, errOut)
	cmd.SetArgs(args)
	if in != nil {
		cmd.SetIn(in)
	}
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrNotVerified):
		return 1
	case cli.IsUsageError(err):
		fmt.Fprintf(errOut, "%v\n\nRun 'rcli --help' for usage.\n", err)
		return 2
	default:
		if rule := textsign.RuleID(err); rule != "" {
			fmt.Fprintf(errOut, "error [%s]: %v\n", rule, err)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return 1
	}
}
