package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun_UsageErrors(t *testing.T) {
	cases := [][]string{
		{"-bogus"},
		{"-format", "rsa", "-sign-key", "k"},
		{"-format", "blake3"},
		{"-sign-key", "k", "-log-format", "xml"},
	}
	for _, args := range cases {
		var errOut bytes.Buffer
		if code := run(context.Background(), args, &errOut); code != 2 {
			t.Fatalf("%v: expected 2, got %d (%s)", args, code, errOut.String())
		}
	}
}

func TestRun_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var errOut bytes.Buffer
	code := run(ctx, []string{"-listen", "127.0.0.1:0", "-sign-key", "unused", "-format", "blake3"}, &errOut)
	if code != 0 {
		t.Fatalf("expected 0, got %d (%s)", code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "textsign listening") {
		t.Fatalf("expected startup log, got %q", errOut.String())
	}
}
