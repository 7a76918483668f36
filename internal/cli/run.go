package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/bow/internal/gotest"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [go test arguments...]",
		Short: "Run go test -json and animate its results",
		Long: `Run go test -json with the given arguments and animate the results.

Arguments after -- are passed to go test unchanged. Anything go test
writes to stderr is held back until the summary has been printed.

Examples:
  bow run ./...
  bow run -- -run TestParser -count=1 ./internal/...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args)
		},
	}
}

func runTests(cmd *cobra.Command, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	goTest := gotest.Command(ctx, args...)
	stdout, err := goTest.StdoutPipe()
	if err != nil {
		return fmt.Errorf("go test stdout: %w", err)
	}
	var stderr bytes.Buffer
	goTest.Stderr = &stderr

	if err := goTest.Start(); err != nil {
		return fmt.Errorf("start go test: %w", err)
	}

	s, reportErr := report(ctx, stdout, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
	if reportErr != nil {
		// Nobody drains the pipe any more; stop go test before waiting on it.
		_ = goTest.Process.Kill()
	}
	waitErr := goTest.Wait()
	if stderr.Len() > 0 {
		_, _ = cmd.ErrOrStderr().Write(stderr.Bytes())
	}

	switch {
	case reportErr != nil:
		return reportErr
	case s.Counters.Failed > 0:
		return ErrTestsFailed
	case waitErr != nil:
		return fmt.Errorf("go test: %w", waitErr)
	default:
		return nil
	}
}
