package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/bow/internal/engine"
	"github.com/Dicklesworthstone/bow/internal/gotest"
	"github.com/Dicklesworthstone/bow/internal/reporter"
	"github.com/Dicklesworthstone/bow/internal/summary"
	"github.com/Dicklesworthstone/bow/internal/termcap"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Animate a go test -json stream read from stdin",
		Long: `Read go test -json output from stdin and animate it.

When stdout is not a terminal the animation is skipped and only the
summary is printed.

Examples:
  go test -json ./... | bow report
  bow report < results.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}
}

func runReport(cmd *cobra.Command, opts *rootOptions) error {
	s, err := report(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}
	if s.Counters.Failed > 0 {
		return ErrTestsFailed
	}
	return nil
}

// report animates the test2json stream in to out and returns the final
// summary. Events are produced on a separate goroutine but handled one at
// a time by the reporter, so out has a single writer.
func report(ctx context.Context, in io.Reader, out, errOut io.Writer, opts *rootOptions) (reporter.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.newLogger(errOut)

	cfg, err := opts.loadConfig()
	if err != nil {
		return reporter.Summary{}, err
	}

	env := termcap.Detect(out, cfg.Color, cfg.Width)
	logger.Debug("terminal detected",
		"width", env.Width,
		"tty", env.TTY,
		"color", env.Color,
	)

	var anim reporter.Animator
	if env.TTY {
		anim = engine.New(out, engine.Options{
			Width:    env.Width,
			Color:    env.Color,
			Geometry: cfg.Geometry(),
			Logger:   logger,
		})
	}
	epilogue := &summary.Renderer{Width: env.Width, Profile: env.Profile}
	rep := reporter.New(anim, epilogue, reporter.Options{Out: out, Logger: logger})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan reporter.Event)
	emitErr := make(chan error, 1)
	src := gotest.NewSource(logger)
	go func() {
		emitErr <- src.Emit(ctx, in, events)
	}()

	if err := rep.Run(ctx, events); err != nil {
		return rep.Summary(), err
	}
	cancel()
	if err := <-emitErr; err != nil && !errors.Is(err, context.Canceled) {
		return rep.Summary(), err
	}
	return rep.Summary(), nil
}
