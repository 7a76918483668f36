// Package cli implements the bow command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/bow/internal/config"
	"github.com/Dicklesworthstone/bow/internal/termcap"
	"github.com/Dicklesworthstone/bow/internal/util"
)

// Version is set at build time.
var Version = "dev"

// ErrTestsFailed is returned when the reported run had failures. The
// epilogue already explains them, so it is not printed again.
var ErrTestsFailed = errors.New("tests failed")

type rootOptions struct {
	configPath string
	color      string
	width      int
	verbose    bool
}

// NewRootCmd builds the bow command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bow",
		Short: "Animated reporter for go test",
		Long: `bow draws a live scoreboard, rainbow trails and a walking dog while
your tests run, then prints a summary of the results.

With no subcommand bow reads a go test -json stream from stdin.

Examples:
  go test -json ./... | bow
  bow run ./...
  bow run -- -run TestParser ./internal/...
  bow --color=never report < results.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/bow/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "", "Color mode: auto, always or never (overrides config)")
	cmd.PersistentFlags().IntVar(&opts.width, "width", 0, "Terminal width in columns (0 = detect)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newReportCmd(opts),
		newRunCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrTestsFailed):
		return 1
	case errors.Is(err, context.Canceled):
		return 130
	default:
		fmt.Fprintf(os.Stderr, "bow: %v\n", err)
		return 2
	}
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(util.ExpandPath(path)); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if o.color != "" {
		if !termcap.ValidColorMode(o.color) {
			return nil, fmt.Errorf("--color must be one of auto, always, never, got %q", o.color)
		}
		cfg.Color = o.color
	}
	if o.width < 0 {
		return nil, fmt.Errorf("--width must be non-negative, got %d", o.width)
	}
	if o.width > 0 {
		cfg.Width = o.width
	}
	return cfg, nil
}

// newLogger returns a logger for stderr. Stdout belongs to the animation.
func (o *rootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bow version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "bow %s\n", Version)
			return err
		},
	}
}
