// Package cli implements the fluidcard command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"honnef.co/go/fluidcard"
	"honnef.co/go/fluidcard/internal/config"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUser marks errors caused by bad input rather than the environment.
var errUser = errors.New("usage error")

func userError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUser}, args...)...)
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configPath string
	logLevel   string
	jsonMode   bool
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	flags rootFlags
	cfg   config.File
	log   *slog.Logger
}

// NewRootCmd creates the top-level "fluidcard" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fluidcard",
		Short: "Render, preview and serve the fluid card animation",
		Long: "fluidcard drives the two-panel card through its expand and collapse\n" +
			"transitions and turns the frames into images, previews and recordings.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/fluidcard/config.yml)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newPlayCmd())
	root.AddCommand(a.newPreviewCmd())
	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newRecordCmd())
	root.AddCommand(a.newRecordingsCmd())

	return root
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	lvl, err := cfg.Log.SlogLevel()
	if err != nil {
		return userError("%v", err)
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	fluidcard.SetLogger(a.log)
	a.log.Debug("configuration loaded", "path", cfg.Path)
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	code := exitCode(err)
	if code == exitSuccess {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	stop()
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUser), errors.Is(err, fluidcard.ErrInvalidConfiguration):
		return exitUserError
	case errors.Is(err, context.Canceled):
		return exitSuccess
	default:
		return exitSysError
	}
}

// parseDirection parses a --direction flag.
func parseDirection(s string) (fluidcard.Direction, error) {
	d, err := fluidcard.ParseDirection(s)
	if err != nil {
		return 0, userError("%v", err)
	}
	return d, nil
}
