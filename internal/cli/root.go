// Package cli wires the lostboard commands: the interactive board by
// default, plus scriptable list, add, done, export and serve commands.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/lostboard/internal/board"
	"github.com/idilsaglam/lostboard/internal/config"
	"github.com/idilsaglam/lostboard/internal/itemstore"
	"github.com/idilsaglam/lostboard/internal/logger"
	"github.com/idilsaglam/lostboard/internal/tui"
	"github.com/idilsaglam/lostboard/internal/ui"
)

// App carries what every command needs once flags are parsed.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Client *itemstore.Client
	Board  *board.Board
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "lostboard",
		Short:         "Lost & found board: browse, post and resolve items",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		Example: strings.TrimSpace(`
  # Start the interactive board
  lostboard

  # Active found items near the park
  lostboard ls --type found --status active --search park

  # Post a lost item
  lostboard add --title "Black wallet" --location "Central Park" --image-url https://i.example/w.png

  # Resolve it
  lostboard done 12
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), app.Board, tui.Options{
				SearchDebounce: app.Config.SearchDebounce,
				Log:            app.Log,
			})
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.String("base-url", "", "Board collection URL (default "+config.DefaultBaseURL+")")
	pf.String("env", "", "Environment: local|dev|prod")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-file", "", "Log file (default ~/.lostboard/lostboard.log)")
	pf.String("theme", "", "Output theme: classic|neon|mono")
	pf.String("color", "", "Color output: auto|always|never")
	pf.Duration("search-debounce", 0, "Quiet period before search text is applied (default 300ms)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return usageError{err: err}
	}
	app.Config = cfg

	opts := logger.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		JSON:   cfg.IsProd(),
		Caller: cfg.IsLocal(),
	}
	if cmd.Name() == "serve" {
		// The server has no UI on the terminal; log there.
		opts.File = ""
		opts.Output = cmd.ErrOrStderr()
	}
	log, err := logger.New(opts)
	if err != nil {
		return usageError{err: err}
	}
	app.Log = log

	ui.SetColorMode(cfg.Color)
	ui.SetTheme(cfg.Theme)

	app.Client = itemstore.New(cfg.BaseURL)
	app.Board = board.New(app.Client, log)
	log.WithFields(logrus.Fields{"command": cmd.CommandPath(), "base_url": app.Client.BaseURL()}).Debug("startup")
	return nil
}

// Execute runs the root command with args and returns the exit status.
// Errors are printed to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		ui.Fail(stderr, err.Error())
		if ExitCode(err) == 2 && strings.Contains(err.Error(), "unknown command") {
			io.WriteString(stderr, "\n"+cmd.UsageString())
		}
	}
	return ExitCode(err)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
