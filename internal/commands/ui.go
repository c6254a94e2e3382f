package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtodo/internal/config"
	"gtodo/internal/exitcode"
	"gtodo/internal/logging"
	"gtodo/internal/service"
	"gtodo/internal/store"
	"gtodo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command, the default when no command is given.
// The view owns the terminal, so logs go to the log file.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Open the interactive task view" }
func (c *UICmd) Usage() string      { return "gtodo [ui]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	logger, closer, err := logging.NewFile(cfg.LogPath(), logging.OptionsFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	defer closer.Close()

	logger.Info("session start", "backend", cfg.Backend)
	st := store.New(svc, store.WithLogger(logger))
	if err := ui.Run(ctx, st, logger); err != nil {
		logger.Error("view failed", "err", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
