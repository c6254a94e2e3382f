package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtodo/internal/config"
	"gtodo/internal/exitcode"
	"gtodo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "gtodo help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  gtodo [common flags]                      Open the interactive task view
  gtodo ui [common flags]                   Open the interactive task view
  gtodo list [common flags] [--open]        List tasks, newest first
  gtodo add [common flags] <text...>        Create a task
  gtodo edit [common flags] <n> <text...>   Replace the text of task n and reopen it
  gtodo toggle [common flags] <n>           Flip task n between open and completed
  gtodo done [common flags] <n>             Alias for toggle
  gtodo rm [common flags] <n>               Delete task n
  gtodo login [common flags]
  gtodo logout [common flags]
  gtodo help
  gtodo version

Task numbers are the ones printed by list (1 is the newest task).

Common flags:
  --config <dir>     Override config directory
  --backend <name>   Task backend: googletasks, rest, memory
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

Interactive keys:
  tab         switch between input and list
  enter       submit the input, or edit the selected task
  esc         cancel an edit
  space, x    toggle the selected task
  e           edit the selected task
  d           delete the selected task
  q, ctrl+c   quit
`
