package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wastedyears/internal/tui"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show help for wyr or one of its commands",
	Long:  `Display an overview of all wyr commands, or the full help of one command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			showCustomHelp(cmd.OutOrStdout())
			return nil
		}

		target, _, err := rootCmd.Find(args)
		if err != nil || target == rootCmd {
			return fmt.Errorf("unknown help topic %q", args[0])
		}
		return target.Help()
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprintln(w, tui.HeaderStyle.Render("wyr - where did the time go"))
	fmt.Fprint(w, `
COMMANDS:

  init                    Create the database
    --drop                Drop all tables before recreating them

  task, t [words...]      Start a new task (and mark the previous one done)
    --at                  Start time: now, hh:mm, yyyy-mm-dd hh:mm, X minutes ago
                          Without words, asks for a description interactively

  done                    Mark the current task done without starting a new one
    --at                  End time, same formats as task --at

  ls-tasks, ls            List all tasks
  ls-words, lsw           List all words with their total count and time
    --order               Sort keys: i=id w=word c=count e=elapsed (default "ec")

  weekly                  Report time spent per word, week by week
  ingest <file>           Read old tasks from a text log

  nuke                    Destroy the database (no takebacks)
  version                 Print version information
  help [command]          Show this help, or the help of one command

GLOBAL FLAGS:

  --config                Config file (default $XDG_CONFIG_HOME/wastedyears/wastedyears.yml)
  -v, --verbose           Verbose logging

`)
}
