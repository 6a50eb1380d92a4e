package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wastedyears/internal/db"
	"github.com/balkashynov/wastedyears/internal/models"
	"github.com/balkashynov/wastedyears/internal/parser"
	"github.com/balkashynov/wastedyears/internal/tui"
)

var taskCmd = &cobra.Command{
	Use:     "task [words...]",
	Aliases: []string{"t"},
	Short:   "Start a new task (and mark the previous one done)",
	Long: `Start a new task. The task that was running, if any, ends when this one starts.

Examples:
  wyr task fix login bug          # Start now
  wyr t review PR --at 09:15      # Started at 09:15 today
  wyr task                        # Ask for the description interactively`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := whenFlag(cmd)
		if err != nil {
			return err
		}

		description := strings.TrimSpace(strings.Join(args, " "))
		if description == "" {
			description, err = tui.RunTaskPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), "")
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Task creation cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		return withDB(func(s *db.Session) error {
			if err := s.Begin(); err != nil {
				return err
			}

			closed, err := s.EndLastTask(start)
			if err != nil {
				return err
			}
			if closed != nil {
				printClosed(out, closed)
			}

			task := &models.Task{StartTS: start, Description: description}
			taskID, err := s.AddTask(task)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Started task #%d at %s: %s\n", taskID, start.Format("15:04:05"), task.Description)
			return nil
		})
	},
}

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Mark the current task done without starting a new one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := whenFlag(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		return withDB(func(s *db.Session) error {
			closed, err := s.EndLastTask(end)
			if err != nil {
				return err
			}
			if closed == nil {
				fmt.Fprintln(out, "No task in progress.")
				return nil
			}
			printClosed(out, closed)
			return nil
		})
	},
}

// whenFlag returns the time given by --at, or now
func whenFlag(cmd *cobra.Command) (time.Time, error) {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return now(), nil
	}
	return parser.ParseWhen(at, nowFunc())
}

func printClosed(w io.Writer, task *models.Task) {
	elapsed := time.Duration(task.Elapsed()) * time.Second
	fmt.Fprintf(w, "Finished task #%d after %s: %s\n", task.ID, formatDuration(elapsed), task.Description)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

func init() {
	taskCmd.Flags().String("at", "", "Start time: now, hh:mm, yyyy-mm-dd hh:mm, or X minutes ago")
	doneCmd.Flags().String("at", "", "End time: now, hh:mm, yyyy-mm-dd hh:mm, or X minutes ago")
}
