package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wastedyears/internal/db"
	"github.com/balkashynov/wastedyears/internal/models"
	"github.com/balkashynov/wastedyears/internal/tui"
)

var listTasksCmd = &cobra.Command{
	Use:     "ls-tasks",
	Aliases: []string{"ls", "list"},
	Short:   "List all tasks in the database",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			tasks []models.Task
			bad   []db.DataError
		)
		err := withDB(func(s *db.Session) error {
			var err error
			tasks, bad, err = s.ListTasks()
			return err
		})
		if err != nil {
			return err
		}

		for _, dataErr := range bad {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.WarningStyle.Render("warning: "+dataErr.Error()))
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found. Use 'wyr task <description>' to start your first task.")
			return nil
		}

		for _, task := range tasks {
			endTime := "   --   "
			if task.EndTS != nil {
				endTime = task.EndTS.Format("15:04:05")
			}
			fmt.Fprintf(out, "%s: %s … %s: %s\n",
				task.StartTS.Format("2006-01-02"),
				task.StartTS.Format("15:04:05"),
				endTime,
				task.Description)
		}
		return nil
	},
}

var listWordsCmd = &cobra.Command{
	Use:     "ls-words",
	Aliases: []string{"lsw"},
	Short:   "List all unique words in the database",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orderFlag, _ := cmd.Flags().GetString("order")
		order, err := db.ParseOrder(orderFlag)
		if err != nil {
			return err
		}

		var words []models.WordInfo
		err = withDB(func(s *db.Session) error {
			var err error
			words, err = s.ListWords(order)
			return err
		})
		if err != nil {
			return err
		}

		printWords(cmd, words)
		return nil
	},
}

func printWords(cmd *cobra.Command, words []models.WordInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tui.MutedStyle.Render(fmt.Sprintf("%-24s %6s %10s", "WORD", "COUNT", "ELAPSED")))
	for _, info := range words {
		fmt.Fprintln(out, info.String())
	}
}

func init() {
	listWordsCmd.Flags().String("order", "ec", "Sort keys: i=id, w=word, c=count (desc), e=elapsed (desc)")
}
