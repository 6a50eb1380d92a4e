package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/wastedyears/internal/db"
	"github.com/balkashynov/wastedyears/internal/parser"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Read old tasks from a text file into the database",
	Long: `Read old tasks from a text log and add them to the database.

Expected format (times are local):

  2022-07-15
  ----------
  09:00 .. 09:30 standup
  09:30 .. 11:15 fix the build

Either every task in the file is added or none is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		tasks, err := parser.ParseLog(f, args[0], time.Local)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		err = withDB(func(s *db.Session) error {
			if err := s.Begin(); err != nil {
				return err
			}
			for i := range tasks {
				task := &tasks[i]
				if _, err := s.AddTask(task); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s … %s: %s\n",
					task.StartTS.Format("2006-01-02"),
					task.StartTS.Format("15:04:05"),
					task.EndTS.Format("15:04:05"),
					task.Description)
			}
			return nil
		})
		if err != nil {
			return err
		}

		logger.Info("ingested tasks", zap.String("file", args[0]), zap.Int("tasks", len(tasks)))
		fmt.Fprintf(out, "Added %d tasks from %s\n", len(tasks), args[0])
		return nil
	},
}
