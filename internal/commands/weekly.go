package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wastedyears/internal/db"
	"github.com/balkashynov/wastedyears/internal/tui"
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Report activity by week",
	Long: `Report the words of your task descriptions week by week (Monday to Sunday, UTC),
most time spent first.

Example output:
  2022-07-11
  WORD                      COUNT    ELAPSED
  code                          2       1h30m0s
  review                        1        1h0m0s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withDB(func(s *db.Session) error {
			// all dates with tasks, wound back to Monday: the distinct weeks
			dates, err := s.GetTaskDates()
			if err != nil {
				return err
			}
			weeks := db.WeekStarts(dates)
			if len(weeks) == 0 {
				fmt.Fprintln(out, "No time tracked yet.")
				return nil
			}

			for _, week := range weeks {
				report, err := s.GetWordReport(week, week.AddDate(0, 0, 7))
				if err != nil {
					return err
				}

				fmt.Fprintln(out, tui.HeaderStyle.Render(week.Format("2006-01-02")))
				printWords(cmd, db.SortReport(report))
				fmt.Fprintln(out)
			}
			return nil
		})
	},
}
