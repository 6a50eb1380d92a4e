package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wastedyears/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize wastedyears (create the database)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drop, _ := cmd.Flags().GetBool("drop")

		err := withDB(func(s *db.Session) error {
			if drop {
				if err := s.DestroySchema(); err != nil {
					return err
				}
			}
			return s.InitSchema()
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Database initialized: %s\n", cfg.DBURL)
		return nil
	},
}

var nukeCmd = &cobra.Command{
	Use:   "nuke",
	Short: "Destroy the database (no takebacks)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Nuke(cfg.DBURL); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database removed: %s\n", cfg.DBURL)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("drop", false, "Drop all tables before recreating them")
}
