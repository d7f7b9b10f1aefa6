package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baiyu/pjexam/internal/store"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored data (statistics, exam records, progress, settings)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			fmt.Println("This deletes all statistics, exam records, saved progress, and settings.")
			fmt.Println("Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Wipe(); err != nil {
			return fmt.Errorf("wipe store: %w", err)
		}
		fmt.Println("All data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion")
}
