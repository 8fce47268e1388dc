package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List user tables with row counts",
	Long: `Lists the database's user tables and their row counts. Internal
bookkeeping tables are hidden.

Examples:
  sabres tables
  sabres --db movies.db tables`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		report, err := db.ListTables()
		if err != nil {
			return fmt.Errorf("failed to list tables: %w", err)
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
