package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "List indices on user tables",
	Long: `Lists the indices the query engine has created on user tables.
Indices on internal bookkeeping tables are hidden.

Examples:
  sabres indices
  sabres --db movies.db indices`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		report, err := db.ListIndices()
		if err != nil {
			return fmt.Errorf("failed to list indices: %w", err)
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indicesCmd)
}
