package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sabresdb/sabres/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-type object counts",
	Long: `Displays the number of stored objects for each registered type.
Types that have never been saved show a count of zero.

Examples:
  sabres stats`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		types := db.Types()
		if len(types) == 0 {
			fmt.Println(ui.Hint("no types registered"))
			return nil
		}

		fmt.Println(ui.Header("Object Counts"))
		var total int64
		for _, typeName := range types {
			var n int64
			exists, err := db.TableExists(typeName)
			if err != nil {
				return err
			}
			if exists {
				n, err = db.Query(typeName).Count()
				if err != nil {
					return err
				}
			}
			total += n
			fmt.Printf("%s  %s\n",
				ui.Render(ui.Muted, fmt.Sprintf("%-16s", typeName)),
				ui.Render(ui.Accent, fmt.Sprintf("%d", n)))
		}
		fmt.Println(ui.Hint(ui.Count(int(total), "object", "objects")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
