package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sabresdb/sabres/internal/ui"
	"github.com/sabresdb/sabres/schema"
)

var typesPathFlag string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show registered type schemas",
	Long: `Shows the types registered in the database and their field
descriptors.

Examples:
  sabres schema
  sabres schema apply --types types.yaml`,
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

		for _, typeName := range types {
			fmt.Println(ui.Render(ui.AccentBold, typeName))
			for _, desc := range db.Descriptors(typeName) {
				line := fmt.Sprintf("  %-16s %s", desc.Key, desc.Type)
				if desc.Type == schema.FieldTypePointer {
					line += " -> " + desc.ReferencedType
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Register types from a YAML declaration file",
	Long: `Reads a YAML type declaration file and registers each declared type
in the database. Re-applying an unchanged file is a no-op; changing an
already-registered type is an error.

Examples:
  sabres schema apply --types types.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typesPath := typesPathFlag
		if typesPath == "" {
			typesPath = cfg.Types
		}
		if typesPath == "" {
			return fmt.Errorf("no types file specified; use --types or set types in config")
		}

		file, err := schema.LoadFile(typesPath)
		if err != nil {
			return err
		}
		if len(file.Types) == 0 {
			fmt.Println(ui.Warning("types file declares no types"))
			return nil
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		for _, decl := range file.Types {
			descriptors, err := decl.Descriptors()
			if err != nil {
				return err
			}
			if err := db.RegisterType(decl.Name, descriptors); err != nil {
				return fmt.Errorf("failed to register type %s: %w", decl.Name, err)
			}
		}

		fmt.Println(ui.Successf("registered %d %s", len(file.Types),
			pluralize("type", len(file.Types))))
		return nil
	},
}

func pluralize(singular string, count int) string {
	if count == 1 {
		return singular
	}
	return singular + "s"
}

func init() {
	schemaApplyCmd.Flags().StringVar(&typesPathFlag, "types", "", "Path to YAML type declaration file")
	schemaCmd.AddCommand(schemaApplyCmd)
	rootCmd.AddCommand(schemaCmd)
}
