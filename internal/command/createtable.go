package command

import (
	"fmt"
	"strings"
)

// Column is a column definition for CREATE TABLE.
type Column struct {
	Name       string
	SQLType    string
	PrimaryKey bool // rendered as INTEGER PRIMARY KEY AUTOINCREMENT
	NotNull    bool
}

// CreateTableCommand renders "CREATE TABLE [IF NOT EXISTS] <table> (...)".
type CreateTableCommand struct {
	table       string
	columns     []Column
	ifNotExists bool
}

// NewCreateTable creates a table command.
func NewCreateTable(table string, columns []Column) *CreateTableCommand {
	return &CreateTableCommand{table: table, columns: columns}
}

// IfNotExists makes the statement a no-op when the table already exists.
func (c *CreateTableCommand) IfNotExists() *CreateTableCommand {
	c.ifNotExists = true
	return c
}

// ToSQL renders the statement.
func (c *CreateTableCommand) ToSQL() string {
	defs := make([]string, len(c.columns))
	for i, col := range c.columns {
		var sb strings.Builder
		sb.WriteString(col.Name)
		sb.WriteString(" ")
		sb.WriteString(col.SQLType)
		if col.PrimaryKey {
			sb.WriteString(" PRIMARY KEY AUTOINCREMENT")
		}
		if col.NotNull {
			sb.WriteString(" NOT NULL")
		}
		defs[i] = sb.String()
	}

	exists := ""
	if c.ifNotExists {
		exists = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE TABLE %s%s (%s)", exists, c.table, strings.Join(defs, ", "))
}
