package command

import (
	"fmt"
	"strings"
)

// CreateIndexCommand renders "CREATE INDEX [IF NOT EXISTS] <name> ON <table>(<keys>)".
//
// The index name is derived deterministically from the table and key list, so
// repeated execution with IfNotExists for the same (table, keys) is a no-op.
// Callers rely on that: indexes are created lazily on every query that
// filters by a key.
type CreateIndexCommand struct {
	table       string
	keys        []string
	ifNotExists bool
}

// NewCreateIndex creates an index command over table for the given keys.
func NewCreateIndex(table string, keys []string) *CreateIndexCommand {
	return &CreateIndexCommand{table: table, keys: keys}
}

// IfNotExists makes the statement a no-op when the index already exists.
func (c *CreateIndexCommand) IfNotExists() *CreateIndexCommand {
	c.ifNotExists = true
	return c
}

// Name returns the deterministic index name.
func (c *CreateIndexCommand) Name() string {
	return fmt.Sprintf("%s_%s_index", c.table, strings.Join(c.keys, "_"))
}

// ToSQL renders the statement.
func (c *CreateIndexCommand) ToSQL() string {
	var sb strings.Builder
	sb.WriteString("CREATE INDEX ")
	if c.ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(c.Name())
	sb.WriteString(" ON ")
	sb.WriteString(c.table)
	sb.WriteString("(")
	sb.WriteString(strings.Join(c.keys, ", "))
	sb.WriteString(")")
	return sb.String()
}
