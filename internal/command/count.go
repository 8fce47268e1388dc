package command

import "strings"

// CountCommand renders "SELECT COUNT(*) FROM <table> [WHERE ...]".
type CountCommand struct {
	table string
	where *Where
}

// NewCount creates a count command over table.
func NewCount(table string) *CountCommand {
	return &CountCommand{table: table}
}

// Where sets the predicate. A nil predicate leaves the statement unfiltered.
func (c *CountCommand) Where(w *Where) *CountCommand {
	c.where = w
	return c
}

// ToSQL renders the statement.
func (c *CountCommand) ToSQL() string {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(c.table)
	appendWhere(&sb, c.where)
	return sb.String()
}
