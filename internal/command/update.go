package command

import (
	"fmt"
	"strings"
)

// UpdateCommand renders "UPDATE <table> SET <col> = <lit>, ... [WHERE ...]".
type UpdateCommand struct {
	table string
	sets  []string
	where *Where
}

// NewUpdate creates an update over table.
func NewUpdate(table string) *UpdateCommand {
	return &UpdateCommand{table: table}
}

// Set appends a column assignment. Assignments render in call order.
func (c *UpdateCommand) Set(column string, value Value) *UpdateCommand {
	c.sets = append(c.sets, fmt.Sprintf("%s = %s", column, value.Literal()))
	return c
}

// Where sets the predicate.
func (c *UpdateCommand) Where(w *Where) *UpdateCommand {
	c.where = w
	return c
}

// ToSQL renders the statement.
func (c *UpdateCommand) ToSQL() string {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(c.table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(c.sets, ", "))
	appendWhere(&sb, c.where)
	return sb.String()
}
