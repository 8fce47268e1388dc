package command

import (
	"fmt"
	"strings"
)

// InsertCommand renders "INSERT [OR REPLACE] INTO <table> (...) VALUES (...)".
type InsertCommand struct {
	table     string
	columns   []string
	values    []Value
	orReplace bool
}

// NewInsert creates an insert. columns and values are matched positionally.
func NewInsert(table string, columns []string, values []Value) *InsertCommand {
	return &InsertCommand{table: table, columns: columns, values: values}
}

// OrReplace turns the statement into INSERT OR REPLACE.
func (c *InsertCommand) OrReplace() *InsertCommand {
	c.orReplace = true
	return c
}

// ToSQL renders the statement.
func (c *InsertCommand) ToSQL() string {
	lits := make([]string, len(c.values))
	for i, v := range c.values {
		lits[i] = v.Literal()
	}
	verb := "INSERT"
	if c.orReplace {
		verb = "INSERT OR REPLACE"
	}
	return fmt.Sprintf("%s INTO %s (%s) VALUES (%s)",
		verb, c.table, strings.Join(c.columns, ", "), strings.Join(lits, ", "))
}
