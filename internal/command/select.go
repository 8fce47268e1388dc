package command

import (
	"fmt"
	"strings"
)

// join is one LEFT JOIN spec added for an included pointer key.
type join struct {
	table    string
	aliasKey string
	columns  []string
}

// SelectCommand renders
// "SELECT <cols> FROM <table> [LEFT JOIN ...]* [WHERE ...] [ORDER BY ...]".
//
// Base-table columns are aliased to their bare names; joined columns are
// aliased with the include key as prefix ("<aliasKey>.<column>") so columns
// never collide when a foreign table shares names with the base table or
// with another join.
type SelectCommand struct {
	table   string
	columns []string
	joins   []join
	where   *Where
	orders  []OrderBy
}

// NewSelect creates a select over table projecting the given columns.
func NewSelect(table string, columns []string) *SelectCommand {
	return &SelectCommand{table: table, columns: columns}
}

// Join adds a LEFT JOIN on foreignTable for the pointer column aliasKey,
// projecting the foreign columns under the alias-key prefix. One join is
// added per included pointer key.
func (s *SelectCommand) Join(foreignTable, aliasKey string, columns []string) *SelectCommand {
	s.joins = append(s.joins, join{table: foreignTable, aliasKey: aliasKey, columns: columns})
	return s
}

// Where sets the predicate.
func (s *SelectCommand) Where(w *Where) *SelectCommand {
	s.where = w
	return s
}

// OrderBy appends an order clause. Clauses apply in call order; the first
// call is the primary sort key.
func (s *SelectCommand) OrderBy(o OrderBy) *SelectCommand {
	s.orders = append(s.orders, o)
	return s
}

// ToSQL renders the statement.
func (s *SelectCommand) ToSQL() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(s.projection(), ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.table)

	for _, j := range s.joins {
		// The join alias is the pointer key itself, which keeps a second
		// join on the same foreign table unambiguous.
		fmt.Fprintf(&sb, " LEFT JOIN %s AS %s ON %s.%s = %s._id",
			j.table, j.aliasKey, s.table, j.aliasKey, j.aliasKey)
	}

	// Joined columns share at least the internal column names with the base
	// table, so a joined select must qualify its where and order keys.
	where := s.where
	orders := s.orders
	if len(s.joins) > 0 {
		where = where.Qualify(s.table)
		orders = make([]OrderBy, len(s.orders))
		for i, o := range s.orders {
			orders[i] = OrderBy{Key: s.table + "." + o.Key, Direction: o.Direction}
		}
	}

	appendWhere(&sb, where)

	if len(orders) > 0 {
		clauses := make([]string, len(orders))
		for i, o := range orders {
			clauses[i] = o.SQL()
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(clauses, ", "))
	}

	return sb.String()
}

func (s *SelectCommand) projection() []string {
	var cols []string
	for _, c := range s.columns {
		cols = append(cols, fmt.Sprintf("%s.%s AS %q", s.table, c, c))
	}
	for _, j := range s.joins {
		for _, c := range j.columns {
			cols = append(cols, fmt.Sprintf("%s.%s AS %q", j.aliasKey, c, j.aliasKey+"."+c))
		}
	}
	return cols
}
