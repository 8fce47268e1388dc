// Package catalog reads the store's internal metadata catalog.
//
// All operations are read-only queries against sqlite_master. Listings hide
// the store's own bookkeeping table, the schema-storage table, and any table
// carrying the internal list-storage prefix.
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sabresdb/sabres/internal/command"
	"github.com/sabresdb/sabres/internal/sqlutil"
	"github.com/sabresdb/sabres/schema"
)

const (
	masterTable  = "sqlite_master"
	nameKey      = "name"
	typeKey      = "type"
	tableNameKey = "tbl_name"

	// sqlite's own bookkeeping table for AUTOINCREMENT counters.
	sequenceTable = "sqlite_sequence"

	kindTable = "table"
	kindIndex = "index"
)

// Querier is the slice of the storage connection the catalog needs.
type Querier interface {
	Count(sqlText string) (int64, error)
	Select(sqlText string) (*sql.Rows, error)
}

// TableInfo is one row of the table listing.
type TableInfo struct {
	Name     string
	RowCount int64
}

// IndexInfo is one row of the index listing.
type IndexInfo struct {
	Table string
	Name  string
}

// TableExists reports whether a catalog row of kind table with that exact
// name exists.
func TableExists(q Querier, name string) (bool, error) {
	cmd := command.NewCount(masterTable).Where(
		command.EqualTo(typeKey, command.StringValue(kindTable)).
			And(command.EqualTo(nameKey, command.StringValue(name))))
	n, err := q.Count(cmd.ToSQL())
	if err != nil {
		return false, fmt.Errorf("catalog: table lookup failed: %w", err)
	}
	return n != 0, nil
}

// Tables enumerates user tables with their row counts. Row order follows
// catalog return order.
func Tables(q Querier) ([]TableInfo, error) {
	cmd := command.NewSelect(masterTable, []string{nameKey}).Where(
		command.EqualTo(typeKey, command.StringValue(kindTable)).
			And(command.NotEqualTo(nameKey, command.StringValue(sequenceTable)).
				And(command.NotEqualTo(nameKey, command.StringValue(schema.TableName)).
					And(command.DoesNotStartWith(nameKey, schema.ListPrefix)))))

	rows, err := q.Select(cmd.ToSQL())
	if err != nil {
		return nil, fmt.Errorf("catalog: table listing failed: %w", err)
	}

	tables, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (TableInfo, error) {
		var info TableInfo
		err := rows.Scan(&info.Name)
		return info, err
	})
	if err != nil {
		return nil, err
	}

	// Counts go through CountCommand one table at a time; ScanRows has
	// already closed the catalog cursor, which the store requires before a
	// new query.
	for i := range tables {
		n, err := q.Count(command.NewCount(tables[i].Name).ToSQL())
		if err != nil {
			return nil, fmt.Errorf("catalog: counting %s failed: %w", tables[i].Name, err)
		}
		tables[i].RowCount = n
	}

	return tables, nil
}

// Indices enumerates user indices, excluding those owned by the
// schema-storage table or by internally-prefixed tables.
func Indices(q Querier) ([]IndexInfo, error) {
	cmd := command.NewSelect(masterTable, []string{nameKey, tableNameKey}).Where(
		command.EqualTo(typeKey, command.StringValue(kindIndex)).
			And(command.NotEqualTo(tableNameKey, command.StringValue(schema.TableName))).
			And(command.DoesNotStartWith(tableNameKey, schema.ListPrefix)))

	rows, err := q.Select(cmd.ToSQL())
	if err != nil {
		return nil, fmt.Errorf("catalog: index listing failed: %w", err)
	}

	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (IndexInfo, error) {
		var info IndexInfo
		err := rows.Scan(&info.Name, &info.Table)
		return info, err
	})
}

// RenderTables renders the table listing as a fixed-width text table with
// the header row {"table", "count"}.
func RenderTables(tables []TableInfo) string {
	w := newReportWriter()
	w.AppendHeader(table.Row{"table", "count"})
	for _, t := range tables {
		w.AppendRow(table.Row{t.Name, t.RowCount})
	}
	return w.Render()
}

// RenderIndices renders the index listing as a fixed-width text table with
// the header row {"table", "index"}.
func RenderIndices(indices []IndexInfo) string {
	w := newReportWriter()
	w.AppendHeader(table.Row{"table", "index"})
	for _, i := range indices {
		w.AppendRow(table.Row{i.Table, i.Name})
	}
	return w.Render()
}

// newReportWriter builds a writer with the literal header words preserved;
// the header row shape is a contract consumed by presentation layers.
func newReportWriter() table.Writer {
	w := table.NewWriter()
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	w.SetStyle(style)
	return w
}
