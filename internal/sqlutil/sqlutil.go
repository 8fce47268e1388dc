// Package sqlutil holds small helpers shared by code scanning sql.Rows.
package sqlutil

import "database/sql"

// ScanRows scans all rows into a slice using the provided scanner. The rows
// cursor is closed before returning, so callers may issue follow-up queries
// on stores that allow a single active cursor.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
