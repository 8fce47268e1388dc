package sabres

import (
	"database/sql"
	"strings"
	"time"
)

// Row is one result row keyed by projected column name. Joined columns appear
// under their include-key prefix ("director.name").
type Row map[string]any

// scanRow reads the current cursor row into a Row, normalizing []byte column
// values to string.
func scanRow(rows *sql.Rows, columns []string) (Row, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(Row, len(columns))
	for i, col := range columns {
		v := values[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row[col] = v
	}
	return row, nil
}

// Prefixed returns the sub-row of columns under "<key>." with the prefix
// stripped, which is how joined child columns are handed to hydration.
func (r Row) Prefixed(key string) Row {
	prefix := key + "."
	sub := make(Row)
	for col, v := range r {
		if strings.HasPrefix(col, prefix) {
			sub[strings.TrimPrefix(col, prefix)] = v
		}
	}
	return sub
}

// Int64 returns the column as an int64, or 0 when absent or NULL.
func (r Row) Int64(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Float64 returns the column as a float64, or 0 when absent or NULL.
func (r Row) Float64(column string) float64 {
	switch v := r[column].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// String returns the column as a string, or "" when absent or NULL.
func (r Row) String(column string) string {
	if s, ok := r[column].(string); ok {
		return s
	}
	return ""
}

// Bool returns the column as a bool; stored booleans are 0/1.
func (r Row) Bool(column string) bool {
	return r.Int64(column) != 0
}

// Time returns the column as a time.Time; stored times are epoch milliseconds.
func (r Row) Time(column string) time.Time {
	return time.UnixMilli(r.Int64(column))
}

// Null reports whether the column is absent or NULL.
func (r Row) Null(column string) bool {
	return r[column] == nil
}
