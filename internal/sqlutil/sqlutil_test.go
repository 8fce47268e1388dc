package sqlutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestScanRows(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (name TEXT); INSERT INTO t VALUES ('a'), ('b');`); err != nil {
		t.Fatal(err)
	}

	rows, err := db.Query("SELECT name FROM t ORDER BY name")
	if err != nil {
		t.Fatal(err)
	}

	names, err := ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
	if err != nil {
		t.Fatalf("ScanRows failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected result: %v", names)
	}
}

func TestScanRowsEmpty(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (name TEXT)`); err != nil {
		t.Fatal(err)
	}

	rows, err := db.Query("SELECT name FROM t")
	if err != nil {
		t.Fatal(err)
	}

	names, err := ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
	if err != nil {
		t.Fatalf("ScanRows failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no rows, got %v", names)
	}
}
