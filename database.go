// Package sabres is a schema-aware local persistence layer over an embedded
// sqlite store. Applications declare typed objects through descriptor sets,
// store them as rows, and query them through a fluent builder that translates
// every operation into SQL.
//
// A typical session:
//
//	db, err := sabres.Open("app.db")
//	...
//	db.RegisterType("Movie", []schema.Descriptor{
//	    {Key: "title", Type: schema.FieldTypeString},
//	})
//	movies, err := db.Query("Movie").WhereEqualTo("title", "Se7en").Find()
package sabres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	_ "modernc.org/sqlite"

	"github.com/sabresdb/sabres/internal/catalog"
	"github.com/sabresdb/sabres/internal/command"
	"github.com/sabresdb/sabres/schema"
)

// backgroundWorkers is the size of the worker pool running the
// *InBackground variants.
const backgroundWorkers = 4

// Database is the handle to an embedded store.
//
// The store exposes a single logical connection (MaxOpenConns is pinned to
// one) and terminal operations additionally serialize on an operation mutex,
// so concurrent synchronous and background calls never interleave their
// open/execute/close sequences.
type Database struct {
	db       *sql.DB
	mu       sync.Mutex // serializes terminal operations
	registry *schema.Registry
	pool     *ants.Pool
	logger   *slog.Logger

	facMu     sync.RWMutex
	factories map[string]func() Object
}

// Open opens or creates the database at path.
func Open(path string) (*Database, error) {
	return open(path)
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	return open(":memory:")
}

func open(dsn string) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pool, err := ants.NewPool(backgroundWorkers, ants.WithPanicHandler(func(v any) {
		slog.Error("background task panic", "panic", v)
	}))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	d := &Database{
		db:        db,
		registry:  schema.NewRegistry(),
		pool:      pool,
		logger:    slog.Default(),
		factories: make(map[string]func() Object),
	}
	if err := d.initialize(); err != nil {
		pool.Release()
		db.Close()
		return nil, err
	}
	if err := d.loadSchema(); err != nil {
		pool.Release()
		db.Close()
		return nil, err
	}
	return d, nil
}

// initialize sets pragmas and creates the schema-storage table.
func (d *Database) initialize() error {
	stmts := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS ` + schema.TableName + ` (
			type TEXT NOT NULL,
			key TEXT NOT NULL,
			fieldType TEXT NOT NULL,
			referencedType TEXT,
			PRIMARY KEY (type, key)
		);
	`
	if _, err := d.db.Exec(stmts); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}

// loadSchema restores descriptor sets persisted by earlier processes.
func (d *Database) loadSchema() error {
	rows, err := d.db.Query(
		"SELECT type, key, fieldType, referencedType FROM " + schema.TableName + " ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	defer rows.Close()

	byType := make(map[string][]schema.Descriptor)
	var order []string
	for rows.Next() {
		var typeName, key, fieldType string
		var referenced sql.NullString
		if err := rows.Scan(&typeName, &key, &fieldType, &referenced); err != nil {
			return err
		}
		ft, err := schema.ParseFieldType(fieldType)
		if err != nil {
			return fmt.Errorf("failed to load schema for type %s: %w", typeName, err)
		}
		if _, seen := byType[typeName]; !seen {
			order = append(order, typeName)
		}
		byType[typeName] = append(byType[typeName], schema.Descriptor{
			Key:            key,
			Type:           ft,
			ReferencedType: referenced.String,
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, typeName := range order {
		if err := d.registry.Register(typeName, byType[typeName]); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the worker pool and closes the store.
func (d *Database) Close() error {
	d.pool.Release()
	return d.db.Close()
}

// SetLogger replaces the logger used for query warnings.
func (d *Database) SetLogger(logger *slog.Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// RegisterType declares a type's descriptors and persists them to the
// schema-storage table. Re-registering an identical set is a no-op.
func (d *Database) RegisterType(typeName string, descriptors []schema.Descriptor) error {
	if err := d.registry.Register(typeName, descriptors); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, desc := range descriptors {
		var referenced command.Value = command.NullValue{}
		if desc.ReferencedType != "" {
			referenced = command.StringValue(desc.ReferencedType)
		}
		cmd := command.NewInsert(schema.TableName,
			[]string{"type", "key", "fieldType", "referencedType"},
			[]command.Value{
				command.StringValue(typeName),
				command.StringValue(desc.Key),
				command.StringValue(desc.Type.String()),
				referenced,
			}).OrReplace()
		if _, err := d.Exec(cmd.ToSQL()); err != nil {
			return fmt.Errorf("failed to persist schema for type %s: %w", typeName, err)
		}
	}
	return nil
}

// RegisterFactory installs a constructor for a declared type. Without a
// factory, query results hydrate into generic *Record instances.
func (d *Database) RegisterFactory(typeName string, fn func() Object) {
	d.facMu.Lock()
	defer d.facMu.Unlock()
	d.factories[typeName] = fn
}

// newInstance constructs an empty instance of a declared type.
func (d *Database) newInstance(typeName string) Object {
	d.facMu.RLock()
	fn := d.factories[typeName]
	d.facMu.RUnlock()
	if fn != nil {
		return fn()
	}
	return d.NewObject(typeName)
}

// Types returns all declared type names, sorted.
func (d *Database) Types() []string {
	return d.registry.Types()
}

// Descriptors returns the ordered descriptor list for a declared type.
func (d *Database) Descriptors(typeName string) []schema.Descriptor {
	return d.registry.Descriptors(typeName)
}

// Exec executes a statement and returns the number of affected rows.
func (d *Database) Exec(sqlText string) (int64, error) {
	res, err := d.db.Exec(sqlText)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// execInsert executes an insert and returns the assigned row id.
func (d *Database) execInsert(sqlText string) (int64, error) {
	res, err := d.db.Exec(sqlText)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Select executes a query and returns its row cursor. The store allows a
// single active cursor; callers must close it before issuing more statements.
func (d *Database) Select(sqlText string) (*sql.Rows, error) {
	return d.db.Query(sqlText)
}

// Count executes a counting query and returns its scalar result.
func (d *Database) Count(sqlText string) (int64, error) {
	var n int64
	if err := d.db.QueryRow(sqlText).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// TableExists reports whether a table with that exact name exists.
func (d *Database) TableExists(name string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return catalog.TableExists(d, name)
}

// ListTables renders a report of user tables and their row counts, excluding
// the store's bookkeeping tables and the schema-storage table.
func (d *Database) ListTables() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tables, err := catalog.Tables(d)
	if err != nil {
		return "", err
	}
	return catalog.RenderTables(tables), nil
}

// ListIndices renders a report of user indices and their owning tables.
func (d *Database) ListIndices() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	indices, err := catalog.Indices(d)
	if err != nil {
		return "", err
	}
	return catalog.RenderIndices(indices), nil
}
