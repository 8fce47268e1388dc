package sabres

import (
	"fmt"

	"github.com/sabresdb/sabres/internal/catalog"
	"github.com/sabresdb/sabres/internal/command"
	"github.com/sabresdb/sabres/schema"
)

// Query is a fluent builder over one declared type, consumed by a terminal
// operation: Find, Get or Count (or their background variants). Builder
// errors stick to the query and surface at the terminal call.
type Query struct {
	db       *Database
	typeName string

	keyIndices []string
	includes   []string
	orders     []command.OrderBy
	where      *command.Where
	err        error
}

// Query starts a query over a declared type.
func (d *Database) Query(typeName string) *Query {
	return &Query{db: d, typeName: typeName}
}

// WhereEqualTo constrains key to equal value. The key is also scheduled for
// lazy index creation: the index is created the first time a query filters
// by it, not at registration time.
func (q *Query) WhereEqualTo(key string, value any) *Query {
	if q.err != nil {
		return q
	}
	if err := q.checkKey(key); err != nil {
		q.err = err
		return q
	}
	v, err := command.Stringify(value)
	if err != nil {
		q.err = fmt.Errorf("key %s: %w", key, err)
		return q
	}
	q.keyIndices = append(q.keyIndices, key)
	q.where = q.where.And(command.EqualTo(key, v))
	return q
}

// AddAscendingOrder sorts the results ascending by key. Multiple order calls
// apply in call order; the first is the primary sort key.
func (q *Query) AddAscendingOrder(key string) *Query {
	return q.addOrder(key, command.Ascending)
}

// AddDescendingOrder sorts the results descending by key.
func (q *Query) AddDescendingOrder(key string) *Query {
	return q.addOrder(key, command.Descending)
}

func (q *Query) addOrder(key string, dir command.Direction) *Query {
	if q.err != nil {
		return q
	}
	if err := q.checkKey(key); err != nil {
		q.err = err
		return q
	}
	q.orders = append(q.orders, command.OrderBy{Key: key, Direction: dir})
	return q
}

// Include eagerly loads the object referenced by a pointer key. An unknown
// key is an error; a known key of any other type is skipped with a warning,
// since non-pointer keys are always part of query results.
func (q *Query) Include(key string) *Query {
	if q.err != nil {
		return q
	}
	desc, ok := q.db.registry.Descriptor(q.typeName, key)
	if !ok {
		q.err = fmt.Errorf("%w: %s in type %s", ErrUnrecognizedKey, key, q.typeName)
		return q
	}
	if desc.Type != schema.FieldTypePointer {
		q.db.logger.Warn("keys of this type are always included in query results",
			"key", key, "type", desc.Type.String())
		return q
	}
	q.includes = append(q.includes, key)
	return q
}

func (q *Query) checkKey(key string) error {
	if schema.IsInternalColumn(key) {
		return nil
	}
	if _, ok := q.db.registry.Descriptor(q.typeName, key); !ok {
		return fmt.Errorf("%w: %s in type %s", ErrUnrecognizedKey, key, q.typeName)
	}
	return nil
}

// Find retrieves all objects satisfying the query. A missing backing table
// is a valid "no data yet" state and yields an empty result, not an error.
func (q *Query) Find() ([]Object, error) {
	if q.err != nil {
		return nil, q.err
	}

	d := q.db
	d.mu.Lock()
	defer d.mu.Unlock()

	exists, err := catalog.TableExists(d, q.typeName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Object{}, nil
	}

	if err := q.createIndices(); err != nil {
		return nil, err
	}

	cmd, columns := q.buildSelect()
	rows, err := d.Select(cmd.ToSQL())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.typeName, err)
	}
	defer rows.Close()

	var objects []Object
	for rows.Next() {
		row, err := scanRow(rows, columns)
		if err != nil {
			return nil, err
		}
		obj := d.newInstance(q.typeName)
		if err := obj.Populate(d, row); err != nil {
			return nil, err
		}
		for _, include := range q.includes {
			if err := obj.PopulateChild(d, row, include); err != nil {
				return nil, err
			}
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []Object{}
	}
	return objects, nil
}

// createIndices lazily creates the index for the accumulated filter keys.
// The statement is idempotent, so it runs on every execution.
func (q *Query) createIndices() error {
	if len(q.keyIndices) == 0 {
		return nil
	}
	cmd := command.NewCreateIndex(q.typeName, q.keyIndices).IfNotExists()
	if _, err := q.db.Exec(cmd.ToSQL()); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", q.typeName, err)
	}
	return nil
}

// buildSelect renders the select and returns the projected column names in
// scan order.
func (q *Query) buildSelect() (*command.SelectCommand, []string) {
	registry := q.db.registry

	baseColumns := append(schema.InternalColumns(), registry.Keys(q.typeName)...)
	cmd := command.NewSelect(q.typeName, baseColumns)

	columns := append([]string(nil), baseColumns...)
	for _, include := range q.includes {
		desc, ok := registry.Descriptor(q.typeName, include)
		if !ok || desc.Type != schema.FieldTypePointer {
			continue
		}
		foreignColumns := append(schema.InternalColumns(), registry.Keys(desc.ReferencedType)...)
		cmd.Join(desc.ReferencedType, include, foreignColumns)
		for _, col := range foreignColumns {
			columns = append(columns, include+"."+col)
		}
	}

	for _, o := range q.orders {
		cmd.OrderBy(o)
	}
	cmd.Where(q.where)
	return cmd, columns
}

// Get retrieves the object whose id is already known. Unlike Find, a missing
// backing table is an error here: a targeted lookup cannot succeed.
func (q *Query) Get(id int64) (Object, error) {
	if q.err != nil {
		return nil, q.err
	}

	d := q.db
	d.mu.Lock()
	defer d.mu.Unlock()

	exists, err := catalog.TableExists(d, q.typeName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: table %s does not exist", ErrObjectNotFound, q.typeName)
	}

	obj := d.newInstance(q.typeName)
	obj.SetObjectID(id)
	if err := obj.Fetch(d); err != nil {
		return nil, err
	}
	return obj, nil
}

// Count counts the objects matching the query without retrieving them.
func (q *Query) Count() (int64, error) {
	if q.err != nil {
		return 0, q.err
	}

	d := q.db
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := command.NewCount(q.typeName).Where(q.where)
	n, err := d.Count(cmd.ToSQL())
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", q.typeName, err)
	}
	return n, nil
}
