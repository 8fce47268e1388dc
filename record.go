package sabres

import (
	"fmt"
	"time"

	"github.com/sabresdb/sabres/internal/command"
	"github.com/sabresdb/sabres/schema"
)

// Record is the generic Object implementation: a field map validated against
// the type's registered descriptors. Applications either use Records directly
// or register factories producing their own Object implementations.
type Record struct {
	db       *Database
	typeName string

	id        int64
	createdAt time.Time
	updatedAt time.Time

	values   map[string]any
	children map[string]Object
}

// NewObject creates an empty record of a declared type.
func (d *Database) NewObject(typeName string) *Record {
	return &Record{
		db:       d,
		typeName: typeName,
		values:   make(map[string]any),
		children: make(map[string]Object),
	}
}

// ObjectID returns the backing row id, or 0 before the first save.
func (r *Record) ObjectID() int64 { return r.id }

// SetObjectID seeds the row id on an empty shell before Fetch.
func (r *Record) SetObjectID(id int64) { r.id = id }

// TypeName returns the declared type of the record.
func (r *Record) TypeName() string { return r.typeName }

// CreatedAt returns the creation timestamp assigned on first save.
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the timestamp of the last save.
func (r *Record) UpdatedAt() time.Time { return r.updatedAt }

// Put sets a declared field. The key must have a registered descriptor;
// pointer keys take an Object value.
func (r *Record) Put(key string, value any) error {
	desc, ok := r.db.registry.Descriptor(r.typeName, key)
	if !ok {
		return fmt.Errorf("%w: %s in type %s", ErrUnrecognizedKey, key, r.typeName)
	}

	if desc.Type == schema.FieldTypePointer {
		child, ok := value.(Object)
		if !ok {
			return fmt.Errorf("%w: pointer key %s takes an Object, got %T",
				ErrUnsupportedValue, key, value)
		}
		r.children[key] = child
		return nil
	}

	if _, err := command.Stringify(value); err != nil {
		return fmt.Errorf("key %s: %w", key, err)
	}
	r.values[key] = value
	return nil
}

// Get returns the raw value stored under key, or nil.
func (r *Record) Get(key string) any {
	if child, ok := r.children[key]; ok {
		return child
	}
	return r.values[key]
}

// GetString returns the string field under key, or "".
func (r *Record) GetString(key string) string {
	s, _ := r.values[key].(string)
	return s
}

// GetInt returns the numeric field under key as int64, or 0.
func (r *Record) GetInt(key string) int64 {
	switch v := r.values[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// GetFloat returns the numeric field under key as float64, or 0.
func (r *Record) GetFloat(key string) float64 {
	switch v := r.values[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetBool returns the boolean field under key, or false.
func (r *Record) GetBool(key string) bool {
	b, _ := r.values[key].(bool)
	return b
}

// GetTime returns the date field under key, or the zero time.
func (r *Record) GetTime(key string) time.Time {
	t, _ := r.values[key].(time.Time)
	return t
}

// GetObject returns the pointer field under key, or nil.
func (r *Record) GetObject(key string) Object {
	return r.children[key]
}

// Save writes the record to the store, creating the backing table from the
// registered descriptors on first use. New records are inserted and receive
// their row id; saved records are updated in place. createdAt and updatedAt
// are maintained as epoch milliseconds.
func (r *Record) Save() error {
	d := r.db
	if !d.registry.Registered(r.typeName) {
		return fmt.Errorf("type %s is not registered", r.typeName)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := r.ensureTable(); err != nil {
		return err
	}

	columns, values, err := r.fieldValues()
	if err != nil {
		return err
	}

	now := time.Now()
	if r.id == 0 {
		columns = append([]string{schema.CreatedAtColumn, schema.UpdatedAtColumn}, columns...)
		values = append([]command.Value{command.TimeValue(now), command.TimeValue(now)}, values...)
		cmd := command.NewInsert(r.typeName, columns, values)
		id, err := d.execInsert(cmd.ToSQL())
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", r.typeName, err)
		}
		r.id = id
		r.createdAt = now
	} else {
		cmd := command.NewUpdate(r.typeName).
			Set(schema.UpdatedAtColumn, command.TimeValue(now))
		for i, col := range columns {
			cmd.Set(col, values[i])
		}
		cmd.Where(command.EqualTo(schema.IDColumn, command.IntValue(r.id)))
		if _, err := d.Exec(cmd.ToSQL()); err != nil {
			return fmt.Errorf("failed to save %s: %w", r.typeName, err)
		}
	}
	r.updatedAt = now
	return nil
}

func (r *Record) ensureTable() error {
	columns := []command.Column{
		{Name: schema.IDColumn, SQLType: "INTEGER", PrimaryKey: true},
		{Name: schema.CreatedAtColumn, SQLType: "INTEGER"},
		{Name: schema.UpdatedAtColumn, SQLType: "INTEGER"},
	}
	for _, desc := range r.db.registry.Descriptors(r.typeName) {
		columns = append(columns, command.Column{Name: desc.Key, SQLType: desc.Type.SQLType()})
	}
	cmd := command.NewCreateTable(r.typeName, columns).IfNotExists()
	if _, err := r.db.Exec(cmd.ToSQL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", r.typeName, err)
	}
	return nil
}

// fieldValues stringifies the set fields in descriptor order.
func (r *Record) fieldValues() ([]string, []command.Value, error) {
	var columns []string
	var values []command.Value
	for _, desc := range r.db.registry.Descriptors(r.typeName) {
		if desc.Type == schema.FieldTypePointer {
			child, ok := r.children[desc.Key]
			if !ok {
				continue
			}
			if child.ObjectID() == 0 {
				return nil, nil, fmt.Errorf("pointer key %s in type %s references an unsaved %s",
					desc.Key, r.typeName, child.TypeName())
			}
			columns = append(columns, desc.Key)
			values = append(values, command.IntValue(child.ObjectID()))
			continue
		}

		raw, ok := r.values[desc.Key]
		if !ok {
			continue
		}
		v, err := command.Stringify(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("key %s: %w", desc.Key, err)
		}
		columns = append(columns, desc.Key)
		values = append(values, v)
	}
	return columns, values, nil
}

// Populate fills declared fields from a result row.
func (r *Record) Populate(d *Database, row Row) error {
	r.id = row.Int64(schema.IDColumn)
	r.createdAt = row.Time(schema.CreatedAtColumn)
	r.updatedAt = row.Time(schema.UpdatedAtColumn)

	for _, desc := range d.registry.Descriptors(r.typeName) {
		if row.Null(desc.Key) {
			continue
		}
		switch desc.Type {
		case schema.FieldTypeString:
			r.values[desc.Key] = row.String(desc.Key)
		case schema.FieldTypeBoolean:
			r.values[desc.Key] = row.Bool(desc.Key)
		case schema.FieldTypeDate:
			r.values[desc.Key] = row.Time(desc.Key)
		case schema.FieldTypePointer:
			// An un-included pointer hydrates as an empty shell carrying
			// only the referenced row id.
			child := d.newInstance(desc.ReferencedType)
			child.SetObjectID(row.Int64(desc.Key))
			r.children[desc.Key] = child
		default:
			r.values[desc.Key] = row[desc.Key]
		}
	}
	return nil
}

// PopulateChild fills the nested object for an included pointer key from the
// row's joined columns. A NULL pointer leaves no child to fill.
func (r *Record) PopulateChild(d *Database, row Row, key string) error {
	child, ok := r.children[key]
	if !ok {
		return nil
	}
	sub := row.Prefixed(key)
	if len(sub) == 0 {
		return nil
	}
	return child.Populate(d, sub)
}

// Fetch loads the full row for the record's id.
func (r *Record) Fetch(d *Database) error {
	columns := append(schema.InternalColumns(), d.registry.Keys(r.typeName)...)
	cmd := command.NewSelect(r.typeName, columns).
		Where(command.EqualTo(schema.IDColumn, command.IntValue(r.id)))

	rows, err := d.Select(cmd.ToSQL())
	if err != nil {
		return fmt.Errorf("failed to fetch %s %d: %w", r.typeName, r.id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s %d", ErrObjectNotFound, r.typeName, r.id)
	}

	row, err := scanRow(rows, columns)
	if err != nil {
		return err
	}
	return r.Populate(d, row)
}
