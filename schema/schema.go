// Package schema holds the per-type descriptor registry.
//
// A descriptor maps an object field key to its column type and, for pointer
// fields, the referenced type. The registry is the source of truth for valid
// keys, projection column lists and join metadata. Descriptors are registered
// once per type and are immutable afterwards.
package schema

import (
	"fmt"
	"sort"
	"sync"
)

// FieldType is the column type of a declared field.
type FieldType int

const (
	FieldTypeNumber FieldType = iota
	FieldTypeString
	FieldTypeBoolean
	FieldTypeDate
	FieldTypePointer
)

// Reserved table names. The schema table stores registered descriptors so a
// later process sees the declared types; list tables are auxiliary storage
// for collection fields. Both are hidden from catalog listings.
const (
	TableName  = "_sabres_schema"
	ListPrefix = "_sabres_list_"
)

// Columns every object table carries in addition to its declared keys.
const (
	IDColumn        = "_id"
	CreatedAtColumn = "createdAt"
	UpdatedAtColumn = "updatedAt"
)

// InternalColumns returns the implicit columns, in projection order.
func InternalColumns() []string {
	return []string{IDColumn, CreatedAtColumn, UpdatedAtColumn}
}

// IsInternalColumn reports whether name is one of the implicit columns.
func IsInternalColumn(name string) bool {
	return name == IDColumn || name == CreatedAtColumn || name == UpdatedAtColumn
}

// String returns the persisted name of the field type.
func (t FieldType) String() string {
	switch t {
	case FieldTypeNumber:
		return "number"
	case FieldTypeString:
		return "string"
	case FieldTypeBoolean:
		return "boolean"
	case FieldTypeDate:
		return "date"
	case FieldTypePointer:
		return "pointer"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// ParseFieldType parses a persisted field type name.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "number":
		return FieldTypeNumber, nil
	case "string":
		return FieldTypeString, nil
	case "boolean":
		return FieldTypeBoolean, nil
	case "date":
		return FieldTypeDate, nil
	case "pointer":
		return FieldTypePointer, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", s)
	}
}

// SQLType returns the sqlite column type for the field type.
// Dates are epoch milliseconds, booleans 0/1, pointers the referenced row id.
func (t FieldType) SQLType() string {
	switch t {
	case FieldTypeString:
		return "TEXT"
	case FieldTypeBoolean, FieldTypeDate, FieldTypePointer:
		return "INTEGER"
	default:
		return "NUMERIC"
	}
}

// Descriptor is one (key, type, referenced type) schema entry.
type Descriptor struct {
	Key            string
	Type           FieldType
	ReferencedType string // set iff Type is FieldTypePointer
}

// Registry maps type names to their ordered descriptor lists.
// It is shared process-wide and safe for concurrent readers.
type Registry struct {
	mu    sync.RWMutex
	types map[string][]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string][]Descriptor)}
}

// Register declares a type's descriptors. Re-registering an identical set is
// a no-op; re-registering a different set is an error, since descriptors are
// immutable for the process lifetime.
func (r *Registry) Register(typeName string, descriptors []Descriptor) error {
	if typeName == "" {
		return fmt.Errorf("schema: empty type name")
	}
	if err := validate(typeName, descriptors); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.types[typeName]; ok {
		if !equalDescriptors(existing, descriptors) {
			return fmt.Errorf("schema: type %s already registered with different descriptors", typeName)
		}
		return nil
	}

	r.types[typeName] = append([]Descriptor(nil), descriptors...)
	return nil
}

func validate(typeName string, descriptors []Descriptor) error {
	seen := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		if d.Key == "" {
			return fmt.Errorf("schema: type %s has a descriptor with an empty key", typeName)
		}
		if IsInternalColumn(d.Key) {
			return fmt.Errorf("schema: key %s in type %s is reserved", d.Key, typeName)
		}
		if _, dup := seen[d.Key]; dup {
			return fmt.Errorf("schema: duplicate key %s in type %s", d.Key, typeName)
		}
		seen[d.Key] = struct{}{}

		if d.Type == FieldTypePointer && d.ReferencedType == "" {
			return fmt.Errorf("schema: pointer key %s in type %s names no referenced type", d.Key, typeName)
		}
		if d.Type != FieldTypePointer && d.ReferencedType != "" {
			return fmt.Errorf("schema: key %s in type %s is not a pointer but references %s",
				d.Key, typeName, d.ReferencedType)
		}
	}
	return nil
}

func equalDescriptors(a, b []Descriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Registered reports whether typeName has been declared.
func (r *Registry) Registered(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[typeName]
	return ok
}

// Descriptor looks up a single descriptor by (type, key).
func (r *Registry) Descriptor(typeName, key string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.types[typeName] {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Descriptors returns the ordered descriptor list for a type.
func (r *Registry) Descriptors(typeName string) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Descriptor(nil), r.types[typeName]...)
}

// Keys returns the declared column names for a type, in registration order.
func (r *Registry) Keys(typeName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descs := r.types[typeName]
	keys := make([]string, len(descs))
	for i, d := range descs {
		keys[i] = d.Key
	}
	return keys
}

// Types returns all registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
