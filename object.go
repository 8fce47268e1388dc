package sabres

// Object is the hydration contract between the query engine and stored
// objects. The engine constructs instances through registered factories (or
// as generic Records), then delegates all field filling to the object itself.
type Object interface {
	// ObjectID returns the backing row id, or 0 before the first save.
	ObjectID() int64

	// SetObjectID seeds the row id on an empty-shell instance before Fetch.
	SetObjectID(id int64)

	// TypeName returns the declared type this object belongs to.
	TypeName() string

	// Populate fills declared fields from a result row.
	Populate(d *Database, row Row) error

	// PopulateChild fills the nested object for an included pointer key from
	// the row's joined columns.
	PopulateChild(d *Database, row Row, key string) error

	// Fetch loads the full row for the object's id, failing with
	// ErrObjectNotFound if no row matches.
	Fetch(d *Database) error
}
