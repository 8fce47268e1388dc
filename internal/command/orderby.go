package command

// Direction is a sort direction for an ORDER BY clause.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// OrderBy is a single (key, direction) order clause.
type OrderBy struct {
	Key       string
	Direction Direction
}

// SQL renders the clause as "<key> ASC" or "<key> DESC".
func (o OrderBy) SQL() string {
	if o.Direction == Descending {
		return o.Key + " DESC"
	}
	return o.Key + " ASC"
}
