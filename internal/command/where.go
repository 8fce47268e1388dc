package command

import (
	"fmt"
	"strings"
)

// Where is an immutable tree of comparison predicates combined with AND.
// There is deliberately no OR combinator; the query builder only produces
// conjunctions.
type Where struct {
	// Leaf fields. A leaf renders as "<key> <op> <literal>".
	key     string
	op      string
	literal string

	// Branch fields. A branch renders as "(<left>) AND (<right>)".
	left  *Where
	right *Where
}

// EqualTo returns a "<key> = <value>" predicate.
func EqualTo(key string, value Value) *Where {
	return &Where{key: key, op: "=", literal: value.Literal()}
}

// NotEqualTo returns a "<key> <> <value>" predicate.
func NotEqualTo(key string, value Value) *Where {
	return &Where{key: key, op: "<>", literal: value.Literal()}
}

// DoesNotStartWith returns a "<key> NOT LIKE '<prefix>%'" predicate.
func DoesNotStartWith(key, prefix string) *Where {
	return &Where{key: key, op: "NOT LIKE", literal: quote(prefix + "%")}
}

// And combines two predicates into a new conjunction node.
// Neither operand is mutated.
func (w *Where) And(other *Where) *Where {
	if w == nil {
		return other
	}
	if other == nil {
		return w
	}
	return &Where{left: w, right: other}
}

// Qualify returns a copy of the tree with every leaf key prefixed by table.
// Bare keys are ambiguous on joined selects whenever the joined table shares
// a column name with the base table; qualified keys never are.
func (w *Where) Qualify(table string) *Where {
	if w == nil {
		return nil
	}
	if w.left != nil {
		return &Where{left: w.left.Qualify(table), right: w.right.Qualify(table)}
	}
	return &Where{key: table + "." + w.key, op: w.op, literal: w.literal}
}

// SQL renders the predicate tree. Rendering is a pure function of tree shape.
func (w *Where) SQL() string {
	if w == nil {
		return ""
	}
	if w.left != nil {
		return fmt.Sprintf("(%s) AND (%s)", w.left.SQL(), w.right.SQL())
	}
	return fmt.Sprintf("%s %s %s", w.key, w.op, w.literal)
}

// appendWhere appends a WHERE clause to sb if w holds any predicate.
// An empty Where omits the keyword entirely.
func appendWhere(sb *strings.Builder, w *Where) {
	if w == nil {
		return
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(w.SQL())
}
