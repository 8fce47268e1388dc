// Package command builds SQL statement text for the store.
//
// Every statement the engine executes is rendered here: predicates, selects,
// counts, index and table DDL, inserts and updates. Commands are plain value
// objects; none of them holds a connection.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedValue indicates a value with no SQL literal form.
var ErrUnsupportedValue = errors.New("unsupported value type")

// Referent is anything that stringifies to the id of its backing row,
// typically a stored object used as a foreign-key value.
type Referent interface {
	ObjectID() int64
}

// Value is a typed SQL literal.
type Value interface {
	// Text is the canonical stringified form, without quoting.
	Text() string
	// Literal is the value as it is embedded into statement text.
	Literal() string
}

// IntValue is an integer literal.
type IntValue int64

func (v IntValue) Text() string    { return strconv.FormatInt(int64(v), 10) }
func (v IntValue) Literal() string { return v.Text() }

// FloatValue is a floating-point literal.
type FloatValue float64

func (v FloatValue) Text() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v FloatValue) Literal() string { return v.Text() }

// StringValue is a text literal. Literal quotes and escapes it.
type StringValue string

func (v StringValue) Text() string    { return string(v) }
func (v StringValue) Literal() string { return quote(string(v)) }

// BoolValue is a boolean literal, stored as 1 or 0.
type BoolValue bool

func (v BoolValue) Text() string {
	if v {
		return "1"
	}
	return "0"
}
func (v BoolValue) Literal() string { return v.Text() }

// TimeValue is a timestamp literal, stored as milliseconds since epoch.
type TimeValue time.Time

func (v TimeValue) Text() string    { return strconv.FormatInt(time.Time(v).UnixMilli(), 10) }
func (v TimeValue) Literal() string { return v.Text() }

// NullValue renders SQL NULL.
type NullValue struct{}

func (NullValue) Text() string    { return "NULL" }
func (NullValue) Literal() string { return "NULL" }

// Stringify converts a Go value into its SQL literal Value.
//
// The mapping is the canonical form used by every predicate and insert path:
// numbers become decimal text, strings are taken verbatim, booleans become
// 1/0, times become milliseconds since epoch, and stored objects become
// their row id.
func Stringify(value any) (Value, error) {
	switch v := value.(type) {
	case nil:
		return NullValue{}, nil
	case int:
		return IntValue(v), nil
	case int8:
		return IntValue(v), nil
	case int16:
		return IntValue(v), nil
	case int32:
		return IntValue(v), nil
	case int64:
		return IntValue(v), nil
	case uint:
		return IntValue(v), nil
	case uint8:
		return IntValue(v), nil
	case uint16:
		return IntValue(v), nil
	case uint32:
		return IntValue(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: uint64 %d overflows the stored integer range", ErrUnsupportedValue, v)
		}
		return IntValue(v), nil
	case float32:
		return FloatValue(v), nil
	case float64:
		return FloatValue(v), nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case time.Time:
		return TimeValue(v), nil
	case Referent:
		return IntValue(v.ObjectID()), nil
	default:
		return nil, fmt.Errorf("%w: no rule to stringify %T", ErrUnsupportedValue, value)
	}
}

// quote wraps s in single quotes, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
