package sabres

import (
	"errors"

	"github.com/sabresdb/sabres/internal/command"
)

var (
	// ErrObjectNotFound indicates a targeted lookup on a missing table or a
	// missing row. A filtered Find over a missing table is not an error; it
	// returns an empty result.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnrecognizedKey indicates a where, order or include key with no
	// descriptor registered for the type.
	ErrUnrecognizedKey = errors.New("unrecognized key")

	// ErrUnsupportedValue indicates a value the stringifier has no SQL
	// literal rule for. This is a caller programming error.
	ErrUnsupportedValue = command.ErrUnsupportedValue
)
