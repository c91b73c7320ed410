package store

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
)

// ID is the validated identifier the core passes around. The HTTP layer deals
// in hex strings; only ParseID can turn one into an ID, so a malformed id is
// rejected once, at the boundary, instead of crashing a query.
type ID struct {
	oid primitive.ObjectID
}

// ParseID validates a hex identifier and fails with apperr.ErrMalformedID.
func ParseID(hex string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", apperr.ErrMalformedID, hex)
	}
	return ID{oid: oid}, nil
}

// NewID returns a fresh identifier.
func NewID() ID {
	return ID{oid: primitive.NewObjectID()}
}

// FromObjectID wraps an identifier already read from the store.
func FromObjectID(oid primitive.ObjectID) ID {
	return ID{oid: oid}
}

// ObjectID converts back to the store's native reference type.
func (id ID) ObjectID() primitive.ObjectID { return id.oid }

func (id ID) Hex() string { return id.oid.Hex() }

func (id ID) IsZero() bool { return id.oid.IsZero() }

func (id ID) String() string { return id.oid.Hex() }
