package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Ref is a normalized reference to a document in another collection.
// Older writers stored foreign keys inconsistently, sometimes as an
// ObjectID and sometimes as its hex string, so a Ref keeps the raw stored
// form and exposes every representation a lookup may need to match.
type Ref struct {
	raw   string
	oid   primitive.ObjectID
	typed bool
}

// ParseRef normalizes a string reference. Strings that are valid ObjectID
// hex become typed refs; anything else is kept as an opaque string.
func ParseRef(s string) Ref {
	if oid, err := primitive.ObjectIDFromHex(s); err == nil {
		return Ref{raw: s, oid: oid, typed: true}
	}
	return Ref{raw: s}
}

// RefFromID builds a typed ref from a known ObjectID.
func RefFromID(id primitive.ObjectID) Ref {
	if id.IsZero() {
		return Ref{}
	}
	return Ref{raw: id.Hex(), oid: id, typed: true}
}

// RefFromValue normalizes a reference decoded from a loosely-typed field.
// Returns false when the value holds no usable reference.
func RefFromValue(v interface{}) (Ref, bool) {
	switch val := v.(type) {
	case primitive.ObjectID:
		if val.IsZero() {
			return Ref{}, false
		}
		return RefFromID(val), true
	case string:
		if val == "" {
			return Ref{}, false
		}
		return ParseRef(val), true
	case Ref:
		if val.IsZero() {
			return Ref{}, false
		}
		return val, true
	}
	return Ref{}, false
}

// IsZero reports whether the ref holds no reference at all.
func (r Ref) IsZero() bool {
	return r.raw == ""
}

// Hex returns the canonical string form of the reference.
func (r Ref) Hex() string {
	return r.raw
}

// ObjectID returns the typed form when the reference parses as one.
func (r Ref) ObjectID() (primitive.ObjectID, bool) {
	return r.oid, r.typed
}

// Forms returns every representation the reference may have been persisted
// under, for use in $in queries that must match both storage forms.
func (r Ref) Forms() []interface{} {
	if r.IsZero() {
		return nil
	}
	if r.typed {
		return []interface{}{r.oid, r.raw}
	}
	return []interface{}{r.raw}
}

// MarshalBSONValue writes the reference back in its stored form.
func (r Ref) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.typed {
		return bson.MarshalValue(r.oid)
	}
	return bson.MarshalValue(r.raw)
}

// UnmarshalBSONValue accepts either storage form of a reference, so
// fields like a workspace _id decode whether a legacy writer stored an
// ObjectID, its hex string, or an opaque key.
func (r *Ref) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.ObjectID:
		oid, _, ok := bsoncore.ReadObjectID(data)
		if !ok {
			return fmt.Errorf("malformed ObjectID reference")
		}
		*r = RefFromID(oid)
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("malformed string reference")
		}
		*r = ParseRef(s)
	case bsontype.Null, bsontype.Undefined:
		*r = Ref{}
	default:
		return fmt.Errorf("cannot decode %v into a reference", t)
	}
	return nil
}

// MarshalJSON renders the canonical string form.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.raw)
}
