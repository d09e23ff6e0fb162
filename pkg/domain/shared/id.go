package shared

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a unique identifier for domain entities.
//
// Identifiers handed over by external discovery sources (e.g. "PND-1024" or
// "host-web-01") are kept verbatim; entities created inside this service get
// UUID-backed identifiers.
type ID struct {
	value string
}

// NewID creates a new random ID.
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// IDFromString creates an ID from a string.
func IDFromString(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, fmt.Errorf("%w: id must not be empty", ErrValidation)
	}
	return ID{value: s}, nil
}

// MustIDFromString creates an ID from a string, panics on error.
func MustIDFromString(s string) ID {
	id, err := IDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return id.value
}

// IsZero returns true if the ID is empty.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Equals checks if two IDs are equal.
func (id ID) Equals(other ID) bool {
	return id.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid id format")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
