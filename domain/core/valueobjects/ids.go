package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// AtomID is a value object identifying a single content atom.
// Value objects are immutable and have no identity beyond their value.
type AtomID struct {
	value string
}

// NewAtomID creates a new random AtomID
func NewAtomID() AtomID {
	return AtomID{value: uuid.New().String()}
}

// NewAtomIDFromString creates an AtomID from an existing string
func NewAtomIDFromString(id string) (AtomID, error) {
	if id == "" {
		return AtomID{}, errors.New("atom ID cannot be empty")
	}
	if !isValidUUID(id) {
		return AtomID{}, errors.New("atom ID must be a valid UUID")
	}
	return AtomID{value: id}, nil
}

// String returns the string representation of the AtomID
func (id AtomID) String() string {
	return id.value
}

// Equals checks if two AtomIDs are equal
func (id AtomID) Equals(other AtomID) bool {
	return id.value == other.value
}

// Less orders AtomIDs lexicographically. Composition uses it to break
// ties between atoms sharing a sort order, so the order must be total
// and stable across processes.
func (id AtomID) Less(other AtomID) bool {
	return id.value < other.value
}

// IsZero checks if the AtomID is the zero value
func (id AtomID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id AtomID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *AtomID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("AtomID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// ArticleID is a value object identifying an article (one rendered page).
type ArticleID struct {
	value string
}

// NewArticleID creates a new random ArticleID
func NewArticleID() ArticleID {
	return ArticleID{value: uuid.New().String()}
}

// NewArticleIDFromString creates an ArticleID from an existing string
func NewArticleIDFromString(id string) (ArticleID, error) {
	if id == "" {
		return ArticleID{}, errors.New("article ID cannot be empty")
	}
	if !isValidUUID(id) {
		return ArticleID{}, errors.New("article ID must be a valid UUID")
	}
	return ArticleID{value: id}, nil
}

// String returns the string representation of the ArticleID
func (id ArticleID) String() string {
	return id.value
}

// Equals checks if two ArticleIDs are equal
func (id ArticleID) Equals(other ArticleID) bool {
	return id.value == other.value
}

// Less orders ArticleIDs lexicographically, used as the sort-order
// tie-break when listing collections and menus.
func (id ArticleID) Less(other ArticleID) bool {
	return id.value < other.value
}

// IsZero checks if the ArticleID is the zero value
func (id ArticleID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ArticleID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ArticleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ArticleID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
