package entities

import (
	"time"

	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// Atom is the smallest unit of content: a typed, schema-shaped JSON
// document owned by one client. Atoms are immutable per version token:
// every content edit produces a new token, so a rendered fragment for a
// given token can be shared and cached indefinitely.
type Atom struct {
	id       valueobjects.AtomID
	clientID string
	// key is an optional stable external name, used by remote
	// consumers to address an atom inside an article regardless of
	// its position.
	key       string
	typeID    string
	content   valueobjects.AtomContent
	version   valueobjects.VersionToken
	createdAt time.Time
}

// NewAtom creates an atom with a fresh identity and version token.
func NewAtom(clientID, typeID string, content valueobjects.AtomContent) (*Atom, error) {
	return NewAtomWithID(valueobjects.NewAtomID(), clientID, typeID, content)
}

// NewAtomWithID creates an atom under a caller-assigned identity, so
// the API layer can hand the ID back before the command completes.
func NewAtomWithID(id valueobjects.AtomID, clientID, typeID string, content valueobjects.AtomContent) (*Atom, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("atom ID cannot be empty")
	}
	if clientID == "" {
		return nil, pkgerrors.NewValidationError("clientID cannot be empty")
	}
	if typeID == "" {
		return nil, pkgerrors.NewValidationError("typeID cannot be empty")
	}
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("atom content cannot be empty")
	}
	now := time.Now()
	return &Atom{
		id:        id,
		clientID:  clientID,
		typeID:    typeID,
		content:   content,
		version:   valueobjects.VersionTokenAt(now),
		createdAt: now,
	}, nil
}

// ReconstituteAtom rebuilds an atom from stored state. Used by
// persistence adapters only; it performs no invariant checks beyond
// construction because the stored state already passed them.
func ReconstituteAtom(
	id valueobjects.AtomID,
	clientID, key, typeID string,
	content valueobjects.AtomContent,
	version valueobjects.VersionToken,
	createdAt time.Time,
) *Atom {
	return &Atom{
		id:        id,
		clientID:  clientID,
		key:       key,
		typeID:    typeID,
		content:   content,
		version:   version,
		createdAt: createdAt,
	}
}

// ID returns the atom's identifier
func (a *Atom) ID() valueobjects.AtomID { return a.id }

// ClientID returns the owning tenant
func (a *Atom) ClientID() string { return a.clientID }

// Key returns the optional stable external name ("" if unset)
func (a *Atom) Key() string { return a.key }

// TypeID returns the atom type reference
func (a *Atom) TypeID() string { return a.typeID }

// Content returns the schema-shaped content document
func (a *Atom) Content() valueobjects.AtomContent { return a.content }

// Version returns the current version token
func (a *Atom) Version() valueobjects.VersionToken { return a.version }

// CreatedAt returns the creation time
func (a *Atom) CreatedAt() time.Time { return a.createdAt }

// SetKey sets or clears the stable external name. A key change does not
// affect rendered output, so the version token is left alone.
func (a *Atom) SetKey(key string) {
	a.key = key
}

// UpdateContent replaces the content document and issues a new version
// token, invalidating every cached render that included this atom.
func (a *Atom) UpdateContent(content valueobjects.AtomContent) error {
	if content.IsEmpty() {
		return pkgerrors.NewValidationError("atom content cannot be empty")
	}
	a.content = content
	a.version = valueobjects.NewVersionToken()
	return nil
}

// ChangeType moves the atom to a different type. The rendered output
// depends on the type template, so this bumps the version token too.
func (a *Atom) ChangeType(typeID string) error {
	if typeID == "" {
		return pkgerrors.NewValidationError("typeID cannot be empty")
	}
	a.typeID = typeID
	a.version = valueobjects.NewVersionToken()
	return nil
}
