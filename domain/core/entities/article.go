package entities

import (
	"sort"
	"time"

	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// AtomRef is a lightweight reference placing an atom inside an article.
// An atom may appear in any number of articles; the association carries
// no ownership.
type AtomRef struct {
	AtomID    valueobjects.AtomID
	SortOrder int
}

// Article is an ordered composition of atoms: one rendered page. The
// (atom, sortorder) pairs form a total order: sortorder is unique
// within an article, and the atom ID breaks any tie that sneaks in
// through concurrent edits so rendering stays deterministic.
type Article struct {
	id        valueobjects.ArticleID
	clientID  string
	name      string
	atoms     []AtomRef
	version   valueobjects.VersionToken
	createdAt time.Time
}

// NewArticle creates an empty article.
func NewArticle(clientID, name string) (*Article, error) {
	return NewArticleWithID(valueobjects.NewArticleID(), clientID, name)
}

// NewArticleWithID creates an empty article under a caller-assigned
// identity.
func NewArticleWithID(id valueobjects.ArticleID, clientID, name string) (*Article, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("article ID cannot be empty")
	}
	if clientID == "" {
		return nil, pkgerrors.NewValidationError("clientID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("article name cannot be empty")
	}
	now := time.Now()
	return &Article{
		id:        id,
		clientID:  clientID,
		name:      name,
		version:   valueobjects.VersionTokenAt(now),
		createdAt: now,
	}, nil
}

// ReconstituteArticle rebuilds an article from stored state.
func ReconstituteArticle(
	id valueobjects.ArticleID,
	clientID, name string,
	atoms []AtomRef,
	version valueobjects.VersionToken,
	createdAt time.Time,
) *Article {
	return &Article{
		id:        id,
		clientID:  clientID,
		name:      name,
		atoms:     atoms,
		version:   version,
		createdAt: createdAt,
	}
}

// ID returns the article's identifier
func (a *Article) ID() valueobjects.ArticleID { return a.id }

// ClientID returns the owning tenant
func (a *Article) ClientID() string { return a.clientID }

// Name returns the article's unique-per-client name
func (a *Article) Name() string { return a.name }

// Version returns the article's own metadata version token. The
// composed version of a render is this merged with every included
// atom's token.
func (a *Article) Version() valueobjects.VersionToken { return a.version }

// CreatedAt returns the creation time
func (a *Article) CreatedAt() time.Time { return a.createdAt }

// AttachAtom places an atom at the given sort position.
func (a *Article) AttachAtom(atomID valueobjects.AtomID, sortOrder int) error {
	if atomID.IsZero() {
		return pkgerrors.NewValidationError("atom ID cannot be empty")
	}
	if sortOrder < 0 {
		return pkgerrors.NewValidationError("sort order cannot be negative")
	}
	for _, ref := range a.atoms {
		if ref.AtomID.Equals(atomID) {
			return pkgerrors.NewConflictError("atom already attached to article")
		}
		if ref.SortOrder == sortOrder {
			return pkgerrors.NewConflictError("sort order already taken in article")
		}
	}
	a.atoms = append(a.atoms, AtomRef{AtomID: atomID, SortOrder: sortOrder})
	a.version = valueobjects.NewVersionToken()
	return nil
}

// AppendAtom places an atom after the current last position.
func (a *Article) AppendAtom(atomID valueobjects.AtomID) error {
	next := 0
	for _, ref := range a.atoms {
		if ref.SortOrder >= next {
			next = ref.SortOrder + 1
		}
	}
	return a.AttachAtom(atomID, next)
}

// DetachAtom removes an atom from the article.
func (a *Article) DetachAtom(atomID valueobjects.AtomID) error {
	for i, ref := range a.atoms {
		if ref.AtomID.Equals(atomID) {
			a.atoms = append(a.atoms[:i], a.atoms[i+1:]...)
			a.version = valueobjects.NewVersionToken()
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("atom reference")
}

// Rename changes the article's name.
func (a *Article) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidationError("article name cannot be empty")
	}
	a.name = name
	a.version = valueobjects.NewVersionToken()
	return nil
}

// OrderedAtoms returns the atom references in composition order:
// sortorder ascending, atom ID ascending on ties.
func (a *Article) OrderedAtoms() []AtomRef {
	refs := make([]AtomRef, len(a.atoms))
	copy(refs, a.atoms)
	SortAtomRefs(refs)
	return refs
}

// SortAtomRefs orders references in place by the composition rule.
// Exposed so store adapters returning raw reference lists apply the
// identical ordering.
func SortAtomRefs(refs []AtomRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].SortOrder != refs[j].SortOrder {
			return refs[i].SortOrder < refs[j].SortOrder
		}
		return refs[i].AtomID.Less(refs[j].AtomID)
	})
}
