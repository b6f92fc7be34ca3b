package entities

import (
	"sort"
	"time"

	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// DefaultMenuName is the menu every collection starts with.
const DefaultMenuName = "main"

// MenuEntry references an article from a menu. DisplayName overrides the
// article's own name for navigation purposes ("" means use the article name).
type MenuEntry struct {
	ArticleID   valueobjects.ArticleID
	SortOrder   int
	DisplayName string
}

// Menu is a named, ordered subset of a collection's articles.
type Menu struct {
	id           string
	collectionID string
	name         string
	entries      []MenuEntry
	createdAt    time.Time
}

// NewMenu creates an empty menu inside a collection.
func NewMenu(id, collectionID, name string) (*Menu, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("menu ID cannot be empty")
	}
	if collectionID == "" {
		return nil, pkgerrors.NewValidationError("collection ID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("menu name cannot be empty")
	}
	return &Menu{
		id:           id,
		collectionID: collectionID,
		name:         name,
		createdAt:    time.Now(),
	}, nil
}

// ReconstituteMenu rebuilds a menu from stored state.
func ReconstituteMenu(id, collectionID, name string, entries []MenuEntry, createdAt time.Time) *Menu {
	return &Menu{
		id:           id,
		collectionID: collectionID,
		name:         name,
		entries:      entries,
		createdAt:    createdAt,
	}
}

// ID returns the menu identifier
func (m *Menu) ID() string { return m.id }

// CollectionID returns the owning collection
func (m *Menu) CollectionID() string { return m.collectionID }

// Name returns the menu's unique-per-collection name
func (m *Menu) Name() string { return m.name }

// CreatedAt returns the creation time
func (m *Menu) CreatedAt() time.Time { return m.createdAt }

// AddEntry appends an article reference to the menu.
func (m *Menu) AddEntry(entry MenuEntry) error {
	if entry.ArticleID.IsZero() {
		return pkgerrors.NewValidationError("article ID cannot be empty")
	}
	if entry.SortOrder < 0 {
		return pkgerrors.NewValidationError("sort order cannot be negative")
	}
	for _, existing := range m.entries {
		if existing.ArticleID.Equals(entry.ArticleID) {
			return pkgerrors.NewConflictError("article already in menu")
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

// RemoveEntry drops an article from the menu.
func (m *Menu) RemoveEntry(articleID valueobjects.ArticleID) error {
	for i, entry := range m.entries {
		if entry.ArticleID.Equals(articleID) {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("menu entry")
}

// OrderedEntries returns entries by sortorder ascending, article ID
// ascending on ties.
func (m *Menu) OrderedEntries() []MenuEntry {
	entries := make([]MenuEntry, len(m.entries))
	copy(entries, m.entries)
	SortMenuEntries(entries)
	return entries
}

// SortMenuEntries orders entries in place by the listing rule.
func SortMenuEntries(entries []MenuEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SortOrder != entries[j].SortOrder {
			return entries[i].SortOrder < entries[j].SortOrder
		}
		return entries[i].ArticleID.Less(entries[j].ArticleID)
	})
}
