package entities

import (
	"sort"
	"time"

	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// CollectionSlot places an article inside a collection with its
// per-collection presentation data. Articles are shared freely between
// collections; the slot, not the article, owns the url and template.
type CollectionSlot struct {
	ArticleID valueobjects.ArticleID
	SortOrder int
	// URL is the path the article answers to within this collection.
	// Unique per collection when non-empty.
	URL      string
	Template string
	// Meta is an optional JSON document of per-slot metadata ("" if unset).
	Meta string
}

// Collection is an ordered set of articles: one site.
type Collection struct {
	id        string
	clientID  string
	name      string
	slots     []CollectionSlot
	createdAt time.Time
}

// NewCollection creates an empty collection.
func NewCollection(id, clientID, name string) (*Collection, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("collection ID cannot be empty")
	}
	if clientID == "" {
		return nil, pkgerrors.NewValidationError("clientID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("collection name cannot be empty")
	}
	return &Collection{
		id:        id,
		clientID:  clientID,
		name:      name,
		createdAt: time.Now(),
	}, nil
}

// ReconstituteCollection rebuilds a collection from stored state.
func ReconstituteCollection(id, clientID, name string, slots []CollectionSlot, createdAt time.Time) *Collection {
	return &Collection{
		id:        id,
		clientID:  clientID,
		name:      name,
		slots:     slots,
		createdAt: createdAt,
	}
}

// ID returns the collection identifier
func (c *Collection) ID() string { return c.id }

// ClientID returns the owning tenant
func (c *Collection) ClientID() string { return c.clientID }

// Name returns the collection's unique-per-client name
func (c *Collection) Name() string { return c.name }

// CreatedAt returns the creation time
func (c *Collection) CreatedAt() time.Time { return c.createdAt }

// AttachArticle adds an article slot, enforcing url uniqueness.
func (c *Collection) AttachArticle(slot CollectionSlot) error {
	if slot.ArticleID.IsZero() {
		return pkgerrors.NewValidationError("article ID cannot be empty")
	}
	if slot.SortOrder < 0 {
		return pkgerrors.NewValidationError("sort order cannot be negative")
	}
	for _, existing := range c.slots {
		if existing.ArticleID.Equals(slot.ArticleID) {
			return pkgerrors.NewConflictError("article already in collection")
		}
		if slot.URL != "" && existing.URL == slot.URL {
			return pkgerrors.NewConflictError("url already used in collection: " + slot.URL)
		}
	}
	c.slots = append(c.slots, slot)
	return nil
}

// DetachArticle removes an article slot.
func (c *Collection) DetachArticle(articleID valueobjects.ArticleID) error {
	for i, slot := range c.slots {
		if slot.ArticleID.Equals(articleID) {
			c.slots = append(c.slots[:i], c.slots[i+1:]...)
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("collection slot")
}

// SlotByURL returns the slot answering to a url within the collection.
func (c *Collection) SlotByURL(url string) (CollectionSlot, bool) {
	for _, slot := range c.slots {
		if slot.URL != "" && slot.URL == url {
			return slot, true
		}
	}
	return CollectionSlot{}, false
}

// SlotByArticle returns the slot for an article ID.
func (c *Collection) SlotByArticle(articleID valueobjects.ArticleID) (CollectionSlot, bool) {
	for _, slot := range c.slots {
		if slot.ArticleID.Equals(articleID) {
			return slot, true
		}
	}
	return CollectionSlot{}, false
}

// OrderedSlots returns slots by sortorder ascending, article ID
// ascending on ties, the same determinism rule composition uses.
func (c *Collection) OrderedSlots() []CollectionSlot {
	slots := make([]CollectionSlot, len(c.slots))
	copy(slots, c.slots)
	SortCollectionSlots(slots)
	return slots
}

// SortCollectionSlots orders slots in place by the listing rule.
func SortCollectionSlots(slots []CollectionSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].SortOrder != slots[j].SortOrder {
			return slots[i].SortOrder < slots[j].SortOrder
		}
		return slots[i].ArticleID.Less(slots[j].ArticleID)
	})
}
