package ports

import (
	"context"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/domain/events"
)

// AtomRepository defines the interface for atom persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type AtomRepository interface {
	// Save persists an atom (create or update)
	Save(ctx context.Context, atom *entities.Atom) error

	// GetByID retrieves an atom by its ID
	GetByID(ctx context.Context, clientID string, id valueobjects.AtomID) (*entities.Atom, error)

	// GetByKey retrieves an atom by its client-scoped key
	GetByKey(ctx context.Context, clientID, key string) (*entities.Atom, error)

	// GetBatch retrieves several atoms at once, keyed by ID.
	// Missing atoms are absent from the result, not an error.
	GetBatch(ctx context.Context, clientID string, ids []valueobjects.AtomID) (map[valueobjects.AtomID]*entities.Atom, error)

	// ListByClient retrieves all atoms for a client
	ListByClient(ctx context.Context, clientID string) ([]*entities.Atom, error)

	// Delete removes an atom
	Delete(ctx context.Context, clientID string, id valueobjects.AtomID) error
}

// AtomTypeRepository defines the interface for atom type persistence
type AtomTypeRepository interface {
	// Save persists an atom type
	Save(ctx context.Context, atomType *entities.AtomType) error

	// GetByID retrieves an atom type by its ID
	GetByID(ctx context.Context, clientID, id string) (*entities.AtomType, error)

	// GetByName retrieves an atom type by its client-scoped name
	GetByName(ctx context.Context, clientID, name string) (*entities.AtomType, error)

	// ListByClient retrieves all atom types for a client
	ListByClient(ctx context.Context, clientID string) ([]*entities.AtomType, error)

	// Delete removes an atom type
	Delete(ctx context.Context, clientID, id string) error
}

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// Save persists an article and its atom references
	Save(ctx context.Context, article *entities.Article) error

	// GetByID retrieves an article by its ID
	GetByID(ctx context.Context, clientID string, id valueobjects.ArticleID) (*entities.Article, error)

	// GetByName retrieves an article by its client-scoped name
	GetByName(ctx context.Context, clientID, name string) (*entities.Article, error)

	// ListByClient retrieves all articles for a client
	ListByClient(ctx context.Context, clientID string) ([]*entities.Article, error)

	// Delete removes an article and its atom references
	Delete(ctx context.Context, clientID string, id valueobjects.ArticleID) error
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// Save persists a collection and its article slots
	Save(ctx context.Context, collection *entities.Collection) error

	// GetByID retrieves a collection by its ID
	GetByID(ctx context.Context, clientID, id string) (*entities.Collection, error)

	// GetByName retrieves a collection by its client-scoped name
	GetByName(ctx context.Context, clientID, name string) (*entities.Collection, error)

	// ListByClient retrieves all collections for a client
	ListByClient(ctx context.Context, clientID string) ([]*entities.Collection, error)

	// Delete removes a collection, its slots and its menus
	Delete(ctx context.Context, clientID, id string) error
}

// MenuRepository defines the interface for menu persistence
type MenuRepository interface {
	// Save persists a menu and its entries
	Save(ctx context.Context, menu *entities.Menu) error

	// GetByName retrieves a menu by collection and menu name
	GetByName(ctx context.Context, collectionID, name string) (*entities.Menu, error)

	// ListByCollection retrieves all menus of a collection
	ListByCollection(ctx context.Context, collectionID string) ([]*entities.Menu, error)

	// Delete removes a menu
	Delete(ctx context.Context, collectionID, id string) error
}

// VariableRepository defines the interface for stored variable persistence.
// Stored variables are the global tier of substitution.
type VariableRepository interface {
	// Set writes one tag/value pair for a client
	Set(ctx context.Context, clientID, tag, value string) error

	// GetAll retrieves every stored variable of a client as a set
	GetAll(ctx context.Context, clientID string) (valueobjects.VariableSet, error)

	// Delete removes one stored variable
	Delete(ctx context.Context, clientID, tag string) error
}

// APIKeyRecord is a resolved API key with the identity it grants.
type APIKeyRecord struct {
	KeyID    string
	ClientID string
	UserID   string
	Active   bool
}

// APIKeyStore defines the interface for API key lookup
type APIKeyStore interface {
	// Resolve maps a raw key to the identity it authenticates.
	// Returns a not-found error for unknown or revoked keys.
	Resolve(ctx context.Context, rawKey string) (*APIKeyRecord, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// RenderCache caches finished stable render passes.
// Compute runs at most once per key across concurrent callers.
type RenderCache interface {
	// GetOrCompute returns the cached value for key, or runs compute,
	// stores its result and returns it. Concurrent callers with the
	// same key share one compute. A caller whose ctx is done stops
	// waiting without cancelling the shared compute. Failed computes
	// are never stored.
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (string, error)) (string, error)

	// Len reports the number of cached entries
	Len() int

	// Purge drops every cached entry
	Purge()
}
