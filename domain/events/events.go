package events

import (
	"time"

	"atomcms/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Atom Events

// AtomCreated is raised when a new atom is stored
type AtomCreated struct {
	BaseEvent
	AtomID   valueobjects.AtomID `json:"atom_id"`
	ClientID string              `json:"client_id"`
	TypeID   string              `json:"type_id"`
}

// NewAtomCreated creates an AtomCreated event
func NewAtomCreated(atomID valueobjects.AtomID, clientID, typeID string, timestamp time.Time) AtomCreated {
	return AtomCreated{
		BaseEvent: BaseEvent{
			AggregateID: atomID.String(),
			EventType:   "atom.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		AtomID:   atomID,
		ClientID: clientID,
		TypeID:   typeID,
	}
}

// AtomContentUpdated is raised when an atom's content changes
type AtomContentUpdated struct {
	BaseEvent
	AtomID     valueobjects.AtomID       `json:"atom_id"`
	ClientID   string                    `json:"client_id"`
	NewVersion valueobjects.VersionToken `json:"new_version"`
}

// NewAtomContentUpdated creates an AtomContentUpdated event
func NewAtomContentUpdated(atomID valueobjects.AtomID, clientID string, newVersion valueobjects.VersionToken, timestamp time.Time) AtomContentUpdated {
	return AtomContentUpdated{
		BaseEvent: BaseEvent{
			AggregateID: atomID.String(),
			EventType:   "atom.content_updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		AtomID:     atomID,
		ClientID:   clientID,
		NewVersion: newVersion,
	}
}

// AtomDeleted is raised when an atom is removed
type AtomDeleted struct {
	BaseEvent
	AtomID   valueobjects.AtomID `json:"atom_id"`
	ClientID string              `json:"client_id"`
}

// NewAtomDeleted creates an AtomDeleted event
func NewAtomDeleted(atomID valueobjects.AtomID, clientID string, timestamp time.Time) AtomDeleted {
	return AtomDeleted{
		BaseEvent: BaseEvent{
			AggregateID: atomID.String(),
			EventType:   "atom.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		AtomID:   atomID,
		ClientID: clientID,
	}
}

// Article Events

// ArticleCreated is raised when a new article is created
type ArticleCreated struct {
	BaseEvent
	ArticleID valueobjects.ArticleID `json:"article_id"`
	ClientID  string                 `json:"client_id"`
	Name      string                 `json:"name"`
}

// NewArticleCreated creates an ArticleCreated event
func NewArticleCreated(articleID valueobjects.ArticleID, clientID, name string, timestamp time.Time) ArticleCreated {
	return ArticleCreated{
		BaseEvent: BaseEvent{
			AggregateID: articleID.String(),
			EventType:   "article.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		ArticleID: articleID,
		ClientID:  clientID,
		Name:      name,
	}
}

// ArticleCompositionChanged is raised when atoms are attached to,
// detached from, or reordered within an article
type ArticleCompositionChanged struct {
	BaseEvent
	ArticleID  valueobjects.ArticleID    `json:"article_id"`
	ClientID   string                    `json:"client_id"`
	NewVersion valueobjects.VersionToken `json:"new_version"`
}

// NewArticleCompositionChanged creates an ArticleCompositionChanged event
func NewArticleCompositionChanged(articleID valueobjects.ArticleID, clientID string, newVersion valueobjects.VersionToken, timestamp time.Time) ArticleCompositionChanged {
	return ArticleCompositionChanged{
		BaseEvent: BaseEvent{
			AggregateID: articleID.String(),
			EventType:   "article.composition_changed",
			Timestamp:   timestamp,
			Version:     1,
		},
		ArticleID:  articleID,
		ClientID:   clientID,
		NewVersion: newVersion,
	}
}

// ArticleDeleted is raised when an article is removed
type ArticleDeleted struct {
	BaseEvent
	ArticleID valueobjects.ArticleID `json:"article_id"`
	ClientID  string                 `json:"client_id"`
}

// NewArticleDeleted creates an ArticleDeleted event
func NewArticleDeleted(articleID valueobjects.ArticleID, clientID string, timestamp time.Time) ArticleDeleted {
	return ArticleDeleted{
		BaseEvent: BaseEvent{
			AggregateID: articleID.String(),
			EventType:   "article.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		ArticleID: articleID,
		ClientID:  clientID,
	}
}

// Collection Events

// CollectionChanged is raised when a collection's slot set changes
type CollectionChanged struct {
	BaseEvent
	CollectionID string `json:"collection_id"`
	ClientID     string `json:"client_id"`
}

// NewCollectionChanged creates a CollectionChanged event
func NewCollectionChanged(collectionID, clientID string, timestamp time.Time) CollectionChanged {
	return CollectionChanged{
		BaseEvent: BaseEvent{
			AggregateID: collectionID,
			EventType:   "collection.changed",
			Timestamp:   timestamp,
			Version:     1,
		},
		CollectionID: collectionID,
		ClientID:     clientID,
	}
}

// MenuSaved is raised when a menu's entries are written
type MenuSaved struct {
	BaseEvent
	MenuID       string `json:"menu_id"`
	CollectionID string `json:"collection_id"`
	Name         string `json:"name"`
}

// NewMenuSaved creates a MenuSaved event
func NewMenuSaved(menuID, collectionID, name string, timestamp time.Time) MenuSaved {
	return MenuSaved{
		BaseEvent: BaseEvent{
			AggregateID: menuID,
			EventType:   "menu.saved",
			Timestamp:   timestamp,
			Version:     1,
		},
		MenuID:       menuID,
		CollectionID: collectionID,
		Name:         name,
	}
}

// Variable Events

// VariableSet is raised when a stored variable is created or updated
type VariableSet struct {
	BaseEvent
	ClientID string `json:"client_id"`
	Tag      string `json:"tag"`
}

// NewVariableSet creates a VariableSet event
func NewVariableSet(clientID, tag string, timestamp time.Time) VariableSet {
	return VariableSet{
		BaseEvent: BaseEvent{
			AggregateID: clientID,
			EventType:   "variable.set",
			Timestamp:   timestamp,
			Version:     1,
		},
		ClientID: clientID,
		Tag:      tag,
	}
}
