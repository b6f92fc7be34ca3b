// Package memory holds in-process implementations of the persistence
// ports. They back local development and tests; production runs on the
// DynamoDB adapters.
package memory

import (
	"sync"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
)

// Store is the shared in-memory state behind the repository adapters.
// All adapters are safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	atoms       map[string]map[string]*entities.Atom       // clientID -> atomID
	types       map[string]map[string]*entities.AtomType   // clientID -> typeID
	articles    map[string]map[string]*entities.Article    // clientID -> articleID
	collections map[string]map[string]*entities.Collection // clientID -> collectionID
	menus       map[string]map[string]*entities.Menu       // collectionID -> menuID
	variables   map[string]map[string]string               // clientID -> tag
	apiKeys     map[string]ports.APIKeyRecord              // rawKey
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		atoms:       make(map[string]map[string]*entities.Atom),
		types:       make(map[string]map[string]*entities.AtomType),
		articles:    make(map[string]map[string]*entities.Article),
		collections: make(map[string]map[string]*entities.Collection),
		menus:       make(map[string]map[string]*entities.Menu),
		variables:   make(map[string]map[string]string),
		apiKeys:     make(map[string]ports.APIKeyRecord),
	}
}

// AtomRepo exposes the store as an AtomRepository
func (s *Store) AtomRepo() ports.AtomRepository { return &atomRepo{s} }

// TypeRepo exposes the store as an AtomTypeRepository
func (s *Store) TypeRepo() ports.AtomTypeRepository { return &typeRepo{s} }

// ArticleRepo exposes the store as an ArticleRepository
func (s *Store) ArticleRepo() ports.ArticleRepository { return &articleRepo{s} }

// CollectionRepo exposes the store as a CollectionRepository
func (s *Store) CollectionRepo() ports.CollectionRepository { return &collectionRepo{s} }

// MenuRepo exposes the store as a MenuRepository
func (s *Store) MenuRepo() ports.MenuRepository { return &menuRepo{s} }

// VariableRepo exposes the store as a VariableRepository
func (s *Store) VariableRepo() ports.VariableRepository { return &variableRepo{s} }

// KeyStore exposes the store as an APIKeyStore
func (s *Store) KeyStore() ports.APIKeyStore { return &keyStore{s} }

// AddAPIKey registers a raw key for test and local setups
func (s *Store) AddAPIKey(rawKey string, record ports.APIKeyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKeys[rawKey] = record
}
