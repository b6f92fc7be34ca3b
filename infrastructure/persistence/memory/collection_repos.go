package memory

import (
	"context"

	"atomcms/domain/core/entities"
	pkgerrors "atomcms/pkg/errors"
)

// collectionRepo implements ports.CollectionRepository
type collectionRepo struct {
	s *Store
}

func (r *collectionRepo) Save(ctx context.Context, collection *entities.Collection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.collections[collection.ClientID()] == nil {
		r.s.collections[collection.ClientID()] = make(map[string]*entities.Collection)
	}
	r.s.collections[collection.ClientID()][collection.ID()] = collection
	return nil
}

func (r *collectionRepo) GetByID(ctx context.Context, clientID, id string) (*entities.Collection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	collection, ok := r.s.collections[clientID][id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("collection " + id)
	}
	return collection, nil
}

func (r *collectionRepo) GetByName(ctx context.Context, clientID, name string) (*entities.Collection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, collection := range r.s.collections[clientID] {
		if collection.Name() == name {
			return collection, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("collection " + name)
}

func (r *collectionRepo) ListByClient(ctx context.Context, clientID string) ([]*entities.Collection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	collections := make([]*entities.Collection, 0, len(r.s.collections[clientID]))
	for _, collection := range r.s.collections[clientID] {
		collections = append(collections, collection)
	}
	return collections, nil
}

func (r *collectionRepo) Delete(ctx context.Context, clientID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.collections[clientID][id]; !ok {
		return pkgerrors.NewNotFoundError("collection " + id)
	}
	delete(r.s.collections[clientID], id)
	delete(r.s.menus, id)
	return nil
}

// menuRepo implements ports.MenuRepository
type menuRepo struct {
	s *Store
}

func (r *menuRepo) Save(ctx context.Context, menu *entities.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.menus[menu.CollectionID()] == nil {
		r.s.menus[menu.CollectionID()] = make(map[string]*entities.Menu)
	}
	r.s.menus[menu.CollectionID()][menu.ID()] = menu
	return nil
}

func (r *menuRepo) GetByName(ctx context.Context, collectionID, name string) (*entities.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, menu := range r.s.menus[collectionID] {
		if menu.Name() == name {
			return menu, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("menu " + name)
}

func (r *menuRepo) ListByCollection(ctx context.Context, collectionID string) ([]*entities.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	menus := make([]*entities.Menu, 0, len(r.s.menus[collectionID]))
	for _, menu := range r.s.menus[collectionID] {
		menus = append(menus, menu)
	}
	return menus, nil
}

func (r *menuRepo) Delete(ctx context.Context, collectionID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.menus[collectionID][id]; !ok {
		return pkgerrors.NewNotFoundError("menu " + id)
	}
	delete(r.s.menus[collectionID], id)
	return nil
}
