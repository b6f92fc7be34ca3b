package memory

import (
	"context"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// atomRepo implements ports.AtomRepository
type atomRepo struct {
	s *Store
}

func (r *atomRepo) Save(ctx context.Context, atom *entities.Atom) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.atoms[atom.ClientID()] == nil {
		r.s.atoms[atom.ClientID()] = make(map[string]*entities.Atom)
	}
	r.s.atoms[atom.ClientID()][atom.ID().String()] = atom
	return nil
}

func (r *atomRepo) GetByID(ctx context.Context, clientID string, id valueobjects.AtomID) (*entities.Atom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	atom, ok := r.s.atoms[clientID][id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("atom " + id.String())
	}
	return atom, nil
}

func (r *atomRepo) GetByKey(ctx context.Context, clientID, key string) (*entities.Atom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, atom := range r.s.atoms[clientID] {
		if atom.Key() == key {
			return atom, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("atom with key " + key)
}

func (r *atomRepo) GetBatch(ctx context.Context, clientID string, ids []valueobjects.AtomID) (map[valueobjects.AtomID]*entities.Atom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make(map[valueobjects.AtomID]*entities.Atom, len(ids))
	for _, id := range ids {
		if atom, ok := r.s.atoms[clientID][id.String()]; ok {
			result[id] = atom
		}
	}
	return result, nil
}

func (r *atomRepo) ListByClient(ctx context.Context, clientID string) ([]*entities.Atom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	atoms := make([]*entities.Atom, 0, len(r.s.atoms[clientID]))
	for _, atom := range r.s.atoms[clientID] {
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

func (r *atomRepo) Delete(ctx context.Context, clientID string, id valueobjects.AtomID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.atoms[clientID][id.String()]; !ok {
		return pkgerrors.NewNotFoundError("atom " + id.String())
	}
	delete(r.s.atoms[clientID], id.String())
	return nil
}

// typeRepo implements ports.AtomTypeRepository. Base types live under
// the empty client ID and are visible to every client.
type typeRepo struct {
	s *Store
}

func (r *typeRepo) Save(ctx context.Context, atomType *entities.AtomType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.types[atomType.ClientID()] == nil {
		r.s.types[atomType.ClientID()] = make(map[string]*entities.AtomType)
	}
	r.s.types[atomType.ClientID()][atomType.ID()] = atomType
	return nil
}

func (r *typeRepo) GetByID(ctx context.Context, clientID, id string) (*entities.AtomType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if atomType, ok := r.s.types[clientID][id]; ok {
		return atomType, nil
	}
	if atomType, ok := r.s.types[""][id]; ok {
		return atomType, nil
	}
	return nil, pkgerrors.NewNotFoundError("type " + id)
}

func (r *typeRepo) GetByName(ctx context.Context, clientID, name string) (*entities.AtomType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, atomType := range r.s.types[clientID] {
		if atomType.Name() == name {
			return atomType, nil
		}
	}
	for _, atomType := range r.s.types[""] {
		if atomType.Name() == name {
			return atomType, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("type " + name)
}

func (r *typeRepo) ListByClient(ctx context.Context, clientID string) ([]*entities.AtomType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	types := make([]*entities.AtomType, 0, len(r.s.types[clientID])+len(r.s.types[""]))
	for _, atomType := range r.s.types[clientID] {
		types = append(types, atomType)
	}
	if clientID != "" {
		for _, atomType := range r.s.types[""] {
			types = append(types, atomType)
		}
	}
	return types, nil
}

func (r *typeRepo) Delete(ctx context.Context, clientID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.types[clientID][id]; !ok {
		return pkgerrors.NewNotFoundError("type " + id)
	}
	delete(r.s.types[clientID], id)
	return nil
}

// articleRepo implements ports.ArticleRepository
type articleRepo struct {
	s *Store
}

func (r *articleRepo) Save(ctx context.Context, article *entities.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.articles[article.ClientID()] == nil {
		r.s.articles[article.ClientID()] = make(map[string]*entities.Article)
	}
	r.s.articles[article.ClientID()][article.ID().String()] = article
	return nil
}

func (r *articleRepo) GetByID(ctx context.Context, clientID string, id valueobjects.ArticleID) (*entities.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	article, ok := r.s.articles[clientID][id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("article " + id.String())
	}
	return article, nil
}

func (r *articleRepo) GetByName(ctx context.Context, clientID, name string) (*entities.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, article := range r.s.articles[clientID] {
		if article.Name() == name {
			return article, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("article " + name)
}

func (r *articleRepo) ListByClient(ctx context.Context, clientID string) ([]*entities.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	articles := make([]*entities.Article, 0, len(r.s.articles[clientID]))
	for _, article := range r.s.articles[clientID] {
		articles = append(articles, article)
	}
	return articles, nil
}

func (r *articleRepo) Delete(ctx context.Context, clientID string, id valueobjects.ArticleID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articles[clientID][id.String()]; !ok {
		return pkgerrors.NewNotFoundError("article " + id.String())
	}
	delete(r.s.articles[clientID], id.String())
	return nil
}
