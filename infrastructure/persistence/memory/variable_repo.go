package memory

import (
	"context"

	"atomcms/application/ports"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// variableRepo implements ports.VariableRepository
type variableRepo struct {
	s *Store
}

func (r *variableRepo) Set(ctx context.Context, clientID, tag, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.variables[clientID] == nil {
		r.s.variables[clientID] = make(map[string]string)
	}
	r.s.variables[clientID][tag] = value
	return nil
}

func (r *variableRepo) GetAll(ctx context.Context, clientID string) (valueobjects.VariableSet, error) {
	r.s.mu.RLock()
	stored := make(map[string]string, len(r.s.variables[clientID]))
	for tag, value := range r.s.variables[clientID] {
		stored[tag] = value
	}
	r.s.mu.RUnlock()
	return valueobjects.NewVariableSet(stored)
}

func (r *variableRepo) Delete(ctx context.Context, clientID, tag string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variables[clientID][tag]; !ok {
		return pkgerrors.NewNotFoundError("variable " + tag)
	}
	delete(r.s.variables[clientID], tag)
	return nil
}

// keyStore implements ports.APIKeyStore
type keyStore struct {
	s *Store
}

func (k *keyStore) Resolve(ctx context.Context, rawKey string) (*ports.APIKeyRecord, error) {
	k.s.mu.RLock()
	defer k.s.mu.RUnlock()
	record, ok := k.s.apiKeys[rawKey]
	if !ok || !record.Active {
		return nil, pkgerrors.NewNotFoundError("api key")
	}
	return &record, nil
}
