package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
)

type clientService struct {
	store    repository.EntityStore
	cache    *cache.Store
	observer UseCaseObserver
}

func NewClientService(store repository.EntityStore, c *cache.Store, observers ...UseCaseObserver) ClientService {
	return &clientService{store: store, cache: c, observer: useCaseObserverOrNoop(observers)}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) (err error) {
	defer observe(ctx, s.observer, "create-client", time.Now().UTC(), map[string]any{"name": c.Name}, &err)

	if err = required("name", c.Name); err != nil {
		return err
	}
	if err = s.store.CreateClient(ctx, c); err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	s.cache.AddClient(*c)
	return nil
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) (err error) {
	defer observe(ctx, s.observer, "update-client", time.Now().UTC(), map[string]any{"client_id": c.ID}, &err)

	if err = required("name", c.Name); err != nil {
		return err
	}
	if err = s.store.UpdateClient(ctx, c); err != nil {
		return fmt.Errorf("updating client %s: %w", c.ID, err)
	}
	s.cache.UpdateClient(*c)
	return nil
}

// Delete refuses while any cached project belongs to the client; the store
// is not called in that case.
func (s *clientService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-client", time.Now().UTC(), map[string]any{"client_id": id}, &err)

	for _, p := range s.cache.Projects() {
		if p.ClientID == id {
			return fmt.Errorf("client %s on project %s: %w", id, p.ID, ErrReferencedClient)
		}
	}
	if err = s.store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("deleting client %s: %w", id, err)
	}
	s.cache.RemoveClient(id)
	return nil
}

// GetOrCreateByName returns the cached client whose name matches ignoring
// case, creating one when none does.
func (s *clientService) GetOrCreateByName(ctx context.Context, name string) (domain.Client, error) {
	name = strings.TrimSpace(name)
	for _, c := range s.cache.Clients() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	c := domain.Client{Name: name}
	if err := s.Create(ctx, &c); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}
