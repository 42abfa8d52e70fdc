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

type userService struct {
	store    repository.EntityStore
	cache    *cache.Store
	observer UseCaseObserver
}

func NewUserService(store repository.EntityStore, c *cache.Store, observers ...UseCaseObserver) UserService {
	return &userService{store: store, cache: c, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) Create(ctx context.Context, u *domain.User) (err error) {
	defer observe(ctx, s.observer, "create-user", time.Now().UTC(), map[string]any{"username": u.Username}, &err)

	if err = validateUser(u); err != nil {
		return err
	}
	if err = s.checkUnique(u); err != nil {
		return err
	}
	if err = s.store.CreateUser(ctx, u); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	s.cache.AddUser(cached(*u))
	return nil
}

// Update overwrites the user and refreshes every denormalized copy of their
// name and avatar. A blank password keeps the stored one.
func (s *userService) Update(ctx context.Context, u *domain.User) (err error) {
	defer observe(ctx, s.observer, "update-user", time.Now().UTC(), map[string]any{"user_id": u.ID}, &err)

	if err = validateUser(u); err != nil {
		return err
	}
	if err = s.checkUnique(u); err != nil {
		return err
	}
	if err = s.store.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf("updating user %s: %w", u.ID, err)
	}
	s.cache.UpdateUser(cached(*u))
	return nil
}

// Delete refuses while any cached project names the user as leader or
// member; the store is not called in that case.
func (s *userService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-user", time.Now().UTC(), map[string]any{"user_id": id}, &err)

	for _, p := range s.cache.Projects() {
		if p.Involves(id) {
			return fmt.Errorf("user %s on project %s: %w", id, p.ID, ErrReferencedUser)
		}
	}
	if err = s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	s.cache.RemoveUser(id)
	return nil
}

func (s *userService) checkUnique(u *domain.User) error {
	for _, other := range s.cache.Users() {
		if other.ID != u.ID && strings.EqualFold(other.Username, u.Username) {
			return fmt.Errorf("%q: %w", u.Username, ErrDuplicateUsername)
		}
	}
	return nil
}

// cached strips the password before a user enters the cache.
func cached(u domain.User) domain.User {
	u.Password = ""
	return u
}
