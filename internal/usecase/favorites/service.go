package favorites

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/domain"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
)

// Service handles favorite toggles and listing.
//
// Every successful toggle eagerly drops the user's personalized cache
// entries, so the next favorites_first query reflects the change. A
// failed invalidation does not fail the toggle: stale entries are
// bounded by the cache TTL and the failure is logged.
type Service struct {
	repo   Repository
	items  ItemReader
	cache  CacheInvalidator
	logger *zap.Logger
}

// New creates a favorites service.
func New(repo Repository, items ItemReader, cache CacheInvalidator, logger *zap.Logger) *Service {
	return &Service{repo: repo, items: items, cache: cache, logger: logger}
}

// Add marks an item as a favorite of the user.
func (s *Service) Add(ctx context.Context, userID string, itemID int) error {
	if userID == "" {
		return domain.ErrIdentityRequired
	}

	if _, err := s.items.Get(ctx, itemID); err != nil {
		return fmt.Errorf("check item %d: %w", itemID, err)
	}

	if err := s.repo.Add(ctx, userID, itemID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	s.invalidate(ctx, userID)
	return nil
}

// Remove unmarks an item as a favorite of the user.
func (s *Service) Remove(ctx context.Context, userID string, itemID int) error {
	if userID == "" {
		return domain.ErrIdentityRequired
	}

	if err := s.repo.Remove(ctx, userID, itemID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	s.invalidate(ctx, userID)
	return nil
}

// List returns the user's favorite items, ascending by ID.
// Favorites whose item has since been deleted are skipped.
func (s *Service) List(ctx context.Context, userID string) ([]domitem.Item, error) {
	if userID == "" {
		return nil, domain.ErrIdentityRequired
	}

	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	items, err := s.items.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate favorites: %w", err)
	}
	return items, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	n, err := s.cache.InvalidateUser(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to invalidate personalized cache",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Debug("Invalidated personalized cache entries",
			zap.String("user_id", userID), zap.Int("entries", n))
	}
}
