package favorite

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/pokedex/internal/domain"
)

var favKeyPrefix = domain.KeyPrefix + "favorites:"

// store is the consumer interface for favorite sets (ISP).
type store interface {
	SAdd(ctx context.Context, key, member string) (bool, error)
	SRem(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements per-user favorite storage on Redis sets.
type Repo struct {
	store store
}

// New creates a favorite repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Add marks an item as a favorite of the user.
// Returns domain.ErrAlreadyFavorite if it already was one.
func (r *Repo) Add(ctx context.Context, userID string, itemID int) error {
	key := favKey(userID)
	added, err := r.store.SAdd(ctx, key, strconv.Itoa(itemID))
	if err != nil {
		return fmt.Errorf("sadd %s: %w", key, err)
	}
	if !added {
		return domain.ErrAlreadyFavorite
	}
	return nil
}

// Remove unmarks an item as a favorite of the user.
// Returns domain.ErrNotFavorite if it was not one.
func (r *Repo) Remove(ctx context.Context, userID string, itemID int) error {
	key := favKey(userID)
	removed, err := r.store.SRem(ctx, key, strconv.Itoa(itemID))
	if err != nil {
		return fmt.Errorf("srem %s: %w", key, err)
	}
	if !removed {
		return domain.ErrNotFavorite
	}
	return nil
}

// IDs returns the user's favorite item IDs as a membership set.
func (r *Repo) IDs(ctx context.Context, userID string) (map[int]struct{}, error) {
	key := favKey(userID)
	members, err := r.store.SMembers(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", key, err)
	}

	ids := make(map[int]struct{}, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue // foreign member in the set
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

// List returns the user's favorite item IDs in ascending order.
func (r *Repo) List(ctx context.Context, userID string) ([]int, error) {
	set, err := r.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func favKey(userID string) string {
	return favKeyPrefix + userID
}
