package favorites

import (
	"context"

	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
)

// Repository defines the storage contract for favorite sets.
type Repository interface {
	Add(ctx context.Context, userID string, itemID int) error
	Remove(ctx context.Context, userID string, itemID int) error
	List(ctx context.Context, userID string) ([]int, error)
}

// ItemReader checks that a favorited item actually exists.
type ItemReader interface {
	Get(ctx context.Context, id int) (domitem.Item, error)
	GetMulti(ctx context.Context, ids []int) ([]domitem.Item, error)
}

// CacheInvalidator drops a requester's personalized cache entries.
type CacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) (int, error)
}
