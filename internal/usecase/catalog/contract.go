package catalog

import (
	"context"

	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
)

// ItemReader reads catalog items.
type ItemReader interface {
	Get(ctx context.Context, id int) (domitem.Item, error)
	GetMulti(ctx context.Context, ids []int) ([]domitem.Item, error)
	ListAll(ctx context.Context) ([]domitem.Item, error)
}

// FavoriteReader reads a user's favorite item IDs.
type FavoriteReader interface {
	IDs(ctx context.Context, userID string) (map[int]struct{}, error)
}

// ResultCache caches ranked id lists per query.
type ResultCache interface {
	Get(ctx context.Context, q *query.Query) ([]int, bool)
	Put(ctx context.Context, q *query.Query, ids []int)
}
