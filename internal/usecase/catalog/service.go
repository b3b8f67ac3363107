package catalog

import (
	"context"
	"fmt"

	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
	"github.com/kailas-cloud/pokedex/internal/domain/query/page"
)

// Service handles catalog queries: filter, rank, cache, paginate.
type Service struct {
	items ItemReader
	favs  FavoriteReader
	cache ResultCache
}

// New creates a catalog service.
func New(items ItemReader, favs FavoriteReader, cache ResultCache) *Service {
	return &Service{items: items, favs: favs, cache: cache}
}

// Result is one page of a catalog query.
type Result struct {
	Items   []domitem.Item
	Total   int
	Page    int
	PerPage int
	HasNext bool
}

// Query runs a catalog query. The ranked id list comes from the cache
// when possible; on a miss the whole catalog is loaded, ranked, and the
// id list cached. Items are hydrated per page, so a stale cached id
// whose item has vanished is silently dropped from the window.
func (s *Service) Query(ctx context.Context, q *query.Query) (Result, error) {
	ids, ok := s.cache.Get(ctx, q)
	if !ok {
		var err error
		ids, err = s.rank(ctx, q)
		if err != nil {
			return Result{}, err
		}
		s.cache.Put(ctx, q, ids)
	}

	pg := page.New(ids, q.Page(), q.PerPage())

	items, err := s.items.GetMulti(ctx, pg.IDs())
	if err != nil {
		return Result{}, fmt.Errorf("hydrate page: %w", err)
	}

	return Result{
		Items:   items,
		Total:   pg.Total(),
		Page:    pg.Number(),
		PerPage: pg.Size(),
		HasNext: pg.HasNext(),
	}, nil
}

// Get returns a single item by ID.
func (s *Service) Get(ctx context.Context, id int) (domitem.Item, error) {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return domitem.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}
	return it, nil
}

func (s *Service) rank(ctx context.Context, q *query.Query) ([]int, error) {
	all, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	var favorites map[int]struct{}
	if q.Order().IsPersonalized() && !q.IsAnonymous() {
		favorites, err = s.favs.IDs(ctx, q.Requester())
		if err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
	}

	return Rank(all, q.Search(), q.Type(), q.Order(), favorites), nil
}
