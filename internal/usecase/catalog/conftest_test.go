package catalog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/pokedex/internal/domain"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
	"github.com/kailas-cloud/pokedex/internal/domain/query/sort"
)

// mockItems implements ItemReader for tests.
type mockItems struct {
	getFn      func(ctx context.Context, id int) (domitem.Item, error)
	getMultiFn func(ctx context.Context, ids []int) ([]domitem.Item, error)
	listAllFn  func(ctx context.Context) ([]domitem.Item, error)

	listAllCalls int
}

func (m *mockItems) Get(ctx context.Context, id int) (domitem.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domitem.Item{}, domain.ErrItemNotFound
}

func (m *mockItems) GetMulti(ctx context.Context, ids []int) ([]domitem.Item, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	items := make([]domitem.Item, len(ids))
	for i, id := range ids {
		items[i] = domitem.Reconstruct(id, "", nil, 0, 0, 0, nil, nil, "")
	}
	return items, nil
}

func (m *mockItems) ListAll(ctx context.Context) ([]domitem.Item, error) {
	m.listAllCalls++
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

// mockFavs implements FavoriteReader for tests.
type mockFavs struct {
	idsFn func(ctx context.Context, userID string) (map[int]struct{}, error)

	calls []string
}

func (m *mockFavs) IDs(ctx context.Context, userID string) (map[int]struct{}, error) {
	m.calls = append(m.calls, userID)
	if m.idsFn != nil {
		return m.idsFn(ctx, userID)
	}
	return nil, nil
}

// mockCache implements ResultCache for tests.
type mockCache struct {
	getFn func(ctx context.Context, q *query.Query) ([]int, bool)
	putFn func(ctx context.Context, q *query.Query, ids []int)

	puts [][]int
}

func (m *mockCache) Get(ctx context.Context, q *query.Query) ([]int, bool) {
	if m.getFn != nil {
		return m.getFn(ctx, q)
	}
	return nil, false
}

func (m *mockCache) Put(ctx context.Context, q *query.Query, ids []int) {
	m.puts = append(m.puts, ids)
	if m.putFn != nil {
		m.putFn(ctx, q, ids)
	}
}

func newTestService(t *testing.T) (*Service, *mockItems, *mockFavs, *mockCache) {
	t.Helper()
	items := &mockItems{}
	favs := &mockFavs{}
	cache := &mockCache{}
	return New(items, favs, cache), items, favs, cache
}

// starterCatalog is the three-item fixture used across query tests.
func starterCatalog(t *testing.T) []domitem.Item {
	t.Helper()
	return []domitem.Item{
		domitem.Reconstruct(1, "bulbasaur", []string{"grass", "poison"}, 7, 69, 64, nil, nil, ""),
		domitem.Reconstruct(4, "charmander", []string{"fire"}, 6, 85, 62, nil, nil, ""),
		domitem.Reconstruct(7, "squirtle", []string{"water"}, 5, 90, 63, nil, nil, ""),
	}
}

func mustQuery(t *testing.T, search, itemType string, order sort.Order, page, perPage int, requester string) *query.Query {
	t.Helper()
	q, err := query.New(search, itemType, order, page, perPage, requester)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return &q
}

func assertIDs(t *testing.T, got []int, want ...int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}
