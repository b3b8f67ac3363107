package chi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/domain"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
	cataloguc "github.com/kailas-cloud/pokedex/internal/usecase/catalog"
	favoritesuc "github.com/kailas-cloud/pokedex/internal/usecase/favorites"
	healthuc "github.com/kailas-cloud/pokedex/internal/usecase/health"
)

var errConnRefused = errors.New("connection refused")

// --- In-memory fakes backing the HTTP tests ---

type fakeItems struct {
	byID map[int]domitem.Item
}

func (f *fakeItems) Get(_ context.Context, id int) (domitem.Item, error) {
	it, ok := f.byID[id]
	if !ok {
		return domitem.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (f *fakeItems) GetMulti(_ context.Context, ids []int) ([]domitem.Item, error) {
	items := make([]domitem.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := f.byID[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (f *fakeItems) ListAll(_ context.Context) ([]domitem.Item, error) {
	ids := make([]int, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return f.GetMulti(context.Background(), ids)
}

type fakeFavorites struct {
	byUser map[string]map[int]struct{}
}

func (f *fakeFavorites) set(userID string) map[int]struct{} {
	if f.byUser[userID] == nil {
		f.byUser[userID] = make(map[int]struct{})
	}
	return f.byUser[userID]
}

func (f *fakeFavorites) Add(_ context.Context, userID string, itemID int) error {
	s := f.set(userID)
	if _, ok := s[itemID]; ok {
		return domain.ErrAlreadyFavorite
	}
	s[itemID] = struct{}{}
	return nil
}

func (f *fakeFavorites) Remove(_ context.Context, userID string, itemID int) error {
	s := f.set(userID)
	if _, ok := s[itemID]; !ok {
		return domain.ErrNotFavorite
	}
	delete(s, itemID)
	return nil
}

func (f *fakeFavorites) List(_ context.Context, userID string) ([]int, error) {
	ids := make([]int, 0, len(f.byUser[userID]))
	for id := range f.byUser[userID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (f *fakeFavorites) IDs(_ context.Context, userID string) (map[int]struct{}, error) {
	return f.byUser[userID], nil
}

type fakeCache struct {
	flushed int
}

func (f *fakeCache) Get(_ context.Context, _ *query.Query) ([]int, bool) { return nil, false }

func (f *fakeCache) Put(_ context.Context, _ *query.Query, _ []int) {}

func (f *fakeCache) InvalidateUser(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *fakeCache) Flush(_ context.Context) (int, error) { return f.flushed, nil }

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

// --- Fixture ---

type testEnv struct {
	router http.Handler
	server *Server
	items  *fakeItems
	favs   *fakeFavorites
	cache  *fakeCache
	pinger *fakePinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	items := &fakeItems{byID: map[int]domitem.Item{
		1: domitem.Reconstruct(1, "bulbasaur", []string{"grass", "poison"}, 7, 69, 64, []string{"overgrow"}, map[string]int{"hp": 45}, "https://sprites.example/1.png"),
		4: domitem.Reconstruct(4, "charmander", []string{"fire"}, 6, 85, 62, []string{"blaze"}, map[string]int{"hp": 39}, "https://sprites.example/4.png"),
		7: domitem.Reconstruct(7, "squirtle", []string{"water"}, 5, 90, 63, []string{"torrent"}, map[string]int{"hp": 44}, "https://sprites.example/7.png"),
	}}
	favs := &fakeFavorites{byUser: make(map[string]map[int]struct{})}
	cache := &fakeCache{}
	pinger := &fakePinger{}

	logger := zap.NewNop()
	server := NewServer(
		cataloguc.New(items, favs, cache),
		favoritesuc.New(favs, items, cache, logger),
		healthuc.New(pinger),
		cache,
		logger,
	)

	r := gochi.NewRouter()
	r.Use(IdentityMiddleware(testSecret))
	server.Routes(r)

	return &testEnv{router: r, server: server, items: items, favs: favs, cache: cache, pinger: pinger}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func authorized(t *testing.T, req *http.Request, userID string) *http.Request {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID))
	return req
}
