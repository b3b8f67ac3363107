package favorites

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/domain"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	addFn    func(ctx context.Context, userID string, itemID int) error
	removeFn func(ctx context.Context, userID string, itemID int) error
	listFn   func(ctx context.Context, userID string) ([]int, error)
}

func (m *mockRepo) Add(ctx context.Context, userID string, itemID int) error {
	if m.addFn != nil {
		return m.addFn(ctx, userID, itemID)
	}
	return nil
}

func (m *mockRepo) Remove(ctx context.Context, userID string, itemID int) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, userID, itemID)
	}
	return nil
}

func (m *mockRepo) List(ctx context.Context, userID string) ([]int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

// mockItems implements ItemReader for tests.
type mockItems struct {
	getFn      func(ctx context.Context, id int) (domitem.Item, error)
	getMultiFn func(ctx context.Context, ids []int) ([]domitem.Item, error)
}

func (m *mockItems) Get(ctx context.Context, id int) (domitem.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domitem.Reconstruct(id, "item", nil, 0, 0, 0, nil, nil, ""), nil
}

func (m *mockItems) GetMulti(ctx context.Context, ids []int) ([]domitem.Item, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	items := make([]domitem.Item, len(ids))
	for i, id := range ids {
		items[i] = domitem.Reconstruct(id, "item", nil, 0, 0, 0, nil, nil, "")
	}
	return items, nil
}

// mockInvalidator implements CacheInvalidator for tests.
type mockInvalidator struct {
	invalidateFn func(ctx context.Context, userID string) (int, error)

	calls []string
}

func (m *mockInvalidator) InvalidateUser(ctx context.Context, userID string) (int, error) {
	m.calls = append(m.calls, userID)
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, userID)
	}
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockItems, *mockInvalidator) {
	t.Helper()
	repo := &mockRepo{}
	items := &mockItems{}
	inv := &mockInvalidator{}
	return New(repo, items, inv, zap.NewNop()), repo, items, inv
}

var errStore = domain.ErrCatalogUnavailable
