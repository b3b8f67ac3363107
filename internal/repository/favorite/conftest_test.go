package favorite

import (
	"context"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	saddFn     func(ctx context.Context, key, member string) (bool, error)
	sremFn     func(ctx context.Context, key, member string) (bool, error)
	smembersFn func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) SAdd(ctx context.Context, key, member string) (bool, error) {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, member)
	}
	return true, nil
}

func (m *mockStore) SRem(ctx context.Context, key, member string) (bool, error) {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, member)
	}
	return true, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}
