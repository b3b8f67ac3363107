package item

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/db"
	"github.com/kailas-cloud/pokedex/internal/domain"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
)

var itemKeyPrefix = domain.KeyPrefix + "item:"

// store is the consumer interface for catalog items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase catalog item storage.
type Repo struct {
	store store
}

// New creates an item repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id int) (domitem.Item, error) {
	key := itemKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domitem.Item{}, fmt.Errorf("hgetall %s: %w: %w", key, domain.ErrCatalogUnavailable, err)
	}
	// HGETALL on a missing key yields an empty hash, not an error.
	if len(m) == 0 {
		return domitem.Item{}, domain.ErrItemNotFound
	}
	return parseHashFields(id, m), nil
}

// GetMulti returns the items for the given IDs, preserving order.
// IDs whose hash has vanished (expired, deleted concurrently) are skipped.
func (r *Repo) GetMulti(ctx context.Context, ids []int) ([]domitem.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w: %w", domain.ErrCatalogUnavailable, err)
	}

	items := make([]domitem.Item, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		items = append(items, parseHashFields(ids[i], m))
	}
	return items, nil
}

// ListAll returns every item in the catalog. Order is unspecified
// beyond being deterministic for a fixed catalog (ascending ID).
func (r *Repo) ListAll(ctx context.Context) ([]domitem.Item, error) {
	keys, err := r.store.Scan(ctx, itemKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan items: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	ids := make([]int, 0, len(keys))
	for _, key := range keys {
		id, err := strconv.Atoi(strings.TrimPrefix(key, itemKeyPrefix))
		if err != nil {
			continue // foreign key under our prefix
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return r.GetMulti(ctx, ids)
}

// Upsert creates or updates an item. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, it *domitem.Item) (bool, error) {
	key := itemKey(it.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w: %w", key, domain.ErrCatalogUnavailable, err)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(it)); err != nil {
		return false, fmt.Errorf("hset %s: %w: %w", key, domain.ErrCatalogUnavailable, err)
	}
	return !exists, nil
}

// UpsertMulti stores multiple items in a single round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, items []domitem.Item) error {
	if len(items) == 0 {
		return nil
	}

	batch := make([]db.HashSetItem, len(items))
	for i := range items {
		batch[i] = db.HashSetItem{
			Key:    itemKey(items[i].ID()),
			Fields: buildHashFields(&items[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("hset multi: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	return nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id int) error {
	key := itemKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w: %w", key, domain.ErrCatalogUnavailable, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w: %w", key, domain.ErrCatalogUnavailable, err)
	}
	return nil
}

// Count returns the number of items in the catalog.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, itemKeyPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan items: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	return len(keys), nil
}

func itemKey(id int) string {
	return itemKeyPrefix + strconv.Itoa(id)
}
