package catalog

import (
	"sort"
	"strings"

	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	domsort "github.com/kailas-cloud/pokedex/internal/domain/query/sort"
)

// Rank filters and orders the catalog, returning item IDs only.
// The function is pure: same inputs yield the same id list, which is
// what makes the cached output deterministic.
//
// Every order breaks ties by ascending ID, so items with equal keys
// (duplicate names, equal favorite status) still have one fixed
// position. favorites_first with an empty favorite set degrades to
// plain ascending ID.
func Rank(
	items []domitem.Item,
	search, typeLabel string,
	order domsort.Order,
	favorites map[int]struct{},
) []int {
	needle := strings.ToLower(search)

	matched := make([]*domitem.Item, 0, len(items))
	for i := range items {
		it := &items[i]
		if needle != "" && !strings.Contains(strings.ToLower(it.Name()), needle) {
			continue
		}
		if typeLabel != "" && typeLabel != "any" && !it.HasType(typeLabel) {
			continue
		}
		matched = append(matched, it)
	}

	sort.Slice(matched, less(order, favorites, matched))

	ids := make([]int, len(matched))
	for i, it := range matched {
		ids[i] = it.ID()
	}
	return ids
}

func less(order domsort.Order, favorites map[int]struct{}, items []*domitem.Item) func(i, j int) bool {
	switch order {
	case domsort.IDDesc:
		return func(i, j int) bool { return items[i].ID() > items[j].ID() }
	case domsort.NameAsc:
		return func(i, j int) bool {
			if items[i].Name() != items[j].Name() {
				return items[i].Name() < items[j].Name()
			}
			return items[i].ID() < items[j].ID()
		}
	case domsort.NameDesc:
		return func(i, j int) bool {
			if items[i].Name() != items[j].Name() {
				return items[i].Name() > items[j].Name()
			}
			return items[i].ID() < items[j].ID()
		}
	case domsort.FavoritesFirst:
		return func(i, j int) bool {
			_, favI := favorites[items[i].ID()]
			_, favJ := favorites[items[j].ID()]
			if favI != favJ {
				return favI
			}
			return items[i].ID() < items[j].ID()
		}
	default: // IDAsc
		return func(i, j int) bool { return items[i].ID() < items[j].ID() }
	}
}
