package item

import (
	"fmt"
	"strings"
)

// MaxNameLength is the maximum allowed item name length.
const MaxNameLength = 100

// Item is a catalog entry (immutable value object). Items are created by the
// seeding pipeline and never mutated by the query core.
type Item struct {
	id             int
	name           string
	types          []string
	height         int
	weight         int
	baseExperience int
	abilities      []string
	stats          map[string]int
	spriteURL      string
}

// New validates and creates an Item.
// ID is the stable catalog identifier (positive). Name is required.
func New(
	id int, name string, types []string,
	height, weight, baseExperience int,
	abilities []string, stats map[string]int, spriteURL string,
) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("item ID must be positive, got %d", id)
	}
	if name == "" {
		return Item{}, fmt.Errorf("item name is required")
	}
	if len(name) > MaxNameLength {
		return Item{}, fmt.Errorf("item name too long (max %d)", MaxNameLength)
	}

	return Item{
		id:             id,
		name:           name,
		types:          cloneStrings(types),
		height:         height,
		weight:         weight,
		baseExperience: baseExperience,
		abilities:      cloneStrings(abilities),
		stats:          cloneIntMap(stats),
		spriteURL:      spriteURL,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(
	id int, name string, types []string,
	height, weight, baseExperience int,
	abilities []string, stats map[string]int, spriteURL string,
) Item {
	return Item{
		id: id, name: name, types: types,
		height: height, weight: weight, baseExperience: baseExperience,
		abilities: abilities, stats: stats, spriteURL: spriteURL,
	}
}

// ID returns the catalog identifier.
func (i *Item) ID() int { return i.id }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Types returns the category labels.
func (i *Item) Types() []string { return i.types }

// Height returns the height in decimeters.
func (i *Item) Height() int { return i.height }

// Weight returns the weight in hectograms.
func (i *Item) Weight() int { return i.weight }

// BaseExperience returns the base experience yield.
func (i *Item) BaseExperience() int { return i.baseExperience }

// Abilities returns the ability names.
func (i *Item) Abilities() []string { return i.abilities }

// Stats returns the base stats by name.
func (i *Item) Stats() map[string]int { return i.stats }

// SpriteURL returns the display sprite URL.
func (i *Item) SpriteURL() string { return i.spriteURL }

// HasType reports whether the item carries the given type label (case-insensitive).
func (i *Item) HasType(label string) bool {
	for _, t := range i.types {
		if strings.EqualFold(t, label) {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
