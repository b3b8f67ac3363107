package item

import (
	"encoding/json"
	"strconv"

	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
)

// Hash field names for a stored item.
const (
	fieldName           = "name"
	fieldTypes          = "types"
	fieldHeight         = "height"
	fieldWeight         = "weight"
	fieldBaseExperience = "base_experience"
	fieldAbilities      = "abilities"
	fieldStats          = "stats"
	fieldSpriteURL      = "sprite_url"
)

// buildHashFields converts a domain Item into a flat map[string]string for HSET.
// Slices and maps are stored as JSON strings inside the hash.
func buildHashFields(it *domitem.Item) map[string]string {
	types, _ := json.Marshal(it.Types())
	abilities, _ := json.Marshal(it.Abilities())
	stats, _ := json.Marshal(it.Stats())

	return map[string]string{
		fieldName:           it.Name(),
		fieldTypes:          string(types),
		fieldHeight:         strconv.Itoa(it.Height()),
		fieldWeight:         strconv.Itoa(it.Weight()),
		fieldBaseExperience: strconv.Itoa(it.BaseExperience()),
		fieldAbilities:      string(abilities),
		fieldStats:          string(stats),
		fieldSpriteURL:      it.SpriteURL(),
	}
}

// parseHashFields converts a flat hash map back into a domain Item.
// Malformed fields degrade to zero values rather than failing the read.
func parseHashFields(id int, m map[string]string) domitem.Item {
	var types, abilities []string
	var stats map[string]int

	_ = json.Unmarshal([]byte(m[fieldTypes]), &types)
	_ = json.Unmarshal([]byte(m[fieldAbilities]), &abilities)
	_ = json.Unmarshal([]byte(m[fieldStats]), &stats)

	height, _ := strconv.Atoi(m[fieldHeight])
	weight, _ := strconv.Atoi(m[fieldWeight])
	baseExp, _ := strconv.Atoi(m[fieldBaseExperience])

	return domitem.Reconstruct(id, m[fieldName], types, height, weight, baseExp,
		abilities, stats, m[fieldSpriteURL])
}
