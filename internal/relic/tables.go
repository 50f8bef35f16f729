package relic

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

//go:embed data/items.json
var itemsJSON []byte

//go:embed data/effects.json
var effectsJSON []byte

// itemDef — запись item table из embedded items.json.
// Обычные scenes хранятся без имени, оно восстанавливается из size+color.
type itemDef struct {
	name     string
	color    Color
	size     int
	sellable bool
}

var (
	loadTablesOnce sync.Once
	itemTable      map[int]itemDef
	effectTable    map[uint32]Effect
	tablesErr      error
)

type itemJSON struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Size     int    `json:"size"`
	Sellable *bool  `json:"sellable"`
}

type effectJSON struct {
	Name string `json:"name"`
}

// ValidateTables parses the embedded tables once and returns any error.
// Call it at startup so broken embedded data fails loudly instead of
// degrading every lookup.
func ValidateTables() error {
	ensureTables()
	return tablesErr
}

// LookupItem возвращает имя и цвет предмета по item ID.
func LookupItem(id int) (string, Color, bool) {
	ensureTables()
	def, ok := itemTable[id]
	if !ok {
		return "", ColorUnknown, false
	}
	return def.name, def.color, true
}

// LookupEffect возвращает resolved Effect по effect ID.
func LookupEffect(id uint32) (Effect, bool) {
	ensureTables()
	eff, ok := effectTable[id]
	return eff, ok
}

func ensureTables() {
	loadTablesOnce.Do(func() {
		tablesErr = loadTables()
	})
}

func loadTables() error {
	var rawItems map[string]itemJSON
	if err := json.Unmarshal(itemsJSON, &rawItems); err != nil {
		return fmt.Errorf("parse items.json: %w", err)
	}
	itemTable = make(map[int]itemDef, len(rawItems))
	for key, raw := range rawItems {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("items.json: non-numeric id %q", key)
		}
		color, err := ParseColor(raw.Color)
		if err != nil {
			return fmt.Errorf("items.json: item %d: %w", id, err)
		}
		name := raw.Name
		if name == "" {
			name, err = sceneName(color, raw.Size)
			if err != nil {
				return fmt.Errorf("items.json: item %d: %w", id, err)
			}
		}
		itemTable[id] = itemDef{
			name:     name,
			color:    color,
			size:     raw.Size,
			sellable: raw.Sellable == nil || *raw.Sellable,
		}
	}

	var rawEffects map[string]effectJSON
	if err := json.Unmarshal(effectsJSON, &rawEffects); err != nil {
		return fmt.Errorf("parse effects.json: %w", err)
	}
	effectTable = make(map[uint32]Effect, len(rawEffects))
	for key, raw := range rawEffects {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return fmt.Errorf("effects.json: non-numeric id %q", key)
		}
		base, level := ParseEffectName(raw.Name)
		effectTable[uint32(id)] = Effect{ID: uint32(id), Name: base, Level: level}
	}

	slog.Debug("loaded relic tables", "items", len(itemTable), "effects", len(effectTable))
	return nil
}

var sceneSizes = [...]string{"Delicate", "Polished", "Grand"}

var sceneWeather = map[Color]string{
	Red:    "Burning",
	Blue:   "Drizzly",
	Yellow: "Luminous",
	Green:  "Tranquil",
}

// sceneName строит default имя scene по size и color,
// например "Deep Grand Burning Scene".
func sceneName(c Color, size int) (string, error) {
	if size < 1 || size > len(sceneSizes) {
		return "", fmt.Errorf("scene size %d out of range", size)
	}
	weather, ok := sceneWeather[c.Base()]
	if !ok {
		return "", fmt.Errorf("no scene name for color %s", c)
	}
	name := sceneSizes[size-1] + " " + weather + " Scene"
	if c.IsDeep() {
		name = "Deep " + name
	}
	return name, nil
}
