package hole

import (
	"log"
	"math/rand/v2"

	"github.com/plus3/holeio/ecs"
)

type circle struct {
	pos    Position
	radius float64
}

// randomConsumable rolls a radius in [min, max), a position fully inside the
// arena and a random hue.
func randomConsumable(cfg *Config, rng *rand.Rand) (Position, Body, Consumable) {
	radius := rng.Float64()*(cfg.MaxConsumableRadius-cfg.MinConsumableRadius) + cfg.MinConsumableRadius
	pos := Position{
		X: rng.Float64()*(cfg.Width-2*radius) + radius,
		Y: rng.Float64()*(cfg.Height-2*radius) + radius,
	}
	return pos, Body{Radius: radius}, Consumable{
		Color: HSL(rng.Float64()*360, 0.7, 0.6),
		Phase: rng.Float64() * 1000,
	}
}

func placementFree(c circle, placed []circle, hole circle, walls []Rect) bool {
	if Distance(c.pos, hole.pos) <= c.radius+hole.radius {
		return false
	}
	for _, other := range placed {
		if Distance(c.pos, other.pos) <= c.radius+other.radius {
			return false
		}
	}
	for _, w := range walls {
		if CircleOverlapsRect(c.pos, c.radius, w) {
			return false
		}
	}
	return true
}

// spawnConsumables fills the arena with cfg.Consumables entities and returns
// how many were placed. The advanced variant rejection-samples positions so
// that no two consumables, walls or the hole's starting circle overlap, and
// gives up on a consumable after cfg.SpawnAttempts tries.
func spawnConsumables(storage *ecs.Storage, cfg *Config, rng *rand.Rand, hole circle) int {
	if cfg.Variant != VariantAdvanced {
		for range cfg.Consumables {
			pos, body, consumable := randomConsumable(cfg, rng)
			storage.Spawn(pos, body, consumable)
		}
		return cfg.Consumables
	}

	placed := make([]circle, 0, cfg.Consumables)
	for range cfg.Consumables {
		for range cfg.SpawnAttempts {
			pos, body, consumable := randomConsumable(cfg, rng)
			c := circle{pos: pos, radius: body.Radius}
			if !placementFree(c, placed, hole, cfg.Walls) {
				continue
			}
			storage.Spawn(pos, body, consumable)
			placed = append(placed, c)
			break
		}
	}

	if len(placed) < cfg.Consumables {
		log.Printf("hole: placed %d of %d consumables, arena too crowded", len(placed), cfg.Consumables)
	}
	return len(placed)
}
