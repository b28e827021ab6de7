package main

import (
	"math"

	"github.com/plus3/holeio/hole"
)

// pilot steers towards the nearest edible consumable and away from any
// larger one that comes within reach.
type pilot struct {
	// margin is the extra clearance kept from dangerous consumables.
	margin float64
}

func (p pilot) next(snap hole.Snapshot) hole.Input {
	me := snap.Hole
	if snap.Status != hole.StatusRunning {
		return hole.Input{}
	}

	var (
		threat    *hole.CircleState
		threatGap = math.Inf(1)
		food      *hole.CircleState
		foodDist  = math.Inf(1)
	)

	for i := range snap.Consumables {
		c := &snap.Consumables[i]
		d := hole.Distance(me.Position, c.Position)

		if c.Radius > me.Radius {
			if gap := d - c.Radius - p.margin; gap < 0 && gap < threatGap {
				threat, threatGap = c, gap
			}
			continue
		}
		if d < foodDist {
			food, foodDist = c, d
		}
	}

	if threat != nil {
		away := hole.Chase(me.Position, threat.Position, me.Radius+p.margin, true)
		return hole.PointAt(away.X, away.Y)
	}
	if food != nil {
		return hole.PointAt(food.Position.X, food.Position.Y)
	}
	return hole.Input{}
}
