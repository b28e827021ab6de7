package hole

import "math"

// Contact is the outcome of testing the hole against one consumable.
type Contact int

const (
	ContactNone Contact = iota
	ContactConsumed
	ContactFatal
)

// Distance is the Euclidean distance between two centres.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Collide tests a hole against a consumable. The consumed check wins when
// both predicates hold.
func Collide(holePos Position, holeRadius float64, pos Position, radius float64) Contact {
	d := Distance(holePos, pos)
	if d < holeRadius-radius*ConsumeOverlap {
		return ContactConsumed
	}
	if d < radius && radius > holeRadius {
		return ContactFatal
	}
	return ContactNone
}

// Growth is how much the hole grows from swallowing a consumable of the
// given radius. The caller caps the result at maxRadius.
func Growth(variant Variant, consumed, holeRadius, maxRadius float64) float64 {
	if variant == VariantAdvanced {
		return math.Max(consumed*AdvancedGrowthFactor, AdvancedMinGrowth) * (1 - holeRadius/maxRadius)
	}
	return consumed * BasicGrowthFactor
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampCircle keeps a circle of the given radius inside the arena.
func ClampCircle(p Position, radius float64, arena Arena) Position {
	return Position{
		X: clamp(p.X, radius, arena.Width-radius),
		Y: clamp(p.Y, radius, arena.Height-radius),
	}
}

// CircleOverlapsRect reports whether a circle intersects a rectangle.
func CircleOverlapsRect(p Position, radius float64, r Rect) bool {
	nx := clamp(p.X, r.X, r.X+r.W)
	ny := clamp(p.Y, r.Y, r.Y+r.H)
	dx, dy := p.X-nx, p.Y-ny
	return dx*dx+dy*dy < radius*radius
}

// PushOutOfRect moves an overlapping circle out of the rectangle along the
// axis of least penetration, leaving it touching the nearest side.
func PushOutOfRect(p Position, radius float64, r Rect) (Position, bool) {
	if !CircleOverlapsRect(p, radius, r) {
		return p, false
	}

	left := p.X + radius - r.X
	right := r.X + r.W - (p.X - radius)
	up := p.Y + radius - r.Y
	down := r.Y + r.H - (p.Y - radius)

	if math.Min(left, right) < math.Min(up, down) {
		if left < right {
			p.X = r.X - radius
		} else {
			p.X = r.X + r.W + radius
		}
	} else {
		if up < down {
			p.Y = r.Y - radius
		} else {
			p.Y = r.Y + r.H + radius
		}
	}
	return p, true
}

// ResolveCircle clamps a circle into the arena and pushes it out of every
// wall. It reports false when no position within a few passes clears all
// walls, e.g. in a gap narrower than the circle.
func ResolveCircle(p Position, radius float64, arena Arena, walls []Rect) (Position, bool) {
	p = ClampCircle(p, radius, arena)

	for range maxWallPush {
		pushed := false
		for _, w := range walls {
			var moved bool
			p, moved = PushOutOfRect(p, radius, w)
			pushed = pushed || moved
		}
		if !pushed {
			break
		}
	}

	p = ClampCircle(p, radius, arena)
	for _, w := range walls {
		if CircleOverlapsRect(p, radius, w) {
			return p, false
		}
	}
	return p, true
}

// Chase moves from towards target by speed, or away from it when flee is set.
// Coincident points do not move.
func Chase(from, target Position, speed float64, flee bool) Position {
	dx, dy := target.X-from.X, target.Y-from.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return from
	}

	ux, uy := dx/d, dy/d
	if flee {
		ux, uy = -ux, -uy
	}
	return Position{X: from.X + ux*speed, Y: from.Y + uy*speed}
}
