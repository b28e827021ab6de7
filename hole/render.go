package hole

import (
	"fmt"
	"image/color"
	"time"

	"github.com/plus3/holeio/ecs"
)

// Renderer is the drawing surface a host provides.
type Renderer interface {
	Clear(c color.Color)
	DrawCircle(x, y, radius float64, c color.Color)
	DrawRect(x, y, w, h float64, c color.Color)
	DrawText(text string, x, y float64)
}

// RenderSystem paints the world through Renderer. It is registered on a
// separate schedule from the simulation so drawing never advances the game.
type RenderSystem struct {
	Renderer    Renderer
	Holes       ecs.Query[holeEntity]
	Consumables ecs.Query[consumableEntity]
	Walls       ecs.Query[wallEntity]
	Arena       ecs.Singleton[Arena]
	Session     ecs.Singleton[Session]
	Config      ecs.Singleton[Config]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	r := s.Renderer
	if r == nil {
		return
	}

	r.Clear(arenaColor)

	for w := range s.Walls.Iter() {
		r.DrawRect(w.Wall.X, w.Wall.Y, w.Wall.W, w.Wall.H, wallColor)
	}

	for item := range s.Consumables.Iter() {
		r.DrawCircle(item.Position.X, item.Position.Y, item.Body.Radius, item.Consumable.Color)
	}

	hole, ok := s.Holes.First()
	if ok {
		r.DrawCircle(hole.Position.X, hole.Position.Y, hole.Body.Radius, holeColor)
	}

	session := s.Session.Get()
	remaining := max(s.Config.Get().TimeLimit-session.Elapsed, 0)
	hud := fmt.Sprintf("Round %d  Size %.0f  Time %s  Eaten %d  W/L %d/%d",
		session.Round, holeRadius(hole, ok), remaining.Truncate(time.Second), session.Eaten, session.Wins, session.Losses)
	r.DrawText(hud, 10, 10)

	arena := s.Arena.Get()
	cx, cy := arena.Width/2-60, arena.Height/2
	switch session.Status {
	case StatusPaused:
		r.DrawText("PAUSED - press P to resume", cx-40, cy)
	case StatusWon:
		r.DrawText("YOU WIN!", cx, cy)
	case StatusLost:
		r.DrawText("GAME OVER", cx, cy)
	}
}

func holeRadius(hole holeEntity, ok bool) float64 {
	if !ok {
		return 0
	}
	return hole.Body.Radius
}
