package host

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/holeio/hole"
)

// Overlay is drawn on top of the game, typically the Dear ImGui debug UI.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	WantsPointer() bool
	WantsKeyboard() bool
}

// App implements ebiten.Game for a hole.Game. Every Ebiten tick becomes one
// game step of 1/TPS seconds.
type App struct {
	Game    *hole.Game
	Input   *InputPoller
	Overlay Overlay
}

var _ ebiten.Game = (*App)(nil)

func NewApp(game *hole.Game, overlay Overlay) *App {
	return &App{
		Game:    game,
		Input:   NewInputPoller(&EbitenDevice{}),
		Overlay: overlay,
	}
}

func (a *App) Update() error {
	keyboard := a.Overlay == nil || !a.Overlay.WantsKeyboard()
	if keyboard && a.Input.Quit() {
		return ebiten.Termination
	}

	in := a.Input.Poll(a.Overlay == nil || !a.Overlay.WantsPointer())
	if !keyboard {
		in.Move, in.TogglePause, in.Reset = hole.Position{}, false, false
	}
	a.Game.Step(in, tickDuration(ebiten.TPS()))

	if a.Overlay != nil {
		a.Overlay.Update()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.Game.Draw(Screen{Image: screen})
	if a.Overlay != nil {
		a.Overlay.Draw(screen)
	}
}

// Layout keeps the arena's logical size regardless of the window size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := a.Game.Config()
	width, height := int(cfg.Width), int(cfg.Height)
	if a.Overlay != nil {
		a.Overlay.Layout(width, height)
	}
	return width, height
}

// Run opens a window titled title and blocks until the game quits.
func Run(app *App, title string) error {
	cfg := app.Game.Config()
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(app)
}

func tickDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}
