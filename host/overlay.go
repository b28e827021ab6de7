package host

import (
	"fmt"
	"log"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/holeio/ecs"
	"github.com/plus3/holeio/ecs/debugui"
	debugui_ebiten "github.com/plus3/holeio/ecs/debugui/ebiten"
	"github.com/plus3/holeio/hole"
)

// DebugOverlay shows the ECS inspector windows and a session control panel
// over the game.
type DebugOverlay struct {
	backend   debugui_ebiten.ImguiBackend
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[debugui.ImguiInputState]
}

var _ Overlay = (*DebugOverlay)(nil)

// NewDebugOverlay creates the ImGui window and attaches the debug windows to
// the game's world.
func NewDebugOverlay(game *hole.Game, title string) *DebugOverlay {
	cfg := game.Config()
	storage := game.Storage()

	o := &DebugOverlay{
		backend: debugui_ebiten.NewImguiBackend(title, int(cfg.Width), int(cfg.Height)),
		input:   ecs.NewSingleton[debugui.ImguiInputState](storage),
	}

	debugui.SpawnDebugUI(storage, game.Stats)
	storage.Spawn(debugui.ImguiItem{Render: sessionWindow(game)})

	o.scheduler = ecs.NewScheduler(storage)
	o.scheduler.Register(&debugui.ImguiSystem{})
	return o
}

func (o *DebugOverlay) Update() {
	o.backend.Frame(func() {
		o.scheduler.Once(0)
	})
}

func (o *DebugOverlay) Draw(screen *ebiten.Image) {
	o.backend.Overlay(screen)
}

func (o *DebugOverlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

func (o *DebugOverlay) WantsPointer() bool {
	return o.input.Get().WantCaptureMouse
}

func (o *DebugOverlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}

var statusColors = map[hole.Status]imgui.Vec4{
	hole.StatusRunning: imgui.NewVec4(0.4, 0.9, 0.4, 1),
	hole.StatusPaused:  imgui.NewVec4(0.9, 0.8, 0.3, 1),
	hole.StatusWon:     imgui.NewVec4(0.3, 0.7, 1.0, 1),
	hole.StatusLost:    imgui.NewVec4(1.0, 0.4, 0.4, 1),
}

func sessionWindow(game *hole.Game) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(260, 0), imgui.CondOnce)
		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		snap := game.Snapshot()
		cfg := game.Config()

		imgui.TextColored(statusColors[snap.Status], snap.Status.String())
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("round %d (%s)", snap.Round, cfg.Variant))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Elapsed: %s / %s", snap.Elapsed.Truncate(100*time.Millisecond), cfg.TimeLimit))
		imgui.Text(fmt.Sprintf("Hole radius: %.1f / %.0f", snap.Hole.Radius, snap.MaxRadius))
		imgui.Text(fmt.Sprintf("Consumables: %d (eaten %d)", len(snap.Consumables), snap.Eaten))
		imgui.Text(fmt.Sprintf("Wins: %d  Losses: %d", snap.Wins, snap.Losses))
		imgui.Separator()

		label := "Pause"
		if snap.Status == hole.StatusPaused {
			label = "Resume"
		}
		if imgui.Button(label) {
			if err := game.TogglePause(); err != nil {
				log.Printf("hole: %v", err)
			}
		}
		imgui.SameLine()
		if imgui.Button("Reset") {
			game.Reset()
		}
		imgui.SameLine()
		if imgui.Button("Spawn") {
			game.SpawnRandomConsumable()
		}

		imgui.End()
	}
}
