package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/sitecam"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ScreenshotDir is where screenshots are written. Defaults to
	// "screenshots".
	ScreenshotDir string
	// Background is the clear color.
	Background color.RGBA
	// Script, when set, is attached to the controller and the window
	// closes once it has finished.
	Script *sitecam.TestRunner
}

// Game adapts a Controller and a Model to ebiten.Game.
type Game struct {
	ctl   *sitecam.Controller
	model Model
	input *poller
	cfg   RunConfig

	edges []Edge
	// dirty is set by the controller's render trigger; clean frames are
	// not redrawn.
	dirty  bool
	width  int
	height int

	screenshotQueue []string
}

// NewGame wires ctl to model. It takes over ctl.OnRender and
// ctl.OnScreenshot.
func NewGame(ctl *sitecam.Controller, model Model, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Background == (color.RGBA{}) {
		cfg.Background = color.RGBA{0x12, 0x12, 0x16, 0xff}
	}
	g := &Game{
		ctl:   ctl,
		model: model,
		input: newPoller(ctl),
		cfg:   cfg,
		dirty: true,
	}
	ctl.OnRender = func() { g.dirty = true }
	ctl.OnScreenshot = g.Screenshot
	if cfg.Script != nil {
		ctl.SetTestRunner(cfg.Script)
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.input.poll()
	g.handleKeys()
	g.ctl.Update(1 / float64(ebiten.TPS()))
	if g.cfg.Script != nil && g.cfg.Script.Done() && len(g.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// handleKeys maps the viewer shortcuts.
func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ctl.ResetRotation()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.ctl.RecenterCamera(sitecam.RecenterOptions{Animate: true})
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.ctl.SaveHome()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.Screenshot("manual")
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.dirty && !g.cfg.ShowFPS && len(g.screenshotQueue) == 0 {
		return
	}
	g.dirty = false

	screen.Fill(g.cfg.Background)
	g.drawModel(screen)
	g.drawHUD(screen)
	g.flushScreenshots(screen)
}

// drawModel projects every model edge and strokes the visible ones.
func (g *Game) drawModel(screen *ebiten.Image) {
	cam := g.ctl.Camera()
	g.edges = g.model.Edges(g.edges[:0])
	for i := range g.edges {
		e := &g.edges[i]
		x0, y0, ok0 := cam.WorldToScreen(e.A)
		x1, y1, ok1 := cam.WorldToScreen(e.B)
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, e.Color, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.ctl.State()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"r %.1f  yaw %.2f  pitch %.2f  fit %s",
		st.Radius, st.Yaw, st.Pitch, g.ctl.AutoFitState()), 4, g.height-16)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
}

// Layout implements ebiten.Game. The controller viewport follows the
// window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctl.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives ctl until it is closed.
func Run(ctl *sitecam.Controller, model Model, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	g := NewGame(ctl, model, cfg)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run %q: %w", cfg.Title, err)
	}
	return nil
}
