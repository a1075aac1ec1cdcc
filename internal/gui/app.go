package gui

import (
	"context"
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/logging"
	"github.com/san-kum/galaxy/internal/metrics"
	"github.com/san-kum/galaxy/internal/render"
	"github.com/san-kum/galaxy/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)       // Black, additive points need it
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColPanel   = rl.NewColor(26, 26, 26, 230)
	ColTrack   = rl.NewColor(48, 48, 48, 255)
)

// windowSurface records the renderer size the viewport asks for.
type windowSurface struct {
	width, height int
	ratio         float64
}

func (s *windowSurface) SetSize(width, height int)    { s.width, s.height = width, height }
func (s *windowSurface) SetPixelRatio(ratio float64) { s.ratio = ratio }

type App struct {
	session *sim.Session
	surface *windowSurface
	loop    *render.Loop
	panel   *sliderPanel
	log     logging.Logger

	fps   *metrics.FrameRate
	worst *metrics.FrameTime

	presets []string
	preset  int
	quit    bool
}

// initWindow opens a resizable window sized from the config and disables the
// default exit key.
func initWindow(w config.WindowConfig) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	if w.FPS > 0 {
		rl.SetTargetFPS(int32(w.FPS))
	}
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	surface := &windowSurface{}
	s, err := sim.New(cfg, surface, log)
	if err != nil {
		return nil, err
	}
	a := &App{
		session: s,
		surface: surface,
		panel:   newSliderPanel(s.Panel),
		log:     logging.OrNop(log),
		fps:     metrics.NewFrameRate(0.05),
		worst:   metrics.NewFrameTime(),
		presets: config.ListPresets(),
	}
	a.loop = render.NewLoop(s.Clock, a)
	a.resize(cfg.Window.PixelRatio)
	return a, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	initWindow(cfg.Window)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.session.Close()
	app.log.Infof("window %dx%d, %d points", app.surface.width, app.surface.height, cfg.Galaxy.Count)
	return app.loop.Run(ctx)
}

func (a *App) ShouldClose() bool {
	return a.quit || rl.WindowShouldClose()
}

// Frame runs one tick: resize, input, animation, draw.
func (a *App) Frame(elapsed float64) {
	if rl.IsWindowResized() {
		a.resize(float64(rl.GetWindowScaleDPI().X))
	}
	a.fps.Observe(elapsed)
	a.worst.Observe(elapsed)
	a.Update()
	a.session.Step()
	a.Draw()
}

func (a *App) resize(dpr float64) {
	a.session.Viewport.Resize(rl.GetScreenWidth(), rl.GetScreenHeight(), dpr)
	a.panel.layout(a.surface.width)
}

func (a *App) Update() {
	if a.panel.typing() {
		a.panel.typeKeys()
		return
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyH):
		a.panel.hidden = !a.panel.hidden
	case rl.IsKeyPressed(rl.KeyP) && len(a.presets) > 0:
		a.preset = (a.preset + 1) % len(a.presets)
		a.report(a.session.ApplyPreset(a.presets[a.preset]))
	case rl.IsKeyPressed(rl.KeySpace):
		a.session.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		a.report(a.session.Reseed(time.Now().UnixNano()))
	}

	mouse := rl.GetMousePosition()
	if a.panel.update(mouse) {
		return
	}
	a.orbitInput()
}

func (a *App) report(err error) {
	if err != nil {
		a.log.Errorf("%v", err)
		a.panel.status = err.Error()
	}
}

// orbitInput maps mouse gestures the way OrbitControls does: left drag
// rotates by a full turn per window height, right drag pans the target with
// the cursor, the wheel dollies by 5% a notch.
func (a *App) orbitInput() {
	h := a.surface.height
	if h <= 0 {
		return
	}
	delta := rl.GetMouseDelta()
	orbit := a.session.Orbit

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		turn := 2 * math.Pi / float64(h)
		orbit.Rotate(-float64(delta.X)*turn, -float64(delta.Y)*turn)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		step := a.session.Camera.WorldPerPixel(h)
		orbit.Pan(-float64(delta.X)*step, float64(delta.Y)*step)
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		orbit.Zoom(0.95)
	} else if wheel < 0 {
		orbit.Zoom(1 / 0.95)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawPoints()
	a.panel.draw()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int32(a.surface.height)
	params := a.session.Parameters()
	drawText("galaxy", 20, 20, 24, ColSelect)
	drawText(fmt.Sprintf(":: %d points  %d branches  seed %d", params.Count, params.Branches, a.session.Generator.Seed()), 110, 26, 14, ColText)

	drawText("[DRAG] ORBIT  [RMB] PAN  [WHEEL] ZOOM  [P] PRESET  [R] RESEED  [SPACE] PAUSE  [H] PANEL  [Q] QUIT", 20, h-26, 14, ColTextDim)
	drawText(fmt.Sprintf("%.0f FPS  worst %.1f ms", a.fps.Value(), a.worst.Value()*1000), 20, h-48, 14, ColTextDim)
}

func drawText(text string, x, y int32, size int32, color rl.Color) {
	rl.DrawTextEx(rl.GetFontDefault(), text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
