package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/control"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/experiment"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/view"
)

const (
	fontSize      = 20
	lineHeight    = 20
	tooltipMargin = 5
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(255, 255, 255, 255)
	ColTooltip = rl.NewColor(50, 50, 50, 255)
	ColTextDim = rl.NewColor(100, 100, 100, 255)
)

// App is the window front end: one physics tick per rendered frame.
type App struct {
	Exp     *experiment.Experiment
	Ctrl    *control.Controller
	Builder *view.Builder
	Running bool
	Font    rl.Font

	log hclog.Logger
}

func initWindow(width, height, fps int) {
	rl.InitWindow(int32(width), int32(height), "solarsim")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(exp *experiment.Experiment, log hclog.Logger) *App {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	cfg := exp.Config()
	return &App{
		Exp:     exp,
		Ctrl:    control.New(exp.State(), cfg.Tuning(), log.Named("control")),
		Builder: view.NewBuilder(cfg.View.OrbitColor),
		Running: true,
		Font:    rl.GetFontDefault(),
		log:     log,
	}
}

// Run opens the window sized to the configured viewport and blocks until it
// is closed.
func Run(exp *experiment.Experiment, log hclog.Logger) error {
	cfg := exp.Config()
	initWindow(cfg.View.Width, cfg.View.Height, cfg.Clock.TickRate)
	defer rl.CloseWindow()

	app := NewApp(exp, log)
	app.log.Info("window opened", "width", cfg.View.Width, "height", cfg.View.Height, "fps", cfg.Clock.TickRate)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func readInput() control.Input {
	delta := rl.GetMouseDelta()
	return control.Input{
		Held: control.Direction{
			Up:    rl.IsKeyDown(rl.KeyW),
			Down:  rl.IsKeyDown(rl.KeyS),
			Left:  rl.IsKeyDown(rl.KeyA),
			Right: rl.IsKeyDown(rl.KeyD),
		},
		Wheel:     float64(rl.GetMouseWheelMove()),
		DragStart: rl.IsMouseButtonPressed(rl.MouseButtonMiddle),
		DragEnd:   rl.IsMouseButtonReleased(rl.MouseButtonMiddle),
		Motion:    r2.Vec{X: float64(delta.X), Y: float64(delta.Y)},
		Faster:    rl.IsKeyPressed(rl.KeyUp),
		Slower:    rl.IsKeyPressed(rl.KeyDown),
	}
}

func (a *App) Update() {
	a.Ctrl.Apply(readInput())

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Exp.Reset(); err != nil {
			a.log.Error("reset failed", "error", err)
		} else {
			a.Ctrl.Rebind(a.Exp.State())
		}
	}

	if a.Running {
		a.Exp.Tick()
	}
}

func (a *App) Draw() {
	mouse := rl.GetMousePosition()
	f := a.Builder.Build(a.Exp.State(), r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)})

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	for _, o := range f.Orbits {
		rl.DrawCircleLines(int32(o.Center.X), int32(o.Center.Y), float32(o.Radius), color(o.Color))
	}
	a.drawDisc(f.Sun)
	for _, p := range f.Planets {
		a.drawDisc(p)
	}
	for _, ast := range f.Asteroids {
		a.drawDisc(ast)
	}

	if f.Tooltip != nil {
		a.drawTooltip(f.Tooltip)
	}
	for i, line := range f.Overlay {
		a.drawText(line, 10, 10+i*lineHeight, ColText)
	}
	if !a.Running {
		a.drawText("PAUSED", 10, 10+len(f.Overlay)*lineHeight, ColTextDim)
	}
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, int(rl.GetScreenHeight())-30, ColTextDim)

	rl.EndDrawing()
}

func (a *App) drawDisc(d view.Disc) {
	rl.DrawCircleV(vec(d.Center), float32(d.Radius), color(d.Color))
}

func (a *App) drawTooltip(t *view.Tooltip) {
	width := float32(0)
	for _, line := range t.Lines {
		if w := rl.MeasureTextEx(a.Font, line, fontSize, 1).X; w > width {
			width = w
		}
	}
	x, y := int32(t.Anchor.X), int32(t.Anchor.Y)
	h := int32(len(t.Lines)*lineHeight + 2*tooltipMargin)
	rl.DrawRectangle(x, y, int32(width)+2*tooltipMargin, h, ColTooltip)
	for i, line := range t.Lines {
		a.drawText(line, int(x)+tooltipMargin, int(y)+tooltipMargin+i*lineHeight, ColText)
	}
}

func (a *App) drawText(text string, x, y int, c rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
}

func vec(v r2.Vec) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func color(c view.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }
