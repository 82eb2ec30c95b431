package control

import (
	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

type Tuning struct {
	ZoomFactor     float64
	PanSpeed       float64
	TimeStepFactor float64
}

func DefaultTuning() Tuning {
	return Tuning{ZoomFactor: 1.1, PanSpeed: 10, TimeStepFactor: 1.2}
}

// Direction is the set of pan keys held during a tick.
type Direction struct {
	Up, Down, Left, Right bool
}

type Controller struct {
	state    *sim.State
	tuning   Tuning
	dragging bool
	log      hclog.Logger
}

func New(st *sim.State, tuning Tuning, log hclog.Logger) *Controller {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Controller{state: st, tuning: tuning, log: log}
}

// Rebind points the controller at a fresh state, e.g. after a reset.
func (c *Controller) Rebind(st *sim.State) {
	c.state = st
	c.dragging = false
}

func (c *Controller) Tuning() Tuning { return c.tuning }

// Zoom applies one wheel event. Only the sign of notches matters.
func (c *Controller) Zoom(notches float64) {
	cam := c.state.Camera
	switch {
	case notches > 0:
		cam.Zoom *= c.tuning.ZoomFactor
	case notches < 0:
		cam.Zoom /= c.tuning.ZoomFactor
	}
}

// PanHeld moves the view one tick's worth for each held direction.
func (c *Controller) PanHeld(d Direction) {
	cam := c.state.Camera
	s := c.tuning.PanSpeed
	if d.Up {
		cam.Pan.Y += s
	}
	if d.Down {
		cam.Pan.Y -= s
	}
	if d.Left {
		cam.Pan.X += s
	}
	if d.Right {
		cam.Pan.X -= s
	}
}

func (c *Controller) BeginDrag()     { c.dragging = true }
func (c *Controller) EndDrag()       { c.dragging = false }
func (c *Controller) Dragging() bool { return c.dragging }

// Drag adds the pointer's relative motion to the pan offset while a drag is
// in progress and is ignored otherwise.
func (c *Controller) Drag(rel r2.Vec) {
	if !c.dragging {
		return
	}
	c.state.Camera.Pan = r2.Add(c.state.Camera.Pan, rel)
}

func (c *Controller) SpeedUp() (float64, bool) {
	return c.retime(c.state.Clock.TimeStep * c.tuning.TimeStepFactor)
}

func (c *Controller) SlowDown() (float64, bool) {
	return c.retime(c.state.Clock.TimeStep / c.tuning.TimeStepFactor)
}

func (c *Controller) retime(ts float64) (float64, bool) {
	old := c.state.Clock.TimeStep
	got, changed := c.state.SetTimeStep(ts)
	if changed {
		c.log.Debug("time step changed", "from", old, "to", got)
	}
	return got, changed
}

// Input is one frame of user input as sampled by a front end.
type Input struct {
	Held      Direction
	Wheel     float64
	DragStart bool
	DragEnd   bool
	Motion    r2.Vec
	Faster    bool
	Slower    bool
}

// Apply feeds a frame of input through the controller. A drag that starts
// this frame already follows this frame's motion.
func (c *Controller) Apply(in Input) {
	c.PanHeld(in.Held)
	if in.Wheel != 0 {
		c.Zoom(in.Wheel)
	}
	if in.DragStart {
		c.BeginDrag()
	}
	c.Drag(in.Motion)
	if in.DragEnd {
		c.EndDrag()
	}
	if in.Faster {
		c.SpeedUp()
	}
	if in.Slower {
		c.SlowDown()
	}
}
