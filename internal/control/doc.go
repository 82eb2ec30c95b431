// Package control turns input events into changes of the camera and the
// simulation clock.
//
// The controller owns no state of its own apart from whether a drag is in
// progress. Everything it touches lives in [sim.State]:
//
//   - zoom: multiplied or divided by ZoomFactor once per wheel event
//   - pan: moved by PanSpeed per tick while a direction is held, or by the
//     pointer's relative motion while dragging
//   - time step: multiplied or divided by TimeStepFactor and clamped to the
//     clock bounds, with every mover's position history rebuilt
//
// # Usage
//
//	ctrl := control.New(state, control.DefaultTuning(), log)
//	ctrl.Zoom(wheel)
//	ctrl.PanHeld(control.Direction{Up: keyW})
//	ctrl.SpeedUp()
package control
