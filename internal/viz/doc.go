// Package viz is the terminal front end. It renders the solar system on a
// braille canvas with Bubble Tea and reads the same controls as the window.
//
// # Key Bindings
//
//	W/A/S/D  - Pan one step
//	Up/Down  - Increase/decrease the time step
//	+/-      - Zoom in/out (the mouse wheel also zooms)
//	Space    - Pause/Resume simulation
//	R        - Reseed the system
//	?        - Show the controls overlay
//	Q        - Quit
//
// Hold the middle mouse button and drag to pan. Hovering the Sun or a planet
// shows its readout in the side panel.
package viz
