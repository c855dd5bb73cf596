// ABOUTME: Shared stepping interface for the timeline overlay grids
// ABOUTME: Frame and Tempo grids both implement this to drive playhead snapping

// Package overlay implements the timeline grid overlays used to snap the
// playhead forward/backward by a frame or by a musical beat.
package overlay

// Grid quantizes playhead time to the overlay's step size.
type Grid interface {
	StepForward(t float32) float32
	StepBackward(t float32) float32
}
