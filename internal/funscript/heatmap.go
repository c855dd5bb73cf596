// ABOUTME: Stroke-density heatmap: segments the action stream, then kernel-density-colors each segment
// ABOUTME: Grounded on FunscriptHeatmap.cpp, producing normalized gradient marks for rendering

package funscript

const (
	heatmapGapSeconds    = 10.0
	heatmapKernelSeconds = 2.5
	heatmapMaxSamples    = 3
)

// heatmapMaxDensity is the calibration constant from the original
// implementation: 24.5 actions per 5-second window, rescaled to the
// 2.5-second kernel used here.
const heatmapMaxDensity = 24.5 / (5.0 / heatmapKernelSeconds)

// Color is a simple RGBA color used only for heatmap/waveform rendering.
type Color struct{ R, G, B, A uint8 }

var heatRamp = [6]Color{
	{0x00, 0x00, 0x00, 0xFF},
	{0x1E, 0x90, 0xFF, 0xFF}, // dodgerblue
	{0x00, 0xFF, 0xFF, 0xFF}, // cyan
	{0x00, 0xFF, 0x00, 0xFF}, // green
	{0xFF, 0xFF, 0x00, 0xFF}, // yellow
	{0xFF, 0x00, 0x00, 0xFF}, // red
}

// HeatmapMark is one gradient stop: Pos is a normalized [0,1] fraction of
// the total duration.
type HeatmapMark struct {
	Pos   float32
	Color Color
}

func sampleHeatRamp(intensity float32) Color {
	if intensity <= 0 {
		return heatRamp[0]
	}
	if intensity >= 1 {
		return heatRamp[len(heatRamp)-1]
	}
	step := float32(1) / float32(len(heatRamp)-1)
	idx := int(intensity / step)
	if idx >= len(heatRamp)-1 {
		idx = len(heatRamp) - 2
	}
	frac := (intensity - float32(idx)*step) / step
	a, b := heatRamp[idx], heatRamp[idx+1]
	lerp := func(x, y uint8) uint8 { return uint8(float32(x) + frac*(float32(y)-float32(x))) }
	return Color{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

// heatmapSegments splits actions at any inter-action gap >= gapSeconds and
// collapses consecutive same-direction runs to their endpoints, mirroring
// getSegments in FunscriptHeatmap.cpp.
func heatmapSegments(actions []Action, gapSeconds float32) [][]Action {
	var segments [][]Action
	prevDirection := 0
	previous := Action{At: 0, Pos: 0}

	for _, action := range actions {
		if previous.Pos == action.Pos {
			continue
		}
		direction := int(action.Pos) - int(previous.Pos)
		if (direction > 0 && prevDirection > 0) || (direction < 0 && prevDirection < 0) {
			previous = action
			continue
		}
		prevDirection = direction

		if action.At-previous.At >= gapSeconds {
			segments = append(segments, nil)
		}
		if len(segments) == 0 {
			segments = append(segments, nil)
		}
		segments[len(segments)-1] = append(segments[len(segments)-1], action)
		previous = action
	}
	return segments
}

// Heatmap produces the gradient of marks over [0,1] for the given actions
// and total duration, following the kernel-density coloring algorithm.
func Heatmap(actions []Action, totalDuration float32) []HeatmapMark {
	marks := []HeatmapMark{{0, heatRamp[0]}, {1, heatRamp[0]}}
	if len(actions) == 0 || totalDuration <= 0 {
		return marks
	}

	marks = marks[:0]
	marks = append(marks, HeatmapMark{0, heatRamp[0]})

	segments := heatmapSegments(actions, heatmapGapSeconds)
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		duration := segment[len(segment)-1].At - segment[0].At
		kernelOffset := segment[0].At
		marks = append(marks, HeatmapMark{kernelOffset / totalDuration, heatRamp[0]})

		var samples []float32
		for {
			actionsInKernel := 0
			kernelStart := kernelOffset
			kernelEnd := kernelOffset + heatmapKernelSeconds

			if kernelOffset < segment[len(segment)-1].At {
				for _, a := range segment {
					if a.At >= kernelStart && a.At <= kernelEnd {
						actionsInKernel++
					} else if a.At > kernelEnd {
						break
					}
				}
			}
			kernelOffset += heatmapKernelSeconds

			intensity := clampF32(float32(actionsInKernel)/heatmapMaxDensity, 0, 1)
			if len(samples) == heatmapMaxSamples {
				samples = samples[1:]
			}
			samples = append(samples, intensity)

			if len(samples) > 1 {
				var sum float32
				for _, v := range samples {
					sum += v
				}
				intensity = sum / float32(len(samples))
			}

			marks = append(marks, HeatmapMark{kernelOffset / totalDuration, sampleHeatRamp(intensity)})

			if kernelOffset >= segment[0].At+duration {
				break
			}
		}
		marks = append(marks, HeatmapMark{(kernelOffset + 1) / totalDuration, heatRamp[0]})
	}
	return marks
}
