package spinner

import (
	"math"
	"strconv"
	"time"
)

// Arc lengths and angular velocities, all in degrees.
const (
	deflatedLength       = 5.0
	defaultInflateLength = 360.0 * 2 / 3

	indeterminateCycleCount    = 4
	indeterminateRotationSpeed = 150.0 // per second, pure rotation steps
	indeterminateInflateSpeed  = 540.0 // per second, inflate and deflate steps

	tweenSpeed = 630.0 // per second, every phase of an icon transition

	iconEnterMinAngleChange = 120.0
	iconExitMinAngleChange  = 180.0
	tweenMinSpin            = 90.0
)

const (
	iconStrokeDuration   = 200 * time.Millisecond
	textFadeFullDuration = 300 * time.Millisecond
)

// DeflateParams describes the breathing amplitude and direction of the arc.
type DeflateParams struct {
	DeflateLength  float64
	InflateLength  float64
	RotationFactor float64 // -1 clockwise, +1 counter-clockwise
}

// ComputeDeflateParams derives deflate parameters from a signed progress value.
// A positive progress rotates clockwise; zero falls back to a two-thirds circle.
func ComputeDeflateParams(progress float64) DeflateParams {
	progress = ClampProgress(progress)
	inflate := defaultInflateLength
	if progress != 0 {
		inflate = math.Max(deflatedLength, math.Abs(progress)*360)
	}
	rotation := 1.0
	if progress > 0 {
		rotation = -1
	}
	return DeflateParams{
		DeflateLength:  deflatedLength,
		InflateLength:  inflate,
		RotationFactor: rotation,
	}
}

// Clockwise reports whether the arc rotates clockwise.
func (d DeflateParams) Clockwise() bool {
	return d.RotationFactor < 0
}

// NormalizeAngle maps any angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// ClampProgress limits progress to [-1, 1]. NaN is treated as zero.
func ClampProgress(progress float64) float64 {
	if math.IsNaN(progress) {
		return 0
	}
	return math.Max(-1, math.Min(1, progress))
}

// ProgressText formats progress as a whole percentage of its magnitude.
func ProgressText(progress float64) string {
	p := ClampProgress(progress)
	return strconv.Itoa(int(math.Round(math.Abs(p)*100))) + "%"
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
