package renderer

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ToRGB converts a linear color to 8-bit bytes.
// Components are clamped to [0,1], gamma corrected with gamma 2 (square root)
// and scaled so that 1.0 maps to 255.
func ToRGB(c core.Vec3) [3]uint8 {
	return [3]uint8{
		toByte(c.X),
		toByte(c.Y),
		toByte(c.Z),
	}
}

func toByte(x float64) uint8 {
	// NaN from a degenerate path is treated as black
	if math.IsNaN(x) {
		return 0
	}
	return uint8(math.Floor(math.Sqrt(core.Clamp(x, 0, 1)) * 255.999))
}
