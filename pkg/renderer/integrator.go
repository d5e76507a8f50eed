package renderer

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Hits closer than this are ignored so a scattered ray does not re-hit its own surface
const shadowAcneEpsilon = 0.001

var (
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// backgroundGradient returns the sky color for a ray that escaped the scene
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.UnitVector()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}

// RayColor estimates the radiance arriving along ray by following at most depth bounces.
// The path is walked iteratively: attenuation is folded into a running throughput so the
// result equals attenuation_1 * ... * attenuation_k * sky for a path that escapes after k
// scatters, and black if it is absorbed or runs out of depth.
func RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Vec3 {
	throughput := core.Splat(1.0)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(backgroundGradient(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Vec3{}
}
