package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Small spheres are kept clear of this point so they don't intersect the metal feature sphere
var reservedPoint = core.NewVec3(4, 0.2, 0)

const (
	smallRadius     = 0.2
	reservedSpacing = 0.9

	// Pixel streams count up from zero, so scene population draws from the far end
	sceneStream = ^uint64(0)
)

// RandomScene builds a ground sphere, a (2*gridHalfExtent)^2 grid of small spheres with
// randomly chosen materials, and three large feature spheres.
// The same sampler sequence always produces the same world.
func RandomScene(gridHalfExtent int, sampler core.Sampler) *geometry.World {
	world := geometry.NewWorld()

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	for a := -gridHalfExtent; a < gridHalfExtent; a++ {
		for b := -gridHalfExtent; b < gridHalfExtent; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(reservedPoint).Length() <= reservedSpacing {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				// Squaring darkens and saturates the colors
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, smallRadius, mat))
		}
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return world
}

// NewRandomScene creates the random sphere field viewed from a low angle with shallow depth of field
func NewRandomScene(seed uint64) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	config := renderer.DefaultConfig()
	config.Width = 900
	config.Height = heightFor(config.Width, cameraConfig.AspectRatio)
	config.SamplesPerPixel = 10
	config.MaxDepth = 50
	config.Seed = seed

	return &Scene{
		Name:         "random",
		World:        RandomScene(10, core.NewSeededSampler(seed, sceneStream)),
		CameraConfig: cameraConfig,
		Config:       config,
	}
}
