package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with three spheres on a large ground sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.5, 1.5),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	config := renderer.DefaultConfig()
	config.Width = 400
	config.Height = heightFor(config.Width, cameraConfig.AspectRatio)
	config.SamplesPerPixel = 50
	config.MaxDepth = 50

	// Create materials
	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	materialLeft := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight),
		// Small glass ball in front of the diffuse sphere
		geometry.NewSphere(core.NewVec3(0.35, -0.3, -0.4), 0.2, materialGlass),
	)

	return &Scene{
		Name:         "default",
		World:        world,
		CameraConfig: cameraConfig,
		Config:       config,
	}
}
