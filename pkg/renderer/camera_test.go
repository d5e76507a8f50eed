package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		AspectRatio:   2.0,
		Aperture:      0.0,
		FocusDistance: 1.0,
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	camera := NewCamera(pinholeConfig())

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)

	if !forward.ApproxEquals(expected, 1e-9) {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraGetRay_ViewportCorners(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewSeededSampler(1, 0)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.ApproxEquals(core.Vec3{}, 1e-12) {
				t.Errorf("Pinhole ray origin should be the camera position, got %v", ray.Origin)
			}
			if !ray.Direction.ApproxEquals(tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCameraGetRay_AutomaticFocusDistance(t *testing.T) {
	config := pinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -5)
	config.FocusDistance = 0
	camera := NewCamera(config)

	ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1, 0))

	// The viewport center lies on the focus plane through LookAt
	expected := core.NewVec3(0, 0, -5)
	if !ray.Direction.ApproxEquals(expected, 1e-9) {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCameraGetRay_ThinLens(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 0.4
	config.FocusDistance = 3.0
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(7, 0)

	focusPoint := core.NewVec3(0, 0, -3)
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		if ray.Origin.Length() >= 0.2 {
			t.Fatalf("Ray origin %v outside lens of radius 0.2", ray.Origin)
		}
		if math.Abs(ray.Origin.Z) > 1e-12 {
			t.Fatalf("Ray origin %v should lie on the lens plane", ray.Origin)
		}
		// Every ray through the viewport center converges on the focus plane
		if hit := ray.At(1.0); !hit.ApproxEquals(focusPoint, 1e-9) {
			t.Fatalf("Expected ray to pass through %v, got %v", focusPoint, hit)
		}
	}
}

func TestCameraConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*CameraConfig)
		wantErr bool
	}{
		{"valid", func(c *CameraConfig) {}, false},
		{"automatic focus", func(c *CameraConfig) { c.FocusDistance = 0 }, false},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }, true},
		{"straight angle fov", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }, true},
		{"NaN aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }, true},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -0.1 }, true},
		{"negative focus", func(c *CameraConfig) { c.FocusDistance = -1 }, true},
		{"coincident look-at", func(c *CameraConfig) { c.LookAt = c.LookFrom }, true},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 2) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pinholeConfig()
			tt.modify(&config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
