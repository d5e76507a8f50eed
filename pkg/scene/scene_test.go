package scene

import (
	"errors"
	"slices"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

func TestRandomScene_Structure(t *testing.T) {
	world := RandomScene(3, core.NewSeededSampler(5, 0))

	objects := world.Objects()
	// Ground, at most 6x6 small spheres, three feature spheres
	if len(objects) < 4 || len(objects) > 1+36+3 {
		t.Fatalf("Unexpected object count %d", len(objects))
	}

	ground, ok := objects[0].(*geometry.Sphere)
	if !ok || ground.Radius != 1000 || !ground.Center.Equals(core.NewVec3(0, -1000, 0)) {
		t.Errorf("First object should be the ground sphere, got %+v", objects[0])
	}

	for i, obj := range objects[1 : len(objects)-3] {
		sphere := obj.(*geometry.Sphere)
		if sphere.Radius != smallRadius || sphere.Center.Y != smallRadius {
			t.Errorf("Small sphere %d has unexpected placement %+v", i, sphere)
		}
		if sphere.Center.Subtract(reservedPoint).Length() <= reservedSpacing {
			t.Errorf("Small sphere %d at %v is too close to the reserved point", i, sphere.Center)
		}
		if sphere.Center.X < -3 || sphere.Center.X >= 3 || sphere.Center.Z < -3 || sphere.Center.Z >= 3 {
			t.Errorf("Small sphere %d at %v is outside the grid", i, sphere.Center)
		}
		if metal, ok := sphere.Material.(*material.Metal); ok && metal.Fuzzness > 0.5 {
			t.Errorf("Small metal sphere %d has fuzz %v above 0.5", i, metal.Fuzzness)
		}
	}

	features := objects[len(objects)-3:]
	if _, ok := features[0].(*geometry.Sphere).Material.(*material.Dielectric); !ok {
		t.Error("Center feature sphere should be glass")
	}
	if _, ok := features[1].(*geometry.Sphere).Material.(*material.Lambertian); !ok {
		t.Error("Left feature sphere should be diffuse")
	}
	if _, ok := features[2].(*geometry.Sphere).Material.(*material.Metal); !ok {
		t.Error("Right feature sphere should be metal")
	}

	if err := world.Validate(); err != nil {
		t.Errorf("Random scene should validate, got %v", err)
	}
}

func TestRandomScene_Deterministic(t *testing.T) {
	a := RandomScene(4, core.NewSeededSampler(9, 1))
	b := RandomScene(4, core.NewSeededSampler(9, 1))

	if a.Len() != b.Len() {
		t.Fatalf("Same seed produced %d and %d objects", a.Len(), b.Len())
	}
	for i := range a.Objects() {
		sa := a.Objects()[i].(*geometry.Sphere)
		sb := b.Objects()[i].(*geometry.Sphere)
		if !sa.Center.Equals(sb.Center) {
			t.Fatalf("Object %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}
}

func TestRandomScene_ZeroExtent(t *testing.T) {
	world := RandomScene(0, core.NewSeededSampler(1, 0))

	if world.Len() != 4 {
		t.Errorf("Expected ground plus three feature spheres, got %d objects", world.Len())
	}
}

func TestBuiltinScenesValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name, 42)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene %q does not validate: %v", name, err)
			}
			if s.Camera() == nil {
				t.Error("Expected a camera")
			}
		})
	}
}

func TestNewRandomScene_Settings(t *testing.T) {
	s := NewRandomScene(7)

	if s.Config.Width != 900 || s.Config.Height != 600 {
		t.Errorf("Expected 900x600, got %dx%d", s.Config.Width, s.Config.Height)
	}
	if s.Config.SamplesPerPixel != 10 || s.Config.MaxDepth != 50 {
		t.Errorf("Unexpected sampling settings %+v", s.Config)
	}
	if s.Config.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", s.Config.Seed)
	}
	if s.CameraConfig.VFov != 20 || s.CameraConfig.Aperture != 0.1 || s.CameraConfig.FocusDistance != 10 {
		t.Errorf("Unexpected camera %+v", s.CameraConfig)
	}
}

func TestScene_SetWidth(t *testing.T) {
	s := NewRandomScene(1)
	s.SetWidth(300)

	if s.Config.Width != 300 || s.Config.Height != 200 {
		t.Errorf("Expected 300x200, got %dx%d", s.Config.Width, s.Config.Height)
	}

	s.SetWidth(1)
	if s.Config.Height != 1 {
		t.Errorf("Height should never drop below 1, got %d", s.Config.Height)
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("cornell", 0)
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNamesAndList(t *testing.T) {
	names := Names()
	if !slices.Equal(names, []string{"default", "random"}) {
		t.Errorf("Unexpected names %v", names)
	}

	list := List()
	if len(list) != len(names) {
		t.Fatalf("Expected %d scene infos, got %d", len(names), len(list))
	}
	if list[0].ID != "default" || list[0].DisplayName != "Default" || list[0].Description == "" {
		t.Errorf("Unexpected first scene info %+v", list[0])
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"random", "Random"},
		{"sphere-grid", "Sphere Grid"},
		{"my_custom_scene", "My Custom Scene"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
