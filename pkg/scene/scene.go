package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.World
	CameraConfig renderer.CameraConfig
	Config       renderer.Config // Default render settings for this scene
}

// Camera builds the camera described by the scene's camera configuration
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// Validate checks the world, the camera and the render settings together
func (s *Scene) Validate() error {
	return errors.Join(
		s.World.Validate(),
		s.CameraConfig.Validate(),
		s.Config.Validate(),
	)
}

// heightFor derives the image height from a width and aspect ratio
func heightFor(width int, aspectRatio float64) int {
	return max(int(float64(width)/aspectRatio), 1)
}

// SetWidth changes the image width and keeps the height at the camera's aspect ratio
func (s *Scene) SetWidth(width int) {
	s.Config.Width = width
	s.Config.Height = heightFor(width, s.CameraConfig.AspectRatio)
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type sceneEntry struct {
	info   SceneInfo
	create func(seed uint64) *Scene
}

var registry = map[string]sceneEntry{
	"random": {
		info: SceneInfo{
			Description: "Ground sphere with a grid of small random spheres and three large feature spheres",
		},
		create: NewRandomScene,
	},
	"default": {
		info: SceneInfo{
			Description: "Diffuse sphere between two metal spheres with a glass sphere in front",
		},
		create: func(uint64) *Scene { return NewDefaultScene() },
	},
}

// Create builds the named scene. seed only affects procedurally populated scenes.
func Create(name string, seed uint64) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return entry.create(seed), nil
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns descriptions of every registered scene, sorted by display name
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for name, entry := range registry {
		info := entry.info
		info.ID = name
		info.DisplayName = titleCase(name)
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// titleCase converts "sphere-grid" or "sphere_grid" to "Sphere Grid"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
