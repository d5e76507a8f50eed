package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// World is the ordered collection of shapes in a scene.
// It is populated before rendering and only read afterwards, so a single World can be
// shared by every render worker without locking.
type World struct {
	objects []Shape
}

// NewWorld creates a world containing the given shapes
func NewWorld(objects ...Shape) *World {
	w := &World{}
	w.Add(objects...)
	return w
}

// Add appends shapes to the world
func (w *World) Add(objects ...Shape) {
	w.objects = append(w.objects, objects...)
}

// Clear removes every shape
func (w *World) Clear() {
	w.objects = nil
}

// Len returns the number of shapes
func (w *World) Len() int {
	return len(w.objects)
}

// Objects returns the shapes in insertion order. The slice must not be modified.
func (w *World) Objects() []Shape {
	return w.objects
}

// Hit returns the nearest intersection across all shapes.
// Each shape is queried with the closest hit found so far as its upper bound.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range w.objects {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// Validate checks every shape that can validate itself
func (w *World) Validate() error {
	var errs []error
	for i, shape := range w.objects {
		if v, ok := shape.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("object %d: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}
