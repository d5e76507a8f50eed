package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ErrInvalidSphere is returned by Validate for spheres that cannot be intersected reliably
var ErrInvalidSphere = errors.New("invalid sphere")

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Validate reports spheres with a non-positive or non-finite radius, a non-finite center or no material
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidSphere, s.Radius)
	}
	if s.Center.HasNaN() || math.IsInf(s.Center.X, 0) || math.IsInf(s.Center.Y, 0) || math.IsInf(s.Center.Z, 0) {
		return fmt.Errorf("%w: center must be finite, got %v", ErrInvalidSphere, s.Center)
	}
	if s.Material == nil {
		return fmt.Errorf("%w: missing material", ErrInvalidSphere)
	}
	return nil
}

// Hit tests if a ray intersects with the sphere.
// The near root is tried first and the far root second; a root is valid only when it lies
// strictly inside (tMin, tMax).
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
