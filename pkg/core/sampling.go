package core

import (
	"math/rand/v2"
)

// Sampler provides random numbers for rendering algorithms.
// Every render task owns its sampler; samplers are never shared between goroutines.
type Sampler interface {
	Get1D() float64
}

// RandomSampler wraps a Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler on a PCG stream identified by (seed, stream).
// Distinct stream values give independent sequences for the same seed.
func NewSeededSampler(seed, stream uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewPCG(seed, stream))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// RandomRange returns a random float64 in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector with components uniform in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}

// RandomVec3Range returns a vector with components uniform in [min, max)
func RandomVec3Range(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(
		RandomRange(sampler, min, max),
		RandomRange(sampler, min, max),
		RandomRange(sampler, min, max),
	)
}

// RandomInUnitSphere returns a random point strictly inside the unit ball
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3Range(sampler, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a random direction on the surface of the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// Reject points too close to the center, where normalization loses precision
		if p.LengthSquared() > 1e-160 {
			return p.UnitVector()
		}
	}
}

// RandomInUnitDisk generates a random point in a unit disk on the z=0 plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(RandomRange(sampler, -1, 1), RandomRange(sampler, -1, 1), 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
