package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (view up)
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus; 0 means |LookFrom - LookAt|
}

// Validate reports configurations that would produce a degenerate camera basis
func (c CameraConfig) Validate() error {
	var errs []error
	if !(c.VFov > 0 && c.VFov < 180) {
		errs = append(errs, fmt.Errorf("vertical fov must be in (0, 180), got %v", c.VFov))
	}
	if !(c.AspectRatio > 0) {
		errs = append(errs, fmt.Errorf("aspect ratio must be positive, got %v", c.AspectRatio))
	}
	if c.Aperture < 0 {
		errs = append(errs, fmt.Errorf("aperture must not be negative, got %v", c.Aperture))
	}
	if c.FocusDistance < 0 {
		errs = append(errs, fmt.Errorf("focus distance must not be negative, got %v", c.FocusDistance))
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		errs = append(errs, errors.New("look-from and look-at coincide"))
	} else if c.Up.Cross(view).NearZero() {
		errs = append(errs, errors.New("up vector is parallel to the view direction"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: camera: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Camera generates rays through a thin lens for depth of field.
// It is immutable after construction and safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration.
// The configuration is assumed valid; see CameraConfig.Validate.
func NewCamera(config CameraConfig) *Camera {
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	w := config.LookFrom.Subtract(config.LookAt).UnitVector()
	u := config.Up.Cross(w).UnitVector()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t), where (0, 0) is the lower-left
// corner of the viewport and (1, 1) the upper-right. The origin is jittered across the lens.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCameraForward returns the unit direction the camera is looking along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
