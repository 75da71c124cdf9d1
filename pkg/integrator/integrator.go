package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// RayColor returns a linear radiance estimate for one camera ray.
type Integrator interface {
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
