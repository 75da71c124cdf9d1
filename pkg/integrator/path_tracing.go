package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ShadowEpsilon is the minimum hit distance accepted after a bounce.
// Hits closer than this are floating-point self-intersections with the surface the ray left.
const ShadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth: config.MaxDepth,
	}
}

// MaxDepth returns the bounce limit applied by RayColor
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single ray using the configured bounce limit
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return Trace(ray, s, sampler, pt.maxDepth)
}

// Trace follows a path for at most depth bounces.
// Each bounce multiplies the running throughput by the material attenuation;
// the path ends in the background on a miss, or in black when the ray is
// absorbed or depth runs out.
func Trace(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := s.Hit(ray, ShadowEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(s.Background.Color(ray.Direction()))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Ran out of bounces, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
