package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates the four-sphere scene: fuzzy metal ground, a diffuse
// center sphere flanked by glass and a gold mirror.
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(-3, 1, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          30.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Focus on the look-at point
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene("default", cameraConfig)
	s.SamplingConfig = SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	// Materials are shared by pointer between spheres
	groundMetal := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	centerDiffuse := material.NewLambertian(core.NewVec3(0.0, 1.0, 1.0))
	leftGlass := material.NewDielectric(1.5)
	rightGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, groundMetal)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, centerDiffuse)
	s.AddSphere(core.NewVec3(-1.1, 0, -1), 0.5, leftGlass)
	s.AddSphere(core.NewVec3(1.1, 0, -1), 0.5, rightGold)

	return s
}

// NewHollowGlassScene replaces the solid glass sphere with a thin bubble.
// The inner sphere has a negative radius so its normals point inward.
func NewHollowGlassScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewDefaultScene(cameraOverrides...)
	s.Name = "hollow-glass"

	glass := material.NewDielectric(1.5)
	s.World.Clear()
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.AddSphere(core.NewVec3(-1.1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1.1, 0, -1), -0.4999, glass)
	s.AddSphere(core.NewVec3(1.1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))

	return s
}
