package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestBackground_Color(t *testing.T) {
	bg := DefaultBackground()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon is the midpoint", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bg.Color(tt.direction)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSamplingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  SamplingConfig
		wantErr bool
	}{
		{"default", DefaultSamplingConfig(), false},
		{"zero depth allowed", SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 1, MaxDepth: 0}, false},
		{"zero width", SamplingConfig{Width: 0, Height: 2, SamplesPerPixel: 1, MaxDepth: 1}, true},
		{"negative height", SamplingConfig{Width: 2, Height: -1, SamplesPerPixel: 1, MaxDepth: 1}, true},
		{"zero samples", SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 0, MaxDepth: 1}, true},
		{"negative depth", SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 1, MaxDepth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	base := DefaultSamplingConfig()
	merged := MergeSamplingConfig(base, SamplingConfig{SamplesPerPixel: 7, Width: 64})

	if merged.SamplesPerPixel != 7 || merged.Width != 64 {
		t.Errorf("Override fields not applied: %+v", merged)
	}
	if merged.Height != base.Height || merged.MaxDepth != base.MaxDepth {
		t.Errorf("Zero override fields should keep base values: %+v", merged)
	}
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if err := s.Validate(); err != nil {
		t.Fatalf("Default scene should be valid: %v", err)
	}
	if s.GetPrimitiveCount() != 4 {
		t.Errorf("Expected 4 spheres, got %d", s.GetPrimitiveCount())
	}

	// The center sphere sits at (0,0,-1): a ray from the origin hits it at t=0.5
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := s.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected ray to hit the center sphere")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got %f", hit.T)
	}
	if _, ok := hit.Material.(*material.Lambertian); !ok {
		t.Errorf("Expected lambertian center sphere, got %T", hit.Material)
	}

	// Auto focus resolves to the look-at distance
	if s.CameraConfig.FocusDistance != 0 {
		t.Errorf("Expected auto focus distance, got %f", s.CameraConfig.FocusDistance)
	}
}

func TestNewDefaultScene_CameraOverride(t *testing.T) {
	s := NewDefaultScene(geometry.CameraConfig{Aperture: 0.5, VFov: 60})

	if s.CameraConfig.Aperture != 0.5 || s.CameraConfig.VFov != 60 {
		t.Errorf("Camera overrides not applied: %+v", s.CameraConfig)
	}
	if s.Camera.LensRadius() != 0.25 {
		t.Errorf("Expected lens radius 0.25, got %f", s.Camera.LensRadius())
	}
}

func TestNewHollowGlassScene_SharesGlassMaterial(t *testing.T) {
	s := NewHollowGlassScene()

	var glassSpheres []*geometry.Sphere
	for _, shape := range s.World.Shapes() {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Unexpected shape type %T", shape)
		}
		if _, isGlass := sphere.Material.(*material.Dielectric); isGlass {
			glassSpheres = append(glassSpheres, sphere)
		}
	}

	if len(glassSpheres) != 2 {
		t.Fatalf("Expected outer and inner glass spheres, got %d", len(glassSpheres))
	}
	if glassSpheres[0].Material != glassSpheres[1].Material {
		t.Error("Expected the bubble's spheres to share one material instance")
	}
	if glassSpheres[1].Radius >= 0 {
		t.Errorf("Expected negative inner radius, got %f", glassSpheres[1].Radius)
	}
}

func TestNewSphereGridScene_Deterministic(t *testing.T) {
	a := NewSphereGridScene()
	b := NewSphereGridScene()

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Expected identical layouts, got %d and %d spheres", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	if a.GetPrimitiveCount() < 100 {
		t.Errorf("Expected a dense sphere field, got %d spheres", a.GetPrimitiveCount())
	}

	for i, shape := range a.World.Shapes() {
		sa := shape.(*geometry.Sphere)
		sb := b.World.Shapes()[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs between builds", i)
		}
	}

	if err := a.Validate(); err != nil {
		t.Errorf("Sphere grid scene should be valid: %v", err)
	}
}

func TestOklchToRGB_InRange(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 15 {
		c := oklchToRGB(0.65, 0.15, hue)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("Color for hue %f out of range: %v", hue, c)
		}
	}
}

func TestScene_Validate(t *testing.T) {
	s := NewScene("broken", geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        0,
	})
	if err := s.Validate(); err == nil {
		t.Error("Expected error for zero field of view")
	}
}
