package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// SceneFile is the JSON description of a sphere scene.
// Vectors are objects with x, y and z keys.
type SceneFile struct {
	Name       string                 `json:"name,omitempty"`
	Camera     CameraCfg              `json:"camera"`
	Sampling   SamplingCfg            `json:"sampling"`
	Background *BackgroundCfg         `json:"background,omitempty"`
	Materials  map[string]MaterialCfg `json:"materials"`
	Spheres    []SphereCfg            `json:"spheres"`
}

type CameraCfg struct {
	Center        core.Vec3 `json:"center"`
	LookAt        core.Vec3 `json:"lookAt"`
	Up            core.Vec3 `json:"up"`                    // defaults to +y
	AspectRatio   float64   `json:"aspectRatio,omitempty"` // defaults to width/height
	VFov          float64   `json:"vfov"`
	Aperture      float64   `json:"aperture,omitempty"`
	FocusDistance float64   `json:"focusDistance,omitempty"` // 0 focuses on lookAt
}

// SamplingCfg overrides the default sampling configuration field by field.
// Zero sizes and sample counts keep the defaults; MaxDepth is a pointer so
// an explicit 0 is kept.
type SamplingCfg struct {
	Width           int  `json:"width,omitempty"`
	Height          int  `json:"height,omitempty"`
	SamplesPerPixel int  `json:"spp,omitempty"`
	MaxDepth        *int `json:"maxDepth,omitempty"`
}

type BackgroundCfg struct {
	Top    core.Vec3 `json:"top"`
	Bottom core.Vec3 `json:"bottom"`
}

// MaterialCfg describes one named material. Type is one of
// "lambertian", "metal" or "dielectric".
type MaterialCfg struct {
	Type   string    `json:"type"`
	Albedo core.Vec3 `json:"albedo"`
	Fuzz   float64   `json:"fuzz,omitempty"`
	IOR    float64   `json:"ior,omitempty"`
}

type SphereCfg struct {
	Center   core.Vec3 `json:"center"`
	Radius   float64   `json:"radius"` // negative radius flips the normal
	Material string    `json:"material"`
}

// Build creates the material described by the config
func (mc MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(mc.Type) {
	case "lambertian":
		return material.NewLambertian(mc.Albedo), nil
	case "metal":
		if mc.Fuzz < 0 {
			return nil, fmt.Errorf("metal fuzz must not be negative, got %g", mc.Fuzz)
		}
		return material.NewMetal(mc.Albedo, mc.Fuzz), nil
	case "dielectric":
		if mc.IOR <= 0 {
			return nil, fmt.Errorf("dielectric ior must be positive, got %g", mc.IOR)
		}
		return material.NewDielectric(mc.IOR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// Build creates the sphere using a material from the named set
func (sc SphereCfg) Build(materials map[string]material.Material) (*geometry.Sphere, error) {
	if sc.Radius == 0 {
		return nil, fmt.Errorf("sphere radius must be non-zero")
	}
	mat, ok := materials[sc.Material]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", sc.Material)
	}
	return geometry.NewSphere(sc.Center, sc.Radius, mat), nil
}

// LoadSceneFile reads and builds a JSON scene file.
// The scene name defaults to the file name without extension.
func LoadSceneFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	defaultName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := parseScene(data, defaultName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene builds a scene from JSON data
func ParseScene(data []byte) (*scene.Scene, error) {
	return parseScene(data, "json")
}

func parseScene(data []byte, defaultName string) (*scene.Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid scene json: %w", err)
	}

	name := file.Name
	if name == "" {
		name = defaultName
	}

	sampling := scene.MergeSamplingConfig(scene.DefaultSamplingConfig(), scene.SamplingConfig{
		Width:           file.Sampling.Width,
		Height:          file.Sampling.Height,
		SamplesPerPixel: file.Sampling.SamplesPerPixel,
	})
	if file.Sampling.MaxDepth != nil {
		sampling.MaxDepth = *file.Sampling.MaxDepth
	}

	cameraConfig := geometry.CameraConfig{
		Center:        file.Camera.Center,
		LookAt:        file.Camera.LookAt,
		Up:            file.Camera.Up,
		AspectRatio:   file.Camera.AspectRatio,
		VFov:          file.Camera.VFov,
		Aperture:      file.Camera.Aperture,
		FocusDistance: file.Camera.FocusDistance,
	}
	if cameraConfig.Up == (core.Vec3{}) {
		cameraConfig.Up = core.NewVec3(0, 1, 0)
	}
	if cameraConfig.AspectRatio == 0 && sampling.Height > 0 {
		cameraConfig.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	}

	s := scene.NewScene(name, cameraConfig)
	s.SamplingConfig = sampling
	if file.Background != nil {
		s.Background = scene.Background{Top: file.Background.Top, Bottom: file.Background.Bottom}
	}

	// Build each named material once so spheres share it
	names := make([]string, 0, len(file.Materials))
	for name := range file.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		mat, err := file.Materials[name].Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, sc := range file.Spheres {
		sphere, err := sc.Build(materials)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(sphere)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
