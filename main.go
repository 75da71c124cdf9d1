package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds all command line configuration
type Config struct {
	SceneType       string
	Width           int   // 0 = scene default
	Height          int   // 0 = scene default
	SamplesPerPixel int   // 0 = scene default
	MaxDepth        int   // negative = scene default
	Workers         int   // 0 = one per CPU
	Seed            int64 // Base random seed
	Output          string
	Help            bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := renderer.NewDefaultLogger()
	if _, err := run(ctx, config, logger, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene name ("+strings.Join(scene.Names(), ", ")+") or path to a .json scene file")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&config.SamplesPerPixel, "spp", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.MaxDepth, "depth", -1, "Maximum ray bounce depth (negative = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&config.Seed, "seed", 42, "Random seed")
	flag.StringVar(&config.Output, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Go Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Println("  <file>.json    Scene described in JSON (see scenes/three-spheres.json)")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

// run renders the configured scene and writes the PNG, returning its path
func run(ctx context.Context, config Config, logger core.Logger, now time.Time) (string, error) {
	s, err := createScene(config.SceneType)
	if err != nil {
		return "", err
	}
	if err := applyOverrides(s, config); err != nil {
		return "", err
	}

	logger.Printf("Using %s scene (%d spheres)\n", s.Name, s.GetPrimitiveCount())

	rt := renderer.NewRaytracer(s, integrator.NewPathTracingIntegrator(s.SamplingConfig),
		renderer.Options{Workers: config.Workers, Seed: config.Seed}, logger)
	stats, err := rt.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}

	img := rt.Image()
	logger.Printf("Rendered %d pixels at %d samples/pixel with %d workers in %v (average luminance %.3f)\n",
		stats.TotalPixels, stats.SamplesPerPixel, stats.Workers, stats.Duration, renderer.CalculateAverageLuminance(img))

	path := outputPath(config, s.Name, now)
	if err := renderer.SavePNG(path, img); err != nil {
		return "", err
	}
	logger.Printf("Render saved as %s\n", path)
	return path, nil
}

// createScene creates a built-in scene by name, or loads a .json scene file
func createScene(sceneType string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(sceneType), ".json") {
		return loaders.LoadSceneFile(sceneType)
	}
	return scene.Lookup(sceneType)
}

// applyOverrides merges command line sampling settings onto the scene defaults.
// Setting only one image dimension keeps the camera's aspect ratio; setting
// both changes the camera to match.
func applyOverrides(s *scene.Scene, config Config) error {
	override := scene.SamplingConfig{
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.SamplesPerPixel,
	}
	aspect := s.CameraConfig.AspectRatio

	switch {
	case config.Width > 0 && config.Height > 0:
		s.SetCameraConfig(geometry.MergeCameraConfig(s.CameraConfig, geometry.CameraConfig{
			AspectRatio: float64(config.Width) / float64(config.Height),
		}))
	case config.Width > 0 && aspect > 0:
		override.Height = max(1, int(math.Round(float64(config.Width)/aspect)))
	case config.Height > 0 && aspect > 0:
		override.Width = max(1, int(math.Round(float64(config.Height)*aspect)))
	}

	s.SamplingConfig = scene.MergeSamplingConfig(s.SamplingConfig, override)
	if config.MaxDepth >= 0 {
		s.SamplingConfig.MaxDepth = config.MaxDepth
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// outputPath returns the explicit output path or a timestamped default
func outputPath(config Config, sceneName string, now time.Time) string {
	if config.Output != "" {
		return config.Output
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}
