package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Options controls how a render is scheduled
type Options struct {
	Workers       int   // Number of parallel workers (0 = one per CPU)
	Seed          int64 // Base seed; each row derives its own generator from it
	ProgressSteps int   // Number of progress lines logged per render (0 = 10)
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Workers:       0,
		Seed:          42,
		ProgressSteps: 10,
	}
}

// Raytracer drives the per-pixel sampling loop over a scene
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	config     scene.SamplingConfig
	options    Options
	logger     core.Logger
	pixels     [][]PixelStats // Indexed [y][x], row 0 is the top of the image
}

// NewRaytracer creates a new raytracer for the scene's sampling configuration.
// A nil integrator defaults to path tracing and a nil logger discards output.
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, options Options, logger core.Logger) *Raytracer {
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator(s.SamplingConfig)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	if options.ProgressSteps <= 0 {
		options.ProgressSteps = 10
	}

	rt := &Raytracer{
		scene:      s,
		integrator: integ,
		width:      s.SamplingConfig.Width,
		height:     s.SamplingConfig.Height,
		config:     s.SamplingConfig,
		options:    options,
		logger:     logger,
	}
	rt.resetPixels()
	return rt
}

func (rt *Raytracer) resetPixels() {
	if rt.width <= 0 || rt.height <= 0 {
		rt.pixels = nil
		return
	}
	rt.pixels = make([][]PixelStats, rt.height)
	for y := range rt.pixels {
		rt.pixels[y] = make([]PixelStats, rt.width)
	}
}

// rowSeed mixes the base seed with a row index so every row has an
// independent, reproducible random stream
func rowSeed(seed int64, row int) int64 {
	h := uint64(seed)*6364136223846793005 + uint64(row+1)*1442695040888963407
	h ^= h >> 33
	return int64(h)
}

// RenderPixel takes all samples for pixel (x, y), with y counted from the top
func (rt *Raytracer) RenderPixel(x, y int, sampler core.Sampler) PixelStats {
	camera := rt.scene.Camera
	ps := PixelStats{}

	// Camera coordinates count rows from the bottom
	j := rt.height - 1 - y
	uScale := float64(max(1, rt.width-1))
	vScale := float64(max(1, rt.height-1))

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := (float64(x) + sampler.Get1D()) / uScale
		v := (float64(j) + sampler.Get1D()) / vScale

		ray := camera.GetRay(u, v, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
	}
	return ps
}

// RenderRow renders every pixel of one row into the pixel buffer and
// returns the number of samples taken
func (rt *Raytracer) RenderRow(y int) int {
	sampler := core.NewSeededSampler(rowSeed(rt.options.Seed, y))
	samples := 0
	for x := 0; x < rt.width; x++ {
		rt.pixels[y][x] = rt.RenderPixel(x, y, sampler)
		samples += rt.pixels[y][x].SampleCount
	}
	return samples
}

// Render samples every pixel of the image in parallel.
// Rows not yet started when ctx is cancelled are skipped and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}
	rt.resetPixels()

	startTime := time.Now()
	pool := NewWorkerPool(rt, rt.height, rt.options.Workers)

	rt.logger.Printf("Rendering %s: %dx%d, %d samples/pixel, max depth %d (using %d workers)...\n",
		rt.scene.Name, rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	pool.Start(ctx)
	for y := 0; y < rt.height; y++ {
		pool.SubmitTask(RowTask{Row: y, TaskID: y})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
	}
	progressEvery := max(1, rt.height/rt.options.ProgressSteps)

	var firstErr error
	for completed := 1; completed <= rt.height; completed++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.TotalPixels += rt.width
		stats.TotalSamples += result.Samples
		if completed%progressEvery == 0 || completed == rt.height {
			rt.logger.Printf("Rows %d/%d (%.0f%%)\n", completed, rt.height, 100*float64(completed)/float64(rt.height))
		}
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if firstErr != nil {
		rt.logger.Printf("Rendering cancelled after %v\n", stats.Duration)
		return stats, firstErr
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return stats, nil
}

// Pixel returns the accumulated statistics of pixel (x, y), with y counted from the top
func (rt *Raytracer) Pixel(x, y int) PixelStats {
	return rt.pixels[y][x]
}

// Image converts the accumulated pixel sums into an 8-bit image
func (rt *Raytracer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			ps := rt.pixels[y][x]
			img.SetRGBA(x, y, ToRGBA(ps.ColorAccum, ps.SampleCount))
		}
	}
	return img
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int {
	return rt.width
}

// Height returns the image height in pixels
func (rt *Raytracer) Height() int {
	return rt.height
}
