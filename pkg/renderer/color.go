package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ToRGBA converts an accumulated radiance sum of n samples to a display color.
// Each channel is averaged, clamped to [0,1], gamma corrected with gamma 2
// and truncated to 8 bits.
func ToRGBA(sum core.Vec3, samples int) color.RGBA {
	if samples <= 0 {
		return color.RGBA{A: 255}
	}

	c := sum.Multiply(1.0/float64(samples)).Clamp(0.0, 1.0)
	return color.RGBA{
		R: channelToByte(c.X),
		G: channelToByte(c.Y),
		B: channelToByte(c.Z),
		A: 255,
	}
}

func channelToByte(v float64) uint8 {
	if !(v > 0) { // Also catches NaN
		return 0
	}
	return uint8(255 * math.Sqrt(v))
}

// WritePNG encodes an image as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes an image to path, creating parent directories as needed
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePNG(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
