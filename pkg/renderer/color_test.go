package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), 1, color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), 1, color.RGBA{255, 255, 255, 255}},
		{"quarter is gamma corrected to half", core.NewVec3(0.25, 0.25, 0.25), 1, color.RGBA{127, 127, 127, 255}},
		{"sum is divided by sample count", core.NewVec3(1, 2, 4), 4, color.RGBA{127, 180, 255, 255}},
		{"overbright clamps", core.NewVec3(40, 3, 1), 1, color.RGBA{255, 255, 255, 255}},
		{"negative clamps to zero", core.NewVec3(-1, 0.25, -0.5), 1, color.RGBA{0, 127, 0, 255}},
		{"no samples is black", core.NewVec3(5, 5, 5), 0, color.RGBA{0, 0, 0, 255}},
		{"NaN is black", core.NewVec3(math.NaN(), 1, 0), 1, color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGBA(tt.sum, tt.samples)
			if got != tt.expected {
				t.Errorf("ToRGBA(%v, %d) = %v, want %v", tt.sum, tt.samples, got, tt.expected)
			}
		})
	}
}

func TestToRGBA_Monotonic(t *testing.T) {
	prev := uint8(0)
	for i := 0; i <= 1000; i++ {
		v := float64(i) / 1000
		got := ToRGBA(core.NewVec3(v, v, v), 1).R
		if got < prev {
			t.Fatalf("Expected monotonic output, value %f gave %d after %d", v, got, prev)
		}
		prev = got
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode written png: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Pixel not preserved: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestSavePNG_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "render.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	if err := SavePNG(path, img); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty file at %s (err=%v)", path, err)
	}
}
