// Package filmicio is the host-side collaborator code the core
// package never depends on: image load/save, human-editable presets,
// ROI scaling, and debug dumps. None of this is part of the tone
// mapping engine itself — it exists so the engine has something
// real to run against.
package filmicio

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// Buffer is a 4-channel interleaved float32 scene-referred image: the
// exact shape filmic.Process reads and writes. It implements both
// image.Image and hdr.Image so it can be round-tripped through the
// RGBE codec and handed straight to filmic.Process without a copy.
type Buffer struct {
	Width, Height int
	Pix           []float32 // len == Width*Height*4
}

// NewBuffer allocates a zeroed buffer of the given size.
func NewBuffer(width, height int) Buffer {
	return Buffer{Width: width, Height: height, Pix: make([]float32, width*height*4)}
}

func (b Buffer) ColorModel() color.Model { return hdrcolor.RGBModel }
func (b Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }
func (b Buffer) Size() int               { return b.Width * b.Height }

func (b Buffer) At(x, y int) color.Color { return b.HDRAt(x, y) }

func (b Buffer) HDRAt(x, y int) hdrcolor.Color {
	o := (y*b.Width + x) * 4
	return hdrcolor.RGB{R: float64(b.Pix[o]), G: float64(b.Pix[o+1]), B: float64(b.Pix[o+2])}
}

func (b Buffer) Set(x, y int, r, g, b2, a float32) {
	o := (y*b.Width + x) * 4
	b.Pix[o], b.Pix[o+1], b.Pix[o+2], b.Pix[o+3] = r, g, b2, a
}

// LoadRGBE reads a Radiance RGBE (.hdr) scene-referred image from r
// into a Buffer, the engine's native carrier format.
func LoadRGBE(r io.Reader) (Buffer, error) {
	decoded, err := rgbe.Decode(r)
	if err != nil {
		return Buffer{}, fmt.Errorf("filmicio: decode RGBE: %w", err)
	}
	img, ok := decoded.(hdr.Image)
	if !ok {
		return Buffer{}, fmt.Errorf("filmicio: decode RGBE: unexpected image type %T", decoded)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	buf := NewBuffer(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.HDRAt(bounds.Min.X+x, bounds.Min.Y+y)
			r32, g32, b32, a32 := c.HDRRGBA()
			buf.Set(x, y, float32(r32), float32(g32), float32(b32), float32(a32))
		}
	}
	return buf, nil
}

// LoadRGBEFile opens path and decodes it as LoadRGBE does.
func LoadRGBEFile(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("filmicio: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadRGBE(f)
}

// SaveRGBE writes buf to w as a Radiance RGBE image.
func SaveRGBE(w io.Writer, buf Buffer) error {
	if err := rgbe.Encode(w, buf); err != nil {
		return fmt.Errorf("filmicio: encode RGBE: %w", err)
	}
	return nil
}

// SaveRGBEFile creates path and writes buf as in SaveRGBE.
func SaveRGBEFile(path string, buf Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("filmicio: create %q: %w", path, err)
	}
	defer f.Close()
	return SaveRGBE(f, buf)
}
