package filmicio

import (
	"image"

	"github.com/nfnt/resize"
)

// ScaleWorkingBuffer resamples buf to roughly 1/factor of its linear
// dimensions by 2x2-block averaging, repeated log2(factor) times. This
// is the float32, full-dynamic-range analogue of the teacher's
// FloatGrid.DownSample — unlike an LDR image resizer, it never clamps
// through an 8/16-bit color.Color, so a pixel well above 1.0 survives
// the resample intact for the wavelet reconstructor to still see as
// clipped.
//
// factor must be a power of two >= 1; it's the host's real preview
// scale, and its reciprocal is the roi.scale for Process's scale-count
// formula.
func ScaleWorkingBuffer(buf Buffer, factor int) Buffer {
	cur := buf
	for factor > 1 {
		cur = downsampleOnce(cur)
		factor /= 2
	}
	return cur
}

func downsampleOnce(buf Buffer) Buffer {
	width := buf.Width / 2
	height := buf.Height / 2
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	out := NewBuffer(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum [4]float32
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					sx := minInt(2*x+dx, buf.Width-1)
					sy := minInt(2*y+dy, buf.Height-1)
					o := (sy*buf.Width + sx) * 4
					sum[0] += buf.Pix[o]
					sum[1] += buf.Pix[o+1]
					sum[2] += buf.Pix[o+2]
					sum[3] += buf.Pix[o+3]
				}
			}
			out.Set(x, y, sum[0]/4, sum[1]/4, sum[2]/4, sum[3]/4)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// PreviewThumbnail renders buf as a display-referred (clamped to
// [0,1]) LDR thumbnail at the given width, preserving aspect ratio.
// This is deliberately lossy — it exists for quick-look debug output,
// not as input to the tone mapping engine itself, which runs on
// full-range float32 data (the full buffer, or ScaleWorkingBuffer's
// output).
func PreviewThumbnail(buf Buffer, width int) image.Image {
	rgba := image.NewRGBA(buf.Bounds())
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			rgba.Set(x, y, buf.At(x, y))
		}
	}
	return resize.Resize(uint(width), 0, rgba, resize.Lanczos3)
}
