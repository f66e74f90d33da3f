package filmicio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/codahale/hdrhistogram"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/rawtone/filmicrgb/pkg/filmic"
)

// DumpMaskHeatmap renders a mask as a perceptually-even heat map PNG:
// low opacity maps to a cool blue, full opacity to a hot red, via
// go-colorful's Lab-space blend, the same family of use as the
// teacher's own FloatGrid.ToImg debug dumps.
func DumpMaskHeatmap(mask filmic.Mask, filename string) error {
	cool, _ := colorful.Hex("#2b3a67")
	hot, _ := colorful.Hex("#d62839")

	img := image.NewRGBA(image.Rect(0, 0, mask.Width, mask.Height))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			w := float64(mask.Weight[y*mask.Width+x])
			c := cool.BlendLab(hot, w)
			img.Set(x, y, c)
		}
	}
	return writePNG(img, filename)
}

// OverlayMask composites a mask heat map over a base preview
// thumbnail at the given opacity, using the standard library's
// image/draw the way the teacher's alignment step composites aligned
// layers — useful for spot-checking which pixels a run flagged as
// clipped against the actual image content.
func OverlayMask(base image.Image, mask filmic.Mask, opacity float64) image.Image {
	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, image.Point{}, draw.Src)

	cool, _ := colorful.Hex("#2b3a67")
	hot, _ := colorful.Hex("#d62839")

	heat := image.NewRGBA(out.Bounds())
	alpha := image.NewAlpha(out.Bounds())
	b := base.Bounds()
	for y := 0; y < mask.Height && y < b.Dy(); y++ {
		for x := 0; x < mask.Width && x < b.Dx(); x++ {
			w := float64(mask.Weight[y*mask.Width+x])
			c := cool.BlendLab(hot, w)
			px, py := b.Min.X+x, b.Min.Y+y
			heat.Set(px, py, c)
			alpha.SetAlpha(px, py, color.Alpha{A: uint8(clamp01to255(opacity * w))})
		}
	}

	draw.DrawMask(out, out.Bounds(), heat, image.Point{}, alpha, image.Point{}, draw.Over)
	return out
}

func clamp01to255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return v * 255
}

// DumpCurve plots the synthesized spline over [0,1] as a PNG line
// chart via fogleman/gg, in the same "render a debug PNG with gg"
// manner as the teacher's fattal02.MaybeDumpGrid.
func DumpCurve(spline filmic.Spline, filename string) error {
	const size = 512
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	for i := 0; i <= 10; i++ {
		t := float64(i) / 10 * size
		dc.DrawLine(t, 0, t, size)
		dc.DrawLine(0, t, size, t)
	}
	dc.Stroke()

	dc.SetRGB(0.85, 0.3, 0.2)
	dc.SetLineWidth(2)
	const n = 256
	for i := 0; i <= n; i++ {
		x := float32(i) / float32(n)
		y := spline.Eval(x)
		px := float64(x) * size
		py := size - float64(y)*size
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.Stroke()

	return dc.SavePNG(filename)
}

// HighlightStats summarizes a distribution of pixel norms (cmd/filmicrgb
// records the norm of every input pixel) using codahale/hdrhistogram,
// letting a host tune threshold/feather by inspecting where norms
// cluster.
type HighlightStats struct {
	hist *hdrhistogram.Histogram
}

// NewHighlightStats builds a stats collector over norms in
// [0, maxNorm] (scaled to integer buckets internally, since
// hdrhistogram only tracks integers) at the given significant-figure
// precision.
func NewHighlightStats(maxNorm float64, sigfigs int) *HighlightStats {
	const scale = 1_000_000
	return &HighlightStats{hist: hdrhistogram.New(0, int64(maxNorm*scale), sigfigs)}
}

const highlightStatsScale = 1_000_000

func (s *HighlightStats) Record(norm float32) {
	_ = s.hist.RecordValue(int64(float64(norm) * highlightStatsScale))
}

func (s *HighlightStats) String() string {
	return fmt.Sprintf("count=%d mean=%.4f p50=%.4f p95=%.4f p99=%.4f max=%.4f",
		s.hist.TotalCount(),
		s.hist.Mean()/highlightStatsScale,
		float64(s.hist.ValueAtQuantile(50))/highlightStatsScale,
		float64(s.hist.ValueAtQuantile(95))/highlightStatsScale,
		float64(s.hist.ValueAtQuantile(99))/highlightStatsScale,
		float64(s.hist.Max())/highlightStatsScale,
	)
}

func writePNG(img image.Image, filename string) error {
	dc := gg.NewContextForImage(img)
	return dc.SavePNG(filename)
}
