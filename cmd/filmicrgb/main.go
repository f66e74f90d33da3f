package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rawtone/filmicrgb/pkg/ecolor"
	"github.com/rawtone/filmicrgb/pkg/emath"
	"github.com/rawtone/filmicrgb/pkg/filmic"
	"github.com/rawtone/filmicrgb/pkg/filmicio"
)

var (
	fPreset        string
	fOutput        string
	fShowMask      bool
	fStats         bool
	fMaskPNG       string
	fOverlayPNG    string
	fHighQuality   bool
	fAsShotNeutral string
	fForwardMatrix string
)

func init() {
	flag.StringVar(&fPreset, "preset", "", "YAML preset file to load (default params if empty)")
	flag.StringVar(&fOutput, "o", "filmic.hdr", "output RGBE file")
	flag.BoolVar(&fShowMask, "showmask", false, "write the clipping mask instead of the tonemapped image")
	flag.BoolVar(&fStats, "stats", false, "log a highlight-norm histogram summary after processing")
	flag.StringVar(&fMaskPNG, "maskpng", "", "also dump a heat-map PNG of the clipping mask to this path")
	flag.StringVar(&fOverlayPNG, "overlaypng", "", "also dump a preview thumbnail with the mask overlaid to this path")
	flag.BoolVar(&fHighQuality, "hq", false, "force high quality (two-pass ratios) highlight reconstruction")
	flag.StringVar(&fAsShotNeutral, "asshotneutral", "", "comma-separated r,g,b camera white balance; with -forwardmatrix, replaces the default sRGB working profile")
	flag.StringVar(&fForwardMatrix, "forwardmatrix", "", "comma-separated 9-value DNG ForwardMatrix (row-major)")
	flag.Parse()

	log.Printf("filmicrgb starting\n")
}

// workingProfile picks the host's working profile: the camera's own
// DNG color science when both -asshotneutral and -forwardmatrix are
// given, the default sRGB profile otherwise.
func workingProfile() filmic.WorkingProfile {
	if fAsShotNeutral == "" || fForwardMatrix == "" {
		return filmic.NewSRGBProfile()
	}
	neutral, err := parseVec3(fAsShotNeutral)
	if err != nil {
		log.Fatalf("-asshotneutral: %v", err)
	}
	matrix, err := parseMat3(fForwardMatrix)
	if err != nil {
		log.Fatalf("-forwardmatrix: %v", err)
	}
	return ecolor.CameraProfile{AsShotNeutral: neutral, ForwardMatrix: matrix}
}

func parseVec3(s string) (emath.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return emath.Vec3{}, fmt.Errorf("want 3 comma-separated values, got %d", len(parts))
	}
	var v emath.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return emath.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

func parseMat3(s string) (emath.Mat3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 9 {
		return emath.Mat3{}, fmt.Errorf("want 9 comma-separated values, got %d", len(parts))
	}
	var m emath.Mat3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return emath.Mat3{}, err
		}
		m[i] = f
	}
	return m, nil
}

func main() {
	if flag.NArg() != 1 {
		log.Fatalf("usage: filmicrgb [flags] input.hdr")
	}
	inPath := flag.Arg(0)

	buf, err := filmicio.LoadRGBEFile(inPath)
	if err != nil {
		log.Fatalf("load %q: %v", inPath, err)
	}
	log.Printf("loaded %q: %dx%d\n", inPath, buf.Width, buf.Height)

	params := filmic.DefaultParams()
	if fPreset != "" {
		pr, err := filmicio.LoadPresetFile(fPreset)
		if err != nil {
			log.Fatalf("load preset %q: %v", fPreset, err)
		}
		params = pr.ToParams()
		log.Printf("loaded preset %q: %s\n", fPreset, pr.Name)
	}
	if fHighQuality {
		params.HighQualityReconstruction = true
	}

	rd, err := filmic.CommitParams(params)
	if err != nil {
		log.Fatalf("commit params: %v", err)
	}

	profile := workingProfile()
	roi := filmic.ROI{Width: buf.Width, Height: buf.Height, Scale: 1.0}
	maxDim := buf.Width
	if buf.Height > maxDim {
		maxDim = buf.Height
	}

	out := filmicio.NewBuffer(buf.Width, buf.Height)
	result := filmic.Process(buf.Pix, out.Pix, roi, roi, rd, filmic.ProcessOptions{
		Profile:  profile,
		MaxDim:   maxDim,
		ShowMask: fShowMask,
		Logger:   log.Default(),
	})

	if result.ReconstructionRan {
		log.Printf("highlight reconstruction ran (clipped=%d)\n", result.Mask.ClippedCount)
	}

	if fStats {
		stats := filmicio.NewHighlightStats(8.0, 3)
		for i := 0; i < len(buf.Pix); i += 4 {
			r, g, b := buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]
			norm := filmic.GetPixelNorm([3]float32{r, g, b}, params.PreserveColor, profile)
			stats.Record(norm)
		}
		log.Printf("highlight stats: %s\n", stats.String())
	}

	if fMaskPNG != "" {
		mask := result.Mask
		if mask.Width == 0 {
			mask = filmic.BuildMask(buf.Pix, buf.Width, buf.Height, rd.ReconstructThreshold, rd.ReconstructFeather)
		}
		if err := filmicio.DumpMaskHeatmap(mask, fMaskPNG); err != nil {
			log.Fatalf("dump mask png: %v", err)
		}
		log.Printf("wrote mask heatmap to %q\n", fMaskPNG)
	}

	if fOverlayPNG != "" {
		mask := result.Mask
		if mask.Width == 0 {
			mask = filmic.BuildMask(buf.Pix, buf.Width, buf.Height, rd.ReconstructThreshold, rd.ReconstructFeather)
		}
		preview := filmicio.PreviewThumbnail(buf, buf.Width)
		overlay := filmicio.OverlayMask(preview, mask, 0.6)
		if err := writePNGFile(fOverlayPNG, overlay); err != nil {
			log.Fatalf("dump overlay png: %v", err)
		}
		log.Printf("wrote mask overlay to %q\n", fOverlayPNG)
	}

	if err := filmicio.SaveRGBEFile(fOutput, out); err != nil {
		log.Fatalf("save %q: %v", fOutput, err)
	}
	log.Printf("wrote %q\n", fOutput)
}

func writePNGFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
