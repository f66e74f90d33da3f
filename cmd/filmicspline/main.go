package main

import (
	"flag"
	"log"

	"github.com/rawtone/filmicrgb/pkg/filmic"
	"github.com/rawtone/filmicrgb/pkg/filmicio"
)

var (
	fPreset   string
	fOutput   string
	fLatitude float64
	fContrast float64
	fBalance  float64
)

func init() {
	flag.StringVar(&fPreset, "preset", "", "YAML preset file to load (default params if empty)")
	flag.StringVar(&fOutput, "o", "curve.png", "output PNG path")
	flag.Float64Var(&fLatitude, "latitude", -1, "override latitude (%), -1 leaves the preset/default value")
	flag.Float64Var(&fContrast, "contrast", -1, "override contrast, -1 leaves the preset/default value")
	flag.Float64Var(&fBalance, "balance", -1000, "override balance (-50..50), -1000 leaves the preset/default value")
	flag.Parse()

	log.Printf("filmicspline starting\n")
}

func main() {
	params := filmic.DefaultParams()
	if fPreset != "" {
		pr, err := filmicio.LoadPresetFile(fPreset)
		if err != nil {
			log.Fatalf("load preset %q: %v", fPreset, err)
		}
		params = pr.ToParams()
	}

	if fLatitude >= 0 {
		params.Latitude = float32(fLatitude)
	}
	if fContrast >= 0 {
		params.Contrast = float32(fContrast)
	}
	if fBalance > -1000 {
		params.Balance = float32(fBalance)
	}

	spline, err := filmic.ComputeSpline(params)
	if err != nil {
		log.Fatalf("compute spline: %v", err)
	}

	if err := filmicio.DumpCurve(spline, fOutput); err != nil {
		log.Fatalf("dump curve: %v", err)
	}
	log.Printf("wrote %q (latitude=[%.4f,%.4f])\n", fOutput, spline.LatitudeMin, spline.LatitudeMax)
}
