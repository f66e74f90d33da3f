package filmic

// RuntimeData is what CommitParams produces: the spline plus every derived
// quantity the pixel transformer and reconstructor need, scoped to
// the lifetime of one pipeline piece (§3's "Lifecycles").
type RuntimeData struct {
	Spline Spline

	DynamicRange float32
	GreySource   float32 // as a fraction of full scale, not percent
	BlackSource  float32 // p.BlackPointSource, carried for log_tonemap's black argument
	OutputPower  float32
	Contrast     float32 // effective, clamped

	SigmaToe      float32
	SigmaShoulder float32
	Saturation    float32 // effective: 2*p.Saturation/100 + 1

	ReconstructThreshold          float32
	ReconstructFeather            float32
	ReconstructBloomVsDetails     float32 // remapped to 0..1
	ReconstructGreyVsColor        float32 // remapped to 0..1
	ReconstructStructureVsTexture float32 // remapped to 0..1
	HighQualityReconstruction     bool

	PreserveColor PreserveColor
	Version       ColorScienceVersion
}

// CommitParams builds RuntimeData from p, per §4.8. It clamps contrast
// upward when the uncontrolled value would let the latitude segment's
// y-intercept go positive — the degree-≥3 boundary conditions at the
// toe/shoulder nodes are only solvable when grey_display/grey_log is a
// strict lower bound on the committed slope, so this clamp runs before
// ComputeSpline rather than after.
func CommitParams(p Params) (RuntimeData, error) {
	dynamicRange := p.WhitePointSource - p.BlackPointSource
	greyLog := absf32(p.BlackPointSource) / dynamicRange

	var greyDisplay float32
	if p.CustomGrey {
		greyDisplay = powf(clampf(p.GreyPointTarget, p.BlackPointTarget, p.WhitePointTarget)/100.0, 1.0/p.OutputPower)
	} else {
		greyDisplay = powf(0.1845, 1.0/p.OutputPower)
	}

	contrast := clampf(p.Contrast, 0.1, 2.0)
	minContrast := 1.0001 * greyDisplay / greyLog
	if contrast < minContrast {
		contrast = minContrast
	}

	pc := p
	pc.Contrast = contrast

	spline, err := ComputeSpline(pc)
	if err != nil {
		return RuntimeData{}, err
	}

	latitudeMin := spline.LatitudeMin
	latitudeMax := spline.LatitudeMax

	sigmaToe := sqf(latitudeMin / 3.0)
	sigmaShoulder := sqf((1.0 - latitudeMax) / 3.0)

	greySource := p.GreyPointSource / 100.0
	saturation := 2.0*p.Saturation/100.0 + 1.0

	reconstructThreshold := powf(2.0, p.WhitePointSource+p.ReconstructThreshold) * greySource
	reconstructFeather := powf(2.0, 12.0/p.ReconstructFeather)

	return RuntimeData{
		Spline: spline,

		DynamicRange: dynamicRange,
		GreySource:   greySource,
		BlackSource:  p.BlackPointSource,
		OutputPower:  p.OutputPower,
		Contrast:     contrast,

		SigmaToe:      sigmaToe,
		SigmaShoulder: sigmaShoulder,
		Saturation:    saturation,

		ReconstructThreshold:          reconstructThreshold,
		ReconstructFeather:            reconstructFeather,
		ReconstructBloomVsDetails:     remap100(p.ReconstructBloomVsDetails),
		ReconstructGreyVsColor:        remap100(p.ReconstructGreyVsColor),
		ReconstructStructureVsTexture: remap100(p.ReconstructStructureVsTexture),
		HighQualityReconstruction:     p.HighQualityReconstruction,

		PreserveColor: p.PreserveColor,
		Version:       p.Version,
	}, nil
}

// remap100 maps a -100..+100 mix control to 0..1.
func remap100(v float32) float32 {
	return (v/100.0 + 1.0) / 2.0
}
