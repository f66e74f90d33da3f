// Package filmic implements the scene-referred-to-display-referred
// tone mapping core described for the filmic rgb module: curve
// synthesis, the pixel transformer and the à-trous highlight
// reconstruction. The package does no image I/O and holds no mutable
// shared state; every exported entry point is a pure transform over
// caller-supplied buffers.
package filmic

// PreserveColor selects how chrominance is preserved across the tone
// curve. It mirrors DT_FILMIC_METHOD_* from the original module, kept
// here as a small tagged variant rather than a bare int constant so
// the pixel transformer's four-way dispatch (see pixel.go) reads as a
// switch over named cases.
type PreserveColor int

const (
	PreserveColorNone       PreserveColor = iota // no chroma preservation: per-channel split pipeline
	PreserveColorMaxRGB                          // norm = max(R,G,B)
	PreserveColorLuminance                       // norm = working-profile luminance (or camera fallback)
	PreserveColorPowerNorm                       // norm = pixel_rgb_norm_power
)

func (p PreserveColor) String() string {
	switch p {
	case PreserveColorNone:
		return "none"
	case PreserveColorMaxRGB:
		return "max-rgb"
	case PreserveColorLuminance:
		return "luminance"
	case PreserveColorPowerNorm:
		return "power-norm"
	default:
		return "unknown"
	}
}

// CurveType picks the polynomial degree used for the toe or shoulder
// segment of the filmic spline.
type CurveType int

const (
	CurvePoly4 CurveType = iota // quartic: anchors value, 1st & 2nd derivative at the node, plus value and 1st derivative at the endpoint
	CurvePoly3                  // cubic: anchors value, 1st & 2nd derivative at the node, plus value at the endpoint
)

func (c CurveType) String() string {
	if c == CurvePoly3 {
		return "poly3"
	}
	return "poly4"
}

// ColorScienceVersion selects the desaturation/display formula family.
// v1 is the legacy (darktable 3.0) formula, v2 tightens the
// desaturation falloff and adds the chroma-v2 gamut mapper.
type ColorScienceVersion int

const (
	VersionV1 ColorScienceVersion = iota
	VersionV2
)

func (v ColorScienceVersion) String() string {
	if v == VersionV2 {
		return "v2"
	}
	return "v1"
}

// Params is the full, user-facing parameter record: everything a host
// persists across edits and hands to CommitParams. Field names mirror the
// spec's data model (§3) rather than the original's C naming, but the
// layout and semantics are unchanged.
type Params struct {
	// Source (scene-referred) anchors, in stops except GreyPointSource
	// and SecurityFactor (percent).
	GreyPointSource  float32 // % of full scale, e.g. 18.45
	BlackPointSource float32 // EV, < 0
	WhitePointSource float32 // EV, > 0
	SecurityFactor   float32 // % symmetric enlarge of the source range

	// Target (display-referred) anchors, in percent of display range.
	GreyPointTarget  float32
	BlackPointTarget float32
	WhitePointTarget float32
	OutputPower      float32 // display transfer exponent

	// Curve shape.
	Latitude   float32 // % of dynamic range given to the linear segment
	Contrast   float32 // slope of the linear segment
	Balance    float32 // -50..+50, shoulder/toe shift
	Saturation float32 // -50..+50 %, extreme-luminance desaturation strength

	// Highlight reconstruction.
	ReconstructThreshold          float32 // EV relative to white
	ReconstructFeather            float32 // EV transition width
	ReconstructBloomVsDetails     float32 // -100..100
	ReconstructGreyVsColor        float32 // -100..100
	ReconstructStructureVsTexture float32 // -100..100
	HighQualityReconstruction     bool

	// Discriminated choices.
	PreserveColor PreserveColor
	Version       ColorScienceVersion
	Shadows       CurveType
	Highlights    CurveType

	// Behavioural flags.
	AutoHardness bool
	CustomGrey   bool
}

// DefaultParams returns a parameter set that satisfies every invariant
// in §3 and is a reasonable starting point for a scene-referred raw
// photograph: roughly 12 stops of source dynamic range, middle grey at
// 18.45%, a mild contrast boost, and reconstruction effectively primed
// but not pulled in (ReconstructThreshold is a few stops above white).
func DefaultParams() Params {
	return Params{
		GreyPointSource:  18.45,
		BlackPointSource: -8.0,
		WhitePointSource: 4.0,
		SecurityFactor:   0.0,

		GreyPointTarget:  18.45,
		BlackPointTarget: 0.0152,
		WhitePointTarget: 100.0,
		OutputPower:      4.0,

		Latitude:   25.0,
		Contrast:   1.35,
		Balance:    0.0,
		Saturation: 0.0,

		ReconstructThreshold:          3.0,
		ReconstructFeather:            3.0,
		ReconstructBloomVsDetails:     0.0,
		ReconstructGreyVsColor:        0.0,
		ReconstructStructureVsTexture: 0.0,
		HighQualityReconstruction:     false,

		PreserveColor: PreserveColorPowerNorm,
		Version:       VersionV2,
		Shadows:       CurvePoly4,
		Highlights:    CurvePoly3,

		AutoHardness: true,
		CustomGrey:   true,
	}
}

// clamp01 matches clamp_simd: flushes NaN through rather than masking
// it, since callers are documented as supplying finite floats only.
func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// floorEpsilon is 2^-16, the smallest value the log encoding will
// accept without producing -Inf; the pixel transformer and the ratio
// computation raise inputs to this floor rather than let a division or
// log2 blow up.
const floorEpsilon = 1.52587890625e-05 // 2^-16
