package filmic

import "math"

// This file carries the scalar math primitives of §4.1. They are
// written to operate on float32 (the core's IEEE-754 contract, §7),
// promoting to float64 only where math.XXX has no float32 sibling,
// same as the teacher's emath package keeps its own small numeric
// helpers alongside the heavier FloatGrid operations.

// logTonemapV1 matches log_tonemapping_v1: the v1 floor is 2^-16, not
// zero, so legacy edits keep producing the same near-black response
// they always did.
func logTonemapV1(x, grey, black, dynamicRange float32) float32 {
	t := (log2f(x/grey) - black) / dynamicRange
	return clampf(t, floorEpsilon, 1.0)
}

// logTonemapV2 matches log_tonemapping_v2: floors at exact zero.
func logTonemapV2(x, grey, black, dynamicRange float32) float32 {
	t := (log2f(x/grey) - black) / dynamicRange
	return clamp01(t)
}

func log2f(x float32) float32 {
	return float32(math.Log2(float64(x)))
}

func expf(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

func powf(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// pixelNormPower matches pixel_rgb_norm_power: sum(|c|^3) / max(sum(c^2), 1e-12).
// It isn't a true norm (it can be non-monotonic away from the grey
// axis) but it tracks perceived brightness well enough to be useful
// for chroma preservation; the original docs it as "black magic".
func pixelNormPower(p [3]float32) float32 {
	var num, den float32
	for c := 0; c < 3; c++ {
		v := absf32(p[c])
		sq := v * v
		num += sq * v
		den += sq
	}
	return num / maxf32(den, 1e-12)
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// GetPixelNorm implements §4.1's get_pixel_norm dispatch. profile may
// be nil, in which case the luminance variant falls back to
// DefaultCameraLuminance (the "pure function supplied by the host" of
// §1, with a reasonable default when no host profile is available).
func GetPixelNorm(p [3]float32, variant PreserveColor, profile WorkingProfile) float32 {
	switch variant {
	case PreserveColorMaxRGB:
		return maxf32(maxf32(p[0], p[1]), p[2])
	case PreserveColorPowerNorm:
		return pixelNormPower(p)
	case PreserveColorLuminance, PreserveColorNone:
		if profile != nil {
			return profile.Luminance(p)
		}
		return DefaultCameraLuminance(p)
	default:
		if profile != nil {
			return profile.Luminance(p)
		}
		return DefaultCameraLuminance(p)
	}
}

// filmicDesaturateV1 matches filmic_desaturate_v1.
func filmicDesaturateV1(x, sigmaToe, sigmaShoulder, saturation float32) float32 {
	radiusToe := x
	radiusShoulder := 1.0 - x

	keyToe := expf(-0.5 * radiusToe * radiusToe / sigmaToe)
	keyShoulder := expf(-0.5 * radiusShoulder * radiusShoulder / sigmaShoulder)

	return 1.0 - clamp01((keyToe+keyShoulder)/saturation)
}

// filmicDesaturateV2 matches filmic_desaturate_v2.
func filmicDesaturateV2(x, sigmaToe, sigmaShoulder, saturation float32) float32 {
	radiusToe := x
	radiusShoulder := 1.0 - x
	sat2 := 0.5 / sqrtf(saturation)

	keyToe := expf(-radiusToe * radiusToe / sigmaToe * sat2)
	keyShoulder := expf(-radiusShoulder * radiusShoulder / sigmaShoulder * sat2)

	return saturation - (keyToe+keyShoulder)*saturation
}

// linearSaturation matches linear_saturation: pulls x toward (or away
// from) luminance by the given saturation factor.
func linearSaturation(x, luminance, saturation float32) float32 {
	return luminance + saturation*(x-luminance)
}

// filmicSpline matches filmic_spline: Horner's-rule evaluation of
// whichever of the three segments x falls in. The boundary tests are
// strict (< / >), so the latitude segment owns both of its boundary
// nodes exactly once.
func filmicSpline(x float32, m1, m2, m3, m4, m5 [3]float32, latitudeMin, latitudeMax float32) float32 {
	var seg int
	switch {
	case x < latitudeMin:
		seg = segToe
	case x > latitudeMax:
		seg = segShoulder
	default:
		seg = segLatitude
	}
	return m1[seg] + x*(m2[seg]+x*(m3[seg]+x*(m4[seg]+x*m5[seg])))
}

// fmaxabsf / fminabsf match the originals: compare magnitudes, but
// return the signed operand, not the magnitude.
func fmaxabsf(a, b float32) float32 {
	if absf32(a) > absf32(b) {
		return a
	}
	return b
}

func fminabsf(a, b float32) float32 {
	if absf32(a) < absf32(b) {
		return a
	}
	return b
}

func sqf(x float32) float32 { return x * x }

const (
	segToe      = 0
	segShoulder = 1
	segLatitude = 2
)
