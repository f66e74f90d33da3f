package filmic

// TransformPixel implements the four-way pixel transformer of §4.7,
// dispatching on (preserve_color == none, version) as §9 recommends.
// in and out are 3-element linear RGB triplets (the caller owns the
// fourth, alpha, channel — Process handles that).
func TransformPixel(in [3]float32, rd RuntimeData, profile WorkingProfile) [3]float32 {
	if rd.PreserveColor == PreserveColorNone {
		if rd.Version == VersionV1 {
			return splitPixel(in, rd, profile, filmicDesaturateV1)
		}
		return splitPixel(in, rd, profile, filmicDesaturateV2)
	}
	if rd.Version == VersionV1 {
		return chromaPixelV1(in, rd, profile)
	}
	return chromaPixelV2(in, rd, profile)
}

type desaturateFunc func(x, sigmaToe, sigmaShoulder, saturation float32) float32

// splitPixel is the split, v1/v2 variant: each channel is log-mapped
// and desaturated independently against the pixel's own luminance,
// then passed through the spline and display gamma on its own.
func splitPixel(in [3]float32, rd RuntimeData, profile WorkingProfile, desat desaturateFunc) [3]float32 {
	var temp [3]float32
	for c := 0; c < 3; c++ {
		x := maxf32(in[c], floorEpsilon)
		temp[c] = logTonemap(x, rd, rd.Version)
	}

	lum := GetPixelNorm(temp, PreserveColorLuminance, profile)
	desatCoeff := desat(lum, rd.SigmaToe, rd.SigmaShoulder, rd.Saturation)

	var out [3]float32
	for c := 0; c < 3; c++ {
		temp[c] = linearSaturation(temp[c], lum, desatCoeff)
		v := clamp01(rd.Spline.Eval(temp[c]))
		out[c] = powf(v, rd.OutputPower)
	}
	return out
}

// chromaPixelV1 preserves chrominance by working on the ratios of the
// pixel's channels to its norm: the norm alone goes through the
// curve, and the ratios (possibly sanitised against negative
// channels) carry the desaturation and get multiplied back in.
func chromaPixelV1(in [3]float32, rd RuntimeData, profile WorkingProfile) [3]float32 {
	norm := GetPixelNorm(in, rd.PreserveColor, profile)
	norm = maxf32(norm, floorEpsilon)

	var ratios [3]float32
	minRatio := float32(0)
	for c := 0; c < 3; c++ {
		ratios[c] = in[c] / norm
		if c == 0 || ratios[c] < minRatio {
			minRatio = ratios[c]
		}
	}
	if minRatio < 0 {
		for c := 0; c < 3; c++ {
			ratios[c] -= minRatio
		}
	}

	logNorm := logTonemap(norm, rd, rd.Version)
	desatCoeff := desaturateFor(rd.Version)(logNorm, rd.SigmaToe, rd.SigmaShoulder, rd.Saturation)

	var scaled [3]float32
	for c := 0; c < 3; c++ {
		scaled[c] = ratios[c] * norm
	}
	lum := GetPixelNorm(scaled, PreserveColorLuminance, profile)

	for c := 0; c < 3; c++ {
		ratios[c] = linearSaturation(scaled[c], lum, desatCoeff) / norm
	}

	v := clamp01(rd.Spline.Eval(logNorm))
	curved := powf(v, rd.OutputPower)

	var out [3]float32
	for c := 0; c < 3; c++ {
		out[c] = ratios[c] * curved
	}
	return out
}

// chromaPixelV2 runs the curve on the norm alone, folds the
// desaturation coefficient directly into the ratios (no luminance
// recomputation), and gamut-maps the result so every channel lands
// in [0,1] without hue shift, per EXPANSION and §4.7.
func chromaPixelV2(in [3]float32, rd RuntimeData, profile WorkingProfile) [3]float32 {
	norm := GetPixelNorm(in, rd.PreserveColor, profile)
	norm = maxf32(norm, floorEpsilon)

	var ratios [3]float32
	minRatio := float32(0)
	for c := 0; c < 3; c++ {
		ratios[c] = in[c] / norm
		if c == 0 || ratios[c] < minRatio {
			minRatio = ratios[c]
		}
	}
	if minRatio < 0 {
		for c := 0; c < 3; c++ {
			ratios[c] -= minRatio
		}
	}

	logNorm := logTonemap(norm, rd, rd.Version)
	desatCoeff := filmicDesaturateV2(logNorm, rd.SigmaToe, rd.SigmaShoulder, rd.Saturation)

	v := clamp01(rd.Spline.Eval(logNorm))
	curvedNorm := powf(v, rd.OutputPower)

	var out [3]float32
	maxOut := float32(0)
	for c := 0; c < 3; c++ {
		ratios[c] = maxf32(ratios[c]+(1.0-ratios[c])*(1.0-desatCoeff), 0)
		out[c] = ratios[c] * curvedNorm
		if c == 0 || out[c] > maxOut {
			maxOut = out[c]
		}
	}

	if maxOut > 1 {
		for c := 0; c < 3; c++ {
			ratios[c] = maxf32(ratios[c]+(1.0-maxOut), 0)
			out[c] = clamp01(ratios[c] * curvedNorm)
		}
	}

	return out
}

func desaturateFor(v ColorScienceVersion) desaturateFunc {
	if v == VersionV1 {
		return filmicDesaturateV1
	}
	return filmicDesaturateV2
}

func logTonemap(x float32, rd RuntimeData, v ColorScienceVersion) float32 {
	if v == VersionV1 {
		return logTonemapV1(x, rd.GreySource, rd.BlackSource, rd.DynamicRange)
	}
	return logTonemapV2(x, rd.GreySource, rd.BlackSource, rd.DynamicRange)
}
