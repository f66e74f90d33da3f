package filmic

// reconstructVariant selects which detail/structure extremum rule the
// wavelet reconstructor uses: RGB favors high frequencies (texture is
// argmax |HF|, structure is min LF), ratios favors low frequencies
// (texture is argmin |HF|, structure is max LF), per §4.6.
type reconstructVariant int

const (
	variantRGB    reconstructVariant = 0
	variantRatios reconstructVariant = 1
)

const (
	fsize          = 5
	maxNumScales   = 12
)

// scaleCount implements get_scales (§4.6, §9): the number of wavelet
// scales needed at the current render scale, derived so the coarsest
// filter covers a scale-invariant fraction of the image regardless of
// zoom level.
func scaleCount(maxDim int, scale float32) int {
	size := float32(maxDim)
	s := log2f(2.0*size*scale/((fsize-1)*fsize) - 1.0)
	scales := int(s) // floor towards zero is fine here: s is always checked against the >=1 clamp below
	if s < 0 && float32(scales) != s {
		scales-- // emulate floorf for negative fractional values
	}
	if scales < 1 {
		scales = 1
	}
	if scales > maxNumScales {
		scales = maxNumScales
	}
	return scales
}

// ReconstructResult reports whether the wavelet reconstruction ran to
// completion; on allocation/solver trouble upstream of this package
// (which in Go terms means "never", since make() doesn't fail softly)
// the reconstructed buffer still gets returned for forwards
// compatibility with callers written against §7's error contract.
type ReconstructResult struct {
	Reconstructed []float32 // 4-channel interleaved, width*height*4
	OK            bool
}

// Reconstruct runs the multi-scale à-trous wavelet highlight
// reconstructor of §4.6 over a 4-channel interleaved float32 input,
// using mask as the per-pixel opacity and rd's reconstruction mixes.
// scale is roi_in.scale/piece.iscale, the zoom factor that feeds
// scaleCount; maxDim is the larger of the *unscaled* image dimensions.
//
// When rd.HighQualityReconstruction is set, a second pass reconstructs
// the chromaticity ratios of the first pass's result and restores them
// by multiplying back the per-pixel norm (EXPANSION 3.2).
func Reconstruct(in []float32, width, height int, mask Mask, rd RuntimeData, profile WorkingProfile, maxDim int, scale float32) ReconstructResult {
	reconstructed := make([]float32, width*height*4)
	initReconstruct(reconstructed, in, mask.Weight, width, height)

	scales := scaleCount(maxDim, scale)

	reconstructOnePass(in, reconstructed, mask.Weight, width, height, scales, rd, variantRGB)

	if rd.HighQualityReconstruction {
		norms := make([]float32, width*height)
		ratios := make([]float32, width*height*4)
		computeRatios(reconstructed, norms, ratios, width, height, rd.PreserveColor, profile)

		ratiosReconstructed := make([]float32, width*height*4)
		initReconstruct(ratiosReconstructed, ratios, mask.Weight, width, height)
		reconstructOnePass(ratios, ratiosReconstructed, mask.Weight, width, height, scales, rd, variantRatios)

		restoreRatios(ratiosReconstructed, norms, width, height)
		copy(reconstructed, ratiosReconstructed)
	}

	return ReconstructResult{Reconstructed: reconstructed, OK: true}
}

func initReconstruct(dst, in, weight []float32, width, height int) {
	n := width * height
	for i := 0; i < n; i++ {
		a := 1.0 - weight[i]
		o := i * 4
		dst[o] = in[o] * a
		dst[o+1] = in[o+1] * a
		dst[o+2] = in[o+2] * a
		dst[o+3] = in[o+3] * a
	}
}

// reconstructOnePass ping-pongs two LF buffers across scales (§4.6.3)
// and accumulates each scale's contribution into reconstructed.
func reconstructOnePass(in, reconstructed, weight []float32, width, height, scales int, rd RuntimeData, variant reconstructVariant) {
	n := width * height
	lfEven := make([]float32, n*4)
	lfOdd := make([]float32, n*4)
	hf := make([]float32, n*4)
	texture := make([]float32, n)
	tmp := make([]float32, n*4)

	gamma := rd.ReconstructStructureVsTexture
	gammaComp := 1.0 - gamma
	beta := rd.ReconstructGreyVsColor
	betaComp := 1.0 - beta
	delta := rd.ReconstructBloomVsDetails

	for s := 0; s < scales; s++ {
		var detail []float32
		var lf []float32
		switch {
		case s == 0:
			detail = in
			lf = lfOdd
		case s%2 != 0:
			detail = lfOdd
			lf = lfEven
		default:
			detail = lfEven
			lf = lfOdd
		}

		mult := 1 << s
		blurAtrous(lf, tmp, detail, width, height, mult)

		if variant == variantRGB {
			detailLevelRGB(detail, lf, hf, texture, width, height)
		} else {
			detailLevelRatios(detail, lf, hf, texture, width, height)
		}

		// Interpolate/inpaint the high-frequency band by blurring it with
		// the same kernel, filling clipped regions with surrounding detail.
		hfBlurred := make([]float32, n*4)
		blurAtrous(hfBlurred, tmp, hf, width, height, mult)

		if variant == variantRGB {
			reconstructBand(hfBlurred, lf, texture, weight, reconstructed, width, height, gamma, gammaComp, beta, betaComp, delta, scales, true)
		} else {
			reconstructBand(hfBlurred, lf, texture, weight, reconstructed, width, height, gamma, gammaComp, beta, betaComp, delta, scales, false)
		}
	}
}

func detailLevelRGB(detail, lf, hf, texture []float32, width, height int) {
	n := width * height
	for i := 0; i < n; i++ {
		o := i * 4
		var h [3]float32
		for c := 0; c < 3; c++ {
			h[c] = detail[o+c] - lf[o+c]
			hf[o+c] = h[c]
		}
		texture[i] = fmaxabsf(fmaxabsf(h[0], h[1]), h[2])
	}
}

func detailLevelRatios(detail, lf, hf, texture []float32, width, height int) {
	n := width * height
	for i := 0; i < n; i++ {
		o := i * 4
		var h [3]float32
		for c := 0; c < 3; c++ {
			h[c] = detail[o+c] - lf[o+c]
			hf[o+c] = h[c]
		}
		texture[i] = fminabsf(fminabsf(h[0], h[1]), h[2])
	}
}

// reconstructBand matches wavelets_reconstruct_RGB/_ratios: rgbVariant
// selects min-LF/max-abs-HF (RGB) vs max-LF (ratios) for the grey
// structure/texture terms; grey_details always takes the max, per the
// original's own HF_c cache (both variants share that formula).
func reconstructBand(hf, lf, texture, weight, reconstructed []float32, width, height int, gamma, gammaComp, beta, betaComp, delta float32, scales int, rgbVariant bool) {
	n := width * height
	scalesF := float32(scales)
	for i := 0; i < n; i++ {
		o := i * 4
		alpha := weight[i]

		greyTexture := gamma * texture[i]
		greyDetails := gammaComp * fmaxabsf(fmaxabsf(hf[o], hf[o+1]), hf[o+2])
		greyHF := betaComp * (greyDetails + greyTexture)

		var greyLF float32
		if rgbVariant {
			greyLF = betaComp * minf32(minf32(lf[o], lf[o+1]), lf[o+2])
		} else {
			greyLF = betaComp * maxf32(maxf32(lf[o], lf[o+1]), lf[o+2])
		}

		for c := 0; c < 3; c++ {
			colorResidual := lf[o+c] * beta
			colorDetails := hf[o+c] * beta * gammaComp
			reconstructed[o+c] += alpha * (delta*(greyHF+colorDetails) + (greyLF+colorResidual)/scalesF)
		}
	}
}

func computeRatios(in, norms, ratios []float32, width, height int, variant PreserveColor, profile WorkingProfile) {
	n := width * height
	for i := 0; i < n; i++ {
		o := i * 4
		norm := GetPixelNorm([3]float32{in[o], in[o+1], in[o+2]}, variant, profile)
		if norm < floorEpsilon {
			norm = floorEpsilon
		}
		norms[i] = norm
		for c := 0; c < 3; c++ {
			ratios[o+c] = in[o+c] / norm
		}
	}
}

func restoreRatios(ratios, norms []float32, width, height int) {
	n := width * height
	for i := 0; i < n; i++ {
		o := i * 4
		norm := norms[i]
		for c := 0; c < 3; c++ {
			ratios[o+c] *= norm
		}
	}
}
