package filmic

// atrousKernel is the fixed 5-tap B-spline kernel h = [1,4,6,4,1]/16
// used at every wavelet scale; only the tap spacing changes between
// scales, via the dilation factor mult = 2^s.
var atrousKernel = [5]float32{1.0 / 16.0, 4.0 / 16.0, 6.0 / 16.0, 4.0 / 16.0, 1.0 / 16.0}

// blurAtrous runs the separable à-trous B-spline blur of §4.4 over a
// 4-channel interleaved float32 buffer: one horizontal pass, then one
// vertical pass, each dilated by mult taps. Only the first three
// channels are touched; the fourth (alpha) passes through untouched
// in dst so callers that reuse a 4-channel buffer don't need a
// separate copy step.
//
// dst must be a distinct buffer from src (same dimensions); both
// passes read one buffer and write the other, so a single scratch
// buffer of the same size as src suffices as the intermediate.
func blurAtrous(dst, tmp, src []float32, width, height, mult int) {
	blurHorizontal(tmp, src, width, height, mult)
	blurVertical(dst, tmp, width, height, mult)
}

func blurHorizontal(dst, src []float32, width, height, mult int) {
	parallelRows(height, func(y int) {
		rowOff := y * width * 4
		for x := 0; x < width; x++ {
			var acc [3]float32
			for t := -2; t <= 2; t++ {
				xx := clampIndex(x+t*mult, width)
				o := rowOff + xx*4
				w := atrousKernel[t+2]
				acc[0] += w * src[o]
				acc[1] += w * src[o+1]
				acc[2] += w * src[o+2]
			}
			o := rowOff + x*4
			dst[o], dst[o+1], dst[o+2] = acc[0], acc[1], acc[2]
			dst[o+3] = src[o+3]
		}
	})
}

func blurVertical(dst, src []float32, width, height, mult int) {
	parallelRows(height, func(y int) {
		for x := 0; x < width; x++ {
			var acc [3]float32
			for t := -2; t <= 2; t++ {
				yy := clampIndex(y+t*mult, height)
				o := (yy*width+x)*4
				w := atrousKernel[t+2]
				acc[0] += w * src[o]
				acc[1] += w * src[o+1]
				acc[2] += w * src[o+2]
			}
			o := (y*width + x) * 4
			dst[o], dst[o+1], dst[o+2] = acc[0], acc[1], acc[2]
			dst[o+3] = src[o+3]
		}
	})
}

// clampIndex clamps a tap index to the valid [0,n) range, matching
// the boundary handling §4.4 calls for.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
