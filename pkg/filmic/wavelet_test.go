package filmic

import "testing"

// TestWaveletEnergyConservation checks that decomposing a signal into
// its high-frequency band plus the final low-frequency band
// reconstructs the original signal, per the wavelet energy testable
// property: sum over scales of HF(s) + LF(S-1) ~= input.
func TestWaveletEnergyConservation(t *testing.T) {
	const width, height = 16, 16
	src := make([]float32, width*height*4)
	for i := 0; i < width*height; i++ {
		o := i * 4
		src[o] = float32(i%7) / 6.0
		src[o+1] = float32((i*3)%11) / 10.0
		src[o+2] = float32((i*5)%13) / 12.0
		src[o+3] = 1.0
	}

	const scales = 3
	tmp := make([]float32, width*height*4)

	hfSum := make([]float32, width*height*4)
	detail := src
	var lf []float32
	for s := 0; s < scales; s++ {
		lf = make([]float32, width*height*4)
		mult := 1 << s
		blurAtrous(lf, tmp, detail, width, height, mult)

		for i := range hfSum {
			if i%4 == 3 {
				continue
			}
			hfSum[i] += detail[i] - lf[i]
		}
		detail = lf
	}

	for i := range src {
		if i%4 == 3 {
			continue
		}
		recon := hfSum[i] + lf[i]
		if absf32(recon-src[i]) > 1e-3 {
			t.Errorf("index %d: reconstructed %v, want %v (within 1e-3)", i, recon, src[i])
		}
	}
}

func TestBlurAtrousPreservesConstantSignal(t *testing.T) {
	const width, height = 8, 8
	src := make([]float32, width*height*4)
	for i := range src {
		if i%4 != 3 {
			src[i] = 0.5
		}
	}

	dst := make([]float32, width*height*4)
	tmp := make([]float32, width*height*4)
	blurAtrous(dst, tmp, src, width, height, 1)

	for i, v := range dst {
		if i%4 == 3 {
			continue
		}
		if absf32(v-0.5) > 1e-6 {
			t.Errorf("index %d: blurring a constant signal changed it: %v", i, v)
		}
	}
}
