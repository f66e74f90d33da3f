package filmic

import "testing"

// TestMaskMonotonicity checks that mask weight is a strictly
// increasing function of pixel norm across the whole domain: the
// sigmoid 1/(1+2^arg) with arg = -M*(feather/threshold)+feather is
// monotonic in M everywhere feather/threshold > 0, so there is no
// separate "below/above threshold" regime to distinguish.
func TestMaskMonotonicity(t *testing.T) {
	const threshold, feather = float32(4.0), float32(3.0)

	prev := float32(-1)
	for _, norm := range []float32{0, 0.5, 1, 2, 3.5, 4, 4.5, 6, 8} {
		pix := []float32{norm / sqrtf(3), norm / sqrtf(3), norm / sqrtf(3), 1}
		m := BuildMask(pix, 1, 1, threshold, feather)
		w := m.Weight[0]

		if w <= prev {
			t.Errorf("mask weight not strictly increasing at norm=%v: w=%v prev=%v", norm, w, prev)
		}
		prev = w
	}
}

func TestMaskNeedsReconstructionThreshold(t *testing.T) {
	white := make([]float32, 1*4)
	white[0], white[1], white[2], white[3] = 4.0, 4.0, 4.0, 1.0

	pix := make([]float32, 0)
	for i := 0; i < 16; i++ {
		pix = append(pix, white...)
	}

	// BuildMask takes the committed feather, 2^(12/p.feather): 16 for a
	// feather setting of 3.
	m := BuildMask(pix, 4, 4, 0.0001, 16.0)
	if !m.NeedsReconstruction() {
		t.Errorf("expected a fully-clipped 4x4 image to need reconstruction, got ClippedCount=%d", m.ClippedCount)
	}

	single := make([]float32, 4*4*4)
	single[0], single[1], single[2], single[3] = 4.0, 4.0, 4.0, 1.0
	m2 := BuildMask(single, 4, 4, 0.0001, 16.0)
	if m2.NeedsReconstruction() {
		t.Errorf("expected a single clipped pixel out of 16 to stay below the reconstruction threshold, got ClippedCount=%d", m2.ClippedCount)
	}
}
