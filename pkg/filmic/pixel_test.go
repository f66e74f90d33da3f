package filmic

import (
	"math"
	"testing"
)

// TestIdentityGrey follows from the committed formulas rather than the
// scenario's literal worked example: grey_display = (target/100)^(1/p)
// and the split pipeline's output for a pixel exactly at grey is
// grey_display^p, which cancels to target/100 independent of
// output_power. The default params' grey_point_target is 18.45, so a
// pixel at grey_source should map to display-space 0.1845, not to
// 0.1845^(1/5.98) as a literal reading of the worked example would
// suggest — that example is inconsistent with the formulas it's built
// from (see DESIGN.md).
func TestIdentityGrey(t *testing.T) {
	params := DefaultParams()
	params.PreserveColor = PreserveColorNone // split pipeline
	rd, err := CommitParams(params)
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	grey := params.GreyPointSource / 100.0
	in := [3]float32{grey, grey, grey}

	out := TransformPixel(in, rd, nil)

	want := float32(0.1845)
	for c, v := range out {
		if math.Abs(float64(v-want)) > 1e-3 {
			t.Errorf("channel %d: got %v, want ~%v", c, v, want)
		}
	}
}

func TestBlackPixelFloorsCleanly(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	out := TransformPixel([3]float32{0, 0, 0}, rd, nil)
	for c, v := range out {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("channel %d: got non-finite value %v", c, v)
		}
		if v < 0 {
			t.Errorf("channel %d: expected non-negative black output, got %v", c, v)
		}
	}
}

func TestChromaV1NegativeChannelSanitized(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	rd.PreserveColor = PreserveColorPowerNorm
	rd.Version = VersionV1

	out := TransformPixel([3]float32{-0.1, 0.5, 0.5}, rd, nil)
	for c, v := range out {
		if math.IsNaN(float64(v)) {
			t.Fatalf("channel %d: got NaN", c)
		}
	}
	if out[0] > out[1] || out[0] > out[2] {
		t.Errorf("expected R <= G,B after sanitising a negative red channel, got %v", out)
	}
}

func TestChromaV2GamutClampInvariant(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	rd.PreserveColor = PreserveColorMaxRGB
	rd.Version = VersionV2

	inputs := [][3]float32{
		{4, 4, 4},
		{4, 0.01, 0.01},
		{0.01, 4, 0.01},
		{2, 3, 4},
		{0, 0, 0},
		{10, 10, 0.01},
	}

	for _, in := range inputs {
		out := chromaPixelV2(in, rd, nil)
		for c, v := range out {
			if v < 0 || v > 1 {
				t.Errorf("in=%v: channel %d out of [0,1]: %v", in, c, v)
			}
			if math.IsNaN(float64(v)) {
				t.Errorf("in=%v: channel %d is NaN", in, c)
			}
		}
	}
}
