package filmic

import "testing"

// TestCommitClampsContrastWhenRangeTooNarrow follows scenario 6: when
// white-black is too narrow relative to contrast*grey_log, commit must
// clamp contrast upward so the latitude segment's y-intercept stays
// solvable, and the clamp must land strictly above grey_display/grey_log.
func TestCommitClampsContrastWhenRangeTooNarrow(t *testing.T) {
	p := DefaultParams()
	p.WhitePointSource = 0.5
	p.BlackPointSource = -0.5
	p.Contrast = 0.1001 // just above the 0.1 floor, but far too low for this narrow range

	rd, err := CommitParams(p)
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	greyLog := absf32(p.BlackPointSource) / rd.DynamicRange
	greyDisplay := powf(clampf(p.GreyPointTarget, p.BlackPointTarget, p.WhitePointTarget)/100.0, 1.0/p.OutputPower)

	bound := greyDisplay / greyLog
	if rd.Contrast <= bound {
		t.Errorf("expected clamped contrast %v to exceed grey_display/grey_log = %v", rd.Contrast, bound)
	}
}

func TestCommitProducesUsableSpline(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if rd.Spline.LatitudeMin >= rd.Spline.LatitudeMax {
		t.Errorf("expected LatitudeMin < LatitudeMax, got %v >= %v", rd.Spline.LatitudeMin, rd.Spline.LatitudeMax)
	}
	if rd.DynamicRange <= 0 {
		t.Errorf("expected positive dynamic range, got %v", rd.DynamicRange)
	}
}
