package filmic

import "testing"

func TestMigrateV1ToV2PreservesSharedFields(t *testing.T) {
	v1 := Params{
		GreyPointSource:  18.45,
		BlackPointSource: -7.5,
		WhitePointSource: 3.5,
		SecurityFactor:   5.0,
		GreyPointTarget:  20.0,
		BlackPointTarget: 0.05,
		WhitePointTarget: 95.0,
		OutputPower:      4.2,
		Latitude:         30.0,
		Contrast:         1.6,
		Balance:          -10.0,
		Saturation:       15.0,
		PreserveColor:    PreserveColorMaxRGB,
	}

	v2 := MigrateV1ToV2(v1)

	shared := []struct {
		name string
		got  float32
		want float32
	}{
		{"GreyPointSource", v2.GreyPointSource, v1.GreyPointSource},
		{"BlackPointSource", v2.BlackPointSource, v1.BlackPointSource},
		{"WhitePointSource", v2.WhitePointSource, v1.WhitePointSource},
		{"SecurityFactor", v2.SecurityFactor, v1.SecurityFactor},
		{"GreyPointTarget", v2.GreyPointTarget, v1.GreyPointTarget},
		{"BlackPointTarget", v2.BlackPointTarget, v1.BlackPointTarget},
		{"WhitePointTarget", v2.WhitePointTarget, v1.WhitePointTarget},
		{"OutputPower", v2.OutputPower, v1.OutputPower},
		{"Latitude", v2.Latitude, v1.Latitude},
		{"Contrast", v2.Contrast, v1.Contrast},
		{"Balance", v2.Balance, v1.Balance},
		{"Saturation", v2.Saturation, v1.Saturation},
	}
	for _, s := range shared {
		if s.got != s.want {
			t.Errorf("%s: got %v, want bit-exact %v", s.name, s.got, s.want)
		}
	}
	if v2.PreserveColor != v1.PreserveColor {
		t.Errorf("PreserveColor: got %v, want %v", v2.PreserveColor, v1.PreserveColor)
	}

	if v2.ReconstructThreshold != 3.0 {
		t.Errorf("ReconstructThreshold: got %v, want 3.0 (no-op threshold)", v2.ReconstructThreshold)
	}
	if v2.HighQualityReconstruction {
		t.Error("HighQualityReconstruction: expected false on migrate")
	}
	if v2.Shadows != CurvePoly4 || v2.Highlights != CurvePoly3 {
		t.Errorf("default curve types not set: shadows=%v highlights=%v", v2.Shadows, v2.Highlights)
	}
}
