package ecolor

import (
	"testing"

	"github.com/rawtone/filmicrgb/pkg/emath"
)

// filmicWorkingProfile mirrors filmic.WorkingProfile's single method,
// without importing pkg/filmic, so this test can assert CameraProfile
// satisfies it structurally.
type filmicWorkingProfile interface {
	Luminance(rgb [3]float32) float32
}

var _ filmicWorkingProfile = CameraProfile{}

func TestCameraProfileLuminanceOfWhiteIsPositive(t *testing.T) {
	p := CameraProfile{
		AsShotNeutral: emath.Vec3{1, 1, 1},
		ForwardMatrix: XYZD50_to_linear_sRGBD65, // any well-conditioned 3x3 stands in for a real DNG ForwardMatrix here
	}
	y := p.Luminance([3]float32{1, 1, 1})
	if y <= 0 {
		t.Fatalf("Luminance(white) = %v, want > 0", y)
	}
}

func TestCameraProfileLuminanceScalesWithIntensity(t *testing.T) {
	p := CameraProfile{
		AsShotNeutral: emath.Vec3{1, 1, 1},
		ForwardMatrix: XYZD50_to_linear_sRGBD65,
	}
	dim := p.Luminance([3]float32{0.2, 0.2, 0.2})
	bright := p.Luminance([3]float32{0.8, 0.8, 0.8})
	if !(bright > dim) {
		t.Fatalf("Luminance should increase with pixel intensity: dim=%v bright=%v", dim, bright)
	}
}
