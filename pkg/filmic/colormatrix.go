package filmic

import "golang.org/x/image/math/f64"

// WorkingProfile is the "pure function supplied by the host" of §1:
// any ICC working-profile lookup the core needs is delegated here
// rather than owned by the package. A host wires a profile by
// supplying the RGB-to-XYZ matrix of its working color space (its Y
// row is the luminance weighting get_pixel_norm's luminance variant
// needs); Luminance lets a host short-circuit with a LUT-corrected
// value instead, exactly as dt_ioppr_get_rgb_matrix_luminance does
// when a working profile carries a tone curve.
type WorkingProfile interface {
	// Luminance returns the weighted luminance of a linear RGB triplet
	// in this profile's working space.
	Luminance(rgb [3]float32) float32
}

// MatrixProfile is the common case: a working space fully described by
// its RGB-to-XYZ matrix, with luminance simply the Y row applied to
// the pixel. This is the Go-idiomatic stand-in for
// dt_iop_order_iccprofile_info_t's matrix_in/lut_in pair, trimmed to
// what the filmic core actually consumes.
type MatrixProfile struct {
	// RGBToXYZ is row-major, so Y = RGBToXYZ[3]*R + RGBToXYZ[4]*G + RGBToXYZ[5]*B.
	RGBToXYZ f64.Mat3
}

func (m MatrixProfile) Luminance(rgb [3]float32) float32 {
	y := m.RGBToXYZ[3]*float64(rgb[0]) + m.RGBToXYZ[4]*float64(rgb[1]) + m.RGBToXYZ[5]*float64(rgb[2])
	return float32(y)
}

// sRGBD65ToXYZ is the standard sRGB (D65) primaries matrix; a
// reasonable default working profile when a host doesn't hand one in.
var sRGBD65ToXYZ = f64.Mat3{
	0.4124564, 0.3575761, 0.1804375,
	0.2126729, 0.7151522, 0.0721750,
	0.0193339, 0.1191920, 0.9503041,
}

// NewSRGBProfile returns the default sRGB (D65) working profile.
func NewSRGBProfile() MatrixProfile {
	return MatrixProfile{RGBToXYZ: sRGBD65ToXYZ}
}

// DefaultCameraLuminance matches dt_camera_rgb_luminance: the
// no-profile fallback. It uses the same weights darktable falls back
// to when no working profile is attached to the pipe (an
// approximation of camera-native RGB's luminance, close enough for
// the desaturation/luminance-preservation math which only cares about
// relative weighting, not colorimetric accuracy).
func DefaultCameraLuminance(rgb [3]float32) float32 {
	return 0.2225045*rgb[0] + 0.7168786*rgb[1] + 0.0606169*rgb[2]
}
