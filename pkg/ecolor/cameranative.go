package ecolor

import(
	"fmt"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/rawtone/filmicrgb/pkg/emath"
)

// A CameraNative color is a sensor reading, combined with an exposure
// value, that has not yet been color corrected or white balanced. It
// exists in an RGB space specific to the camera.
type CameraNative struct {
	// The sensor photosites give values in the range [0, 0xFFFF]; we map those to [0.0, 1.0]
	hdrcolor.RGB // This field implements color.Color and hdrcolor.Color interfaces

	// How much Illuminance (in lux) is needed to generate a photosite value of 0xFFFF
	IllumAtMax     float64
}

var(
	// Translates XYZ(D50) to sRGB(D65)
	//
	// https://sites.google.com/site/crossstereo/raw-converting/dng
	// http://www.brucelindbloom.com/index.html?Eqn_RGB_XYZ_Matrix.html
	//
	// We use the second table on Bruce Lindblooms's site; it bundles in
	// the chromatic adaptation transform that we need to move from D50
	// to D65 reference whites without seeing the image's white balance
	// shift. (Most XYZ->sRGB matrices on the web ignore the change to
	// reference white, so come out looking wrong)
	XYZD50_to_linear_sRGBD65 = emath.Mat3{
		 3.1338561, -1.6168667, -0.4906146,
    -0.9787684,  1.9161415,  0.0334540,
     0.0719453, -0.2289914,  1.4052427,
	}
)

// Treats the input RGB channels as [0, 0xFFFF]
func NewCameraNative(col color.Color, illumAtMax float64) CameraNative {
	r, g, b, _ := col.RGBA()

	return CameraNative{
		RGB: hdrcolor.RGB{
			R: float64(r) / float64(0xFFFF),
			G: float64(g) / float64(0xFFFF),
			B: float64(b) / float64(0xFFFF),
		},
		IllumAtMax: illumAtMax,
	}
}

func (cn CameraNative)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f] @%.0f lux", cn.RGB.R, cn.RGB.G, cn.RGB.B, cn.IllumAtMax)
}

// AdjustIllumAtMax rescales the RGB values.
func (cn *CameraNative)AdjustIllumAtMax(newIllumAtMax float64) {
	cn.RGB.R *= cn.IllumAtMax / newIllumAtMax
	cn.RGB.G *= cn.IllumAtMax / newIllumAtMax
	cn.RGB.B *= cn.IllumAtMax / newIllumAtMax
	cn.IllumAtMax = newIllumAtMax
}

// ApplyAsShotNeutral performs white balancing. After this operation,
// the color is no longer CameraNative, it is camera-neutral (i.e.
// white balanced), so return as arbitrary RGB.
func ApplyAsShotNeutral(cn CameraNative, asShotNeutral emath.Vec3) hdrcolor.RGB {
	return hdrcolor.RGB{
		R: cn.RGB.R / asShotNeutral[0],
		G: cn.RGB.G / asShotNeutral[1],
		B: cn.RGB.B / asShotNeutral[2],
	}
}

// ApplyForwardMatrix does all the color correction, assuming a DNG ForwardMatrix.
// The result is a camera-indepedent XYZ(D50) value.
func ApplyForwardMatrix(rgb hdrcolor.RGB, forwardMatrix emath.Mat3) hdrcolor.XYZ {
	xyz := forwardMatrix.Apply(emath.Vec3{rgb.R, rgb.G, rgb.B})
	return hdrcolor.XYZ{X: xyz[0], Y: xyz[1], Z: xyz[2]}
}

// This XYZToSRGB also adjusts reference white from D50 to D65. (The
// DNG ForwardMatrix maps CameraNative into XYZ(D50), but the standard
// sRGB output space assumes D65, so a chromatic adapation is needed.)
func XYZToSRGB(xyz hdrcolor.XYZ) hdrcolor.RGB {
	rgb := XYZD50_to_linear_sRGBD65.Apply(emath.Vec3{xyz.X, xyz.Y, xyz.Z})
	return hdrcolor.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// DevelopDNG follows the DNG spec to perform white balance adjustment
// and color correction, to generate a color in XYZ(D50). You prob
// want to then convert that back down to an sRGB(D65) color with
// `ecolor.XYZToSRGB`
func (cn CameraNative)DevelopDNG(asShotNeutral emath.Vec3, forwardMatrix emath.Mat3) hdrcolor.XYZ {
	wbRgb  := ApplyAsShotNeutral(cn, asShotNeutral)
	xyzD50 := ApplyForwardMatrix(wbRgb, forwardMatrix)
	return xyzD50
}

// CameraProfile adapts a camera's DNG white-balance and forward-matrix
// color science into a filmic.WorkingProfile: its Luminance weights a
// linear RGB triplet by running it through DevelopDNG and reading off
// the resulting XYZ(D50) Y channel. A host that knows its camera's
// as-shot-neutral and forward matrix can hand this to filmic.Process
// in place of the plain sRGB default, so the luminance-preserving math
// (desaturation, PreserveColorLuminance) weights channels the way this
// camera's own sensor does rather than assuming sRGB primaries.
//
// filmic.WorkingProfile is satisfied structurally; this package does
// not import pkg/filmic to avoid coupling the color-science leaf to
// the tone mapping core.
type CameraProfile struct {
	AsShotNeutral emath.Vec3
	ForwardMatrix emath.Mat3
}

func (p CameraProfile) Luminance(rgb [3]float32) float32 {
	cn := CameraNative{RGB: hdrcolor.RGB{R: float64(rgb[0]), G: float64(rgb[1]), B: float64(rgb[2])}, IllumAtMax: 1}
	xyz := cn.DevelopDNG(p.AsShotNeutral, p.ForwardMatrix)
	return float32(xyz.Y)
}
