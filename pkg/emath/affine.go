package emath

// Actual 3x3 matrixes, used for color transforms

import (
	"golang.org/x/image/math/f64"
)

type Vec3 f64.Vec3
type Mat3 f64.Mat3

func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		(m[3*0+0]*v[0] + m[3*0+1]*v[1] + m[3*0+2]*v[2]),
		(m[3*1+0]*v[0] + m[3*1+1]*v[1] + m[3*1+2]*v[2]),
		(m[3*2+0]*v[0] + m[3*2+1]*v[1] + m[3*2+2]*v[2]),
	}
}
