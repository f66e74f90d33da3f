package filmic

// Spline is the curve synthesizer's output: five ordered log/display
// nodes and the three segment coefficient vectors M1..M5, indexed
// [toe=0, shoulder=1, latitude=2]. Mi[seg] is the coefficient of
// x^(i-1) in that segment's polynomial (M1 is the constant term), matching the source's parallel-array
// layout (§9 notes a [segment][5] layout is equally valid; we keep
// the parallel-array form so the per-segment constant names below
// read the same way the original derivation does).
type Spline struct {
	X [5]float32
	Y [5]float32

	M1, M2, M3, M4, M5 [3]float32

	LatitudeMin float32
	LatitudeMax float32
}

// ErrDegenerateSpline wraps a solver failure from one of the two
// curved-segment systems, naming which one failed.
type ErrDegenerateSpline struct {
	Segment string // "toe" or "shoulder"
	Err     error
}

func (e *ErrDegenerateSpline) Error() string {
	return "filmic: degenerate " + e.Segment + " spline: " + e.Err.Error()
}

func (e *ErrDegenerateSpline) Unwrap() error { return e.Err }

// ComputeSpline builds the five-node curve from p, following §4.3. It
// applies the same clamps dt_iop_filmic_rgb_compute_spline applies to
// the persisted params before deriving anything from them, since this
// is the single function both the curve-drawing collaborator and
// CommitParams call — a param that's out of range must not produce two
// different curves depending on who asked.
//
// On a degenerate pivot from the toe or shoulder system, ComputeSpline
// returns the zero Spline and an *ErrDegenerateSpline; per §7 this is
// not fatal and a caller may fall back to an identity spline.
func ComputeSpline(p Params) (Spline, error) {
	var grey float32
	if p.CustomGrey {
		greyTarget := clampf(p.GreyPointTarget, p.BlackPointTarget, p.WhitePointTarget)
		grey = powf(greyTarget/100.0, 1.0/p.OutputPower)
	} else {
		grey = powf(0.1845, 1.0/p.OutputPower)
	}

	whiteSource := p.WhitePointSource
	blackSource := p.BlackPointSource
	dynamicRange := whiteSource - blackSource

	const blackLog = float32(0.0)
	greyLog := absf32(blackSource) / dynamicRange
	const whiteLog = float32(1.0)

	blackDisplay := clampf(p.BlackPointTarget, 0.0, p.GreyPointTarget) / 100.0
	whiteDisplay := clampf(p.WhitePointTarget, p.GreyPointTarget, 100.0) / 100.0

	latitude := clampf(p.Latitude, 0.0, 100.0) / 100.0 * dynamicRange
	balance := clampf(p.Balance, -50.0, 50.0) / 100.0
	contrast := clampf(p.Contrast, 0.1, 2.0)

	toeLog := greyLog - latitude/dynamicRange*absf32(blackSource/dynamicRange)
	shoulderLog := greyLog + latitude/dynamicRange*absf32(whiteSource/dynamicRange)

	linearIntercept := grey - contrast*greyLog

	toeDisplay := toeLog*contrast + linearIntercept
	shoulderDisplay := shoulderLog*contrast + linearIntercept

	norm := sqrtf(contrast*contrast + 1.0)
	coeff := -((2.0 * latitude) / dynamicRange) * balance

	toeDisplay += coeff * contrast / norm
	shoulderDisplay += coeff * contrast / norm
	toeLog += coeff / norm
	shoulderLog += coeff / norm

	var s Spline
	s.X = [5]float32{blackLog, toeLog, greyLog, shoulderLog, whiteLog}
	s.Y = [5]float32{blackDisplay, toeDisplay, grey, shoulderDisplay, whiteDisplay}
	s.LatitudeMin = s.X[1]
	s.LatitudeMax = s.X[3]

	// Central latitude segment is the affine function through (x[1], y[1])
	// with the committed slope; only M1/M2 are nonzero.
	s.M2[segLatitude] = contrast
	s.M1[segLatitude] = s.Y[1] - s.M2[segLatitude]*s.X[1]

	Tl := float64(s.X[1])
	Tl2 := Tl * Tl
	Tl3 := Tl2 * Tl
	Tl4 := Tl3 * Tl

	Sl := float64(s.X[3])
	Sl2 := Sl * Sl
	Sl3 := Sl2 * Sl
	Sl4 := Sl3 * Sl

	if err := solveToe(&s, p.Shadows, Tl, Tl2, Tl3, Tl4); err != nil {
		return Spline{}, &ErrDegenerateSpline{Segment: "toe", Err: err}
	}
	if err := solveShoulder(&s, p.Highlights, Sl, Sl2, Sl3, Sl4); err != nil {
		return Spline{}, &ErrDegenerateSpline{Segment: "shoulder", Err: err}
	}

	return s, nil
}

// solveToe fills M1..M5[toe] by solving the 4- or 5-unknown system
// that pins the curve's value at x=0, its value and first/second
// derivative at the toe node, and (poly4 only) a zero first
// derivative at x=0.
func solveToe(s *Spline, shadows CurveType, Tl, Tl2, Tl3, Tl4 float64) error {
	if shadows == CurvePoly4 {
		a := []float64{
			0, 0, 0, 0, 1,
			0, 0, 0, 1, 0,
			Tl4, Tl3, Tl2, Tl, 1,
			4 * Tl3, 3 * Tl2, 2 * Tl, 1, 0,
			12 * Tl2, 6 * Tl, 2, 0, 0,
		}
		b := []float64{
			float64(s.Y[0]), 0, float64(s.Y[1]), float64(s.M2[segLatitude]), 0,
		}
		if err := gaussSolve(a, b, 5); err != nil {
			return err
		}
		s.M5[segToe] = float32(b[0])
		s.M4[segToe] = float32(b[1])
		s.M3[segToe] = float32(b[2])
		s.M2[segToe] = float32(b[3])
		s.M1[segToe] = float32(b[4])
		return nil
	}

	a := []float64{
		0, 0, 0, 1,
		Tl3, Tl2, Tl, 1,
		3 * Tl2, 2 * Tl, 1, 0,
		6 * Tl, 2, 0, 0,
	}
	b := []float64{
		float64(s.Y[0]), float64(s.Y[1]), float64(s.M2[segLatitude]), 0,
	}
	if err := gaussSolve(a, b, 4); err != nil {
		return err
	}
	s.M5[segToe] = 0
	s.M4[segToe] = float32(b[0])
	s.M3[segToe] = float32(b[1])
	s.M2[segToe] = float32(b[2])
	s.M1[segToe] = float32(b[3])
	return nil
}

// solveShoulder is the mirror of solveToe, pinned at x=1 instead of
// x=0. Note the default degree assignment is inverted relative to the
// toe: poly3 is the "only mode in darktable 3.0.0" default for
// highlights, poly4 for shadows.
func solveShoulder(s *Spline, highlights CurveType, Sl, Sl2, Sl3, Sl4 float64) error {
	if highlights == CurvePoly3 {
		a := []float64{
			1, 1, 1, 1,
			Sl3, Sl2, Sl, 1,
			3 * Sl2, 2 * Sl, 1, 0,
			6 * Sl, 2, 0, 0,
		}
		b := []float64{
			float64(s.Y[4]), float64(s.Y[3]), float64(s.M2[segLatitude]), 0,
		}
		if err := gaussSolve(a, b, 4); err != nil {
			return err
		}
		s.M5[segShoulder] = 0
		s.M4[segShoulder] = float32(b[0])
		s.M3[segShoulder] = float32(b[1])
		s.M2[segShoulder] = float32(b[2])
		s.M1[segShoulder] = float32(b[3])
		return nil
	}

	a := []float64{
		1, 1, 1, 1, 1,
		4, 3, 2, 1, 0,
		Sl4, Sl3, Sl2, Sl, 1,
		4 * Sl3, 3 * Sl2, 2 * Sl, 1, 0,
		12 * Sl2, 6 * Sl, 2, 0, 0,
	}
	b := []float64{
		float64(s.Y[4]), 0, float64(s.Y[3]), float64(s.M2[segLatitude]), 0,
	}
	if err := gaussSolve(a, b, 5); err != nil {
		return err
	}
	s.M5[segShoulder] = float32(b[0])
	s.M4[segShoulder] = float32(b[1])
	s.M3[segShoulder] = float32(b[2])
	s.M2[segShoulder] = float32(b[3])
	s.M1[segShoulder] = float32(b[4])
	return nil
}

// Eval evaluates the curve at x using filmicSpline's segment dispatch.
func (s Spline) Eval(x float32) float32 {
	return filmicSpline(x, s.M1, s.M2, s.M3, s.M4, s.M5, s.LatitudeMin, s.LatitudeMax)
}
