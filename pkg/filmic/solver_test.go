package filmic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGaussSolveAgreesWithGonum(t *testing.T) {
	cases := []struct {
		name string
		n    int
		a    []float64
		b    []float64
	}{
		{
			name: "4x4 toe-like",
			n:    4,
			a: []float64{
				0, 0, 0, 1,
				0.125, 0.015625, 0.125, 1,
				3 * 0.015625, 2 * 0.125, 1, 0,
				6 * 0.125, 2, 0, 0,
			},
			b: []float64{0.01, 0.2, 1.5, 0},
		},
		{
			name: "5x5 shoulder-like",
			n:    5,
			a: []float64{
				1, 1, 1, 1, 1,
				4, 3, 2, 1, 0,
				0.6561, 0.729, 0.81, 0.9, 1,
				4 * 0.729, 3 * 0.81, 2 * 0.9, 1, 0,
				12 * 0.81, 6 * 0.9, 2, 0, 0,
			},
			b: []float64{0.9, 0, 0.7, 1.5, 0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotA := append([]float64{}, c.a...)
			gotB := append([]float64{}, c.b...)
			if err := gaussSolve(gotA, gotB, c.n); err != nil {
				t.Fatalf("gaussSolve: %v", err)
			}

			A := mat.NewDense(c.n, c.n, append([]float64{}, c.a...))
			B := mat.NewVecDense(c.n, append([]float64{}, c.b...))
			var X mat.VecDense
			if err := X.SolveVec(A, B); err != nil {
				t.Fatalf("gonum solve: %v", err)
			}

			for i := 0; i < c.n; i++ {
				want := X.AtVec(i)
				if math.Abs(gotB[i]-want) > 1e-6 {
					t.Errorf("x[%d]: gaussSolve=%g gonum=%g", i, gotB[i], want)
				}
			}
		})
	}
}

func TestGaussSolveDegeneratePivot(t *testing.T) {
	a := []float64{
		0, 0,
		0, 0,
	}
	b := []float64{1, 1}
	err := gaussSolve(a, b, 2)
	if err == nil {
		t.Fatal("expected degenerate pivot error, got nil")
	}
	if _, ok := err.(*ErrDegeneratePivot); !ok {
		t.Errorf("expected *ErrDegeneratePivot, got %T", err)
	}
}
