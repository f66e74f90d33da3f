package filmicio

import (
	"testing"

	"github.com/rawtone/filmicrgb/pkg/filmic"
)

func TestOperatorPerformFillsImage(t *testing.T) {
	in := NewBuffer(4, 3)
	for i := range in.Pix {
		in.Pix[i] = 0.1
	}

	rd, err := filmic.CommitParams(filmic.DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	op := NewOperator(in, filmic.NewSRGBProfile(), rd)
	img := op.Perform()

	b := img.Bounds()
	if b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("Perform() bounds = %v, want 4x3", b)
	}
}
