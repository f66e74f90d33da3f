package filmicio

import (
	"image"

	"github.com/mdouchement/hdr/tmo"

	"github.com/rawtone/filmicrgb/pkg/filmic"
)

// Operator adapts filmic.Process to tmo.ToneMappingOperator, the same
// interface the teacher plugs its tonemap menu's Drago03/Durand/
// Fattal02/etc. operators into (pkg/eclipse/tonemap.go's
// SetupTonemapper). A host that already has code built around that
// interface — a tonemap menu, a batch runner — can drop this in next
// to the others instead of special-casing the engine.
type Operator struct {
	In      Buffer
	Profile filmic.WorkingProfile
	Runtime filmic.RuntimeData
	MaxDim  int
}

// NewOperator builds an Operator ready to Perform against the given
// input buffer, its MaxDim defaulting to the buffer's largest side.
func NewOperator(in Buffer, profile filmic.WorkingProfile, rd filmic.RuntimeData) *Operator {
	maxDim := in.Width
	if in.Height > maxDim {
		maxDim = in.Height
	}
	return &Operator{In: in, Profile: profile, Runtime: rd, MaxDim: maxDim}
}

var _ tmo.ToneMappingOperator = (*Operator)(nil)

// Perform runs filmic.Process over the whole image at scale 1 and
// returns the result as a plain image.Image, exactly the contract
// tmo.ToneMappingOperator's callers (ApplyTonemapper's WritePNG/PixRW
// loop) expect.
func (op *Operator) Perform() image.Image {
	out := NewBuffer(op.In.Width, op.In.Height)
	roi := filmic.ROI{Width: op.In.Width, Height: op.In.Height, Scale: 1.0}

	filmic.Process(op.In.Pix, out.Pix, roi, roi, op.Runtime, filmic.ProcessOptions{
		Profile: op.Profile,
		MaxDim:  op.MaxDim,
	})

	return out
}
