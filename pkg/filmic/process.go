package filmic

// Logger is the caller-supplied sink for user-visible conditions the
// core needs to report without owning a logging dependency itself —
// the leaf-module analogue of dt_control_log. *log.Logger satisfies
// this; nil is a valid "don't bother" Logger.
type Logger interface {
	Printf(format string, args ...interface{})
}

// ROI describes one region of interest: its pixel dimensions plus the
// render scale relative to the image's native resolution, feeding the
// wavelet reconstructor's scale-count formula (§6, §4.6).
type ROI struct {
	Width, Height int
	Scale         float32 // roi.scale / piece.iscale
}

// ProcessOptions carries the handful of knobs Process needs beyond
// the runtime data itself: the host's working profile (nil is valid,
// falling back to DefaultCameraLuminance), the unscaled image's
// largest dimension (feeds scaleCount), and a debug flag mirroring
// the GUI's show_mask toggle (EXPANSION 3.3) — since there's no GUI
// here, a caller that wants the mask preview sets ShowMask and reads
// it back from the Result.
type ProcessOptions struct {
	Profile  WorkingProfile
	MaxDim   int
	ShowMask bool
	Logger   Logger
}

// ProcessResult reports what Process actually did, beyond filling the
// output buffer: whether reconstruction ran, and the clipping mask
// Process built (the same mask ShowMask broadcasts into out). Both are
// zero when the input is rejected.
type ProcessResult struct {
	ReconstructionRan bool
	Mask              Mask
}

// Process fills out from in according to rd, per §6's
// process(in, out, roi_in, roi_out, runtime_data, work_profile)
// contract: both buffers are 4-channel interleaved float32, roiIn and
// roiOut must agree on width and height (the "Open question" of §9 —
// a real mismatch between roi_in and roi_out height is an assertion
// failure here, not silently handled), and Process returns after
// completely filling out unless the input is rejected as below.
//
// If in's logical channel count isn't 4 (len(in) != width*height*4),
// Process reports the condition via opts.Logger and returns without
// touching out, matching §7's "input rejected" error kind — the host
// is expected to fall back to copying its own input.
func Process(in, out []float32, roiIn, roiOut ROI, rd RuntimeData, opts ProcessOptions) ProcessResult {
	if roiIn.Width != roiOut.Width || roiIn.Height != roiOut.Height {
		panic("filmic: roi_in and roi_out dimensions differ")
	}

	width, height := roiOut.Width, roiOut.Height
	want := width * height * 4
	if len(in) != want || len(out) != want {
		if opts.Logger != nil {
			opts.Logger.Printf("filmic: process: expected 4-channel input/output of %d floats, got in=%d out=%d", want, len(in), len(out))
		}
		return ProcessResult{}
	}

	threshold := rd.ReconstructThreshold
	feather := rd.ReconstructFeather
	mask := BuildMask(in, width, height, threshold, feather)

	if opts.ShowMask {
		mask.Broadcast(out)
		return ProcessResult{Mask: mask}
	}

	source := in
	reconstructed := false
	if mask.NeedsReconstruction() {
		result := Reconstruct(in, width, height, mask, rd, opts.Profile, opts.MaxDim, roiIn.Scale)
		if result.OK {
			source = result.Reconstructed
			reconstructed = true
		} else if opts.Logger != nil {
			opts.Logger.Printf("filmic: highlight reconstruction failed, falling back to unreconstructed input")
		}
	}

	parallelRows(height, func(y int) {
		rowOff := y * width * 4
		for x := 0; x < width; x++ {
			o := rowOff + x*4
			in3 := [3]float32{source[o], source[o+1], source[o+2]}
			out3 := TransformPixel(in3, rd, opts.Profile)
			out[o], out[o+1], out[o+2] = out3[0], out3[1], out3[2]
			out[o+3] = source[o+3]
		}
	})

	return ProcessResult{ReconstructionRan: reconstructed, Mask: mask}
}
