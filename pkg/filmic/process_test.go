package filmic

import "testing"

type testLogger struct {
	messages []string
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}

func TestProcessRejectsWrongChannelCount(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	roi := ROI{Width: 2, Height: 2, Scale: 1.0}
	in := make([]float32, 2*2*3) // wrong: 3 channels, not 4
	out := make([]float32, 2*2*4)
	logger := &testLogger{}

	Process(in, out, roi, roi, rd, ProcessOptions{Logger: logger, MaxDim: 2})

	if len(logger.messages) == 0 {
		t.Error("expected Process to report the channel mismatch via Logger")
	}
}

func TestProcessFillsOutput(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	const width, height = 8, 8
	roi := ROI{Width: width, Height: height, Scale: 1.0}

	in := make([]float32, width*height*4)
	for i := 0; i < width*height; i++ {
		o := i * 4
		in[o], in[o+1], in[o+2], in[o+3] = 0.1845, 0.1845, 0.1845, 1.0
	}
	out := make([]float32, width*height*4)

	result := Process(in, out, roi, roi, rd, ProcessOptions{MaxDim: width})
	if result.ReconstructionRan {
		t.Error("flat unclipped image should not trigger reconstruction")
	}

	for i := 0; i < width*height; i++ {
		o := i * 4
		if out[o] <= 0 || out[o] >= 1 {
			t.Fatalf("pixel %d: expected output in (0,1), got %v", i, out[o])
		}
		if out[o+3] != 1.0 {
			t.Errorf("pixel %d: expected alpha to pass through as 1.0, got %v", i, out[o+3])
		}
	}
}

func TestProcessShowMask(t *testing.T) {
	rd, err := CommitParams(DefaultParams())
	if err != nil {
		t.Fatalf("CommitParams: %v", err)
	}

	const width, height = 4, 4
	roi := ROI{Width: width, Height: height, Scale: 1.0}

	in := make([]float32, width*height*4)
	for i := range in {
		if i%4 != 3 {
			in[i] = 4.0
		} else {
			in[i] = 1.0
		}
	}
	out := make([]float32, width*height*4)

	Process(in, out, roi, roi, rd, ProcessOptions{MaxDim: width, ShowMask: true})

	for i := 0; i < width*height; i++ {
		o := i * 4
		if out[o] != out[o+1] || out[o+1] != out[o+2] {
			t.Errorf("pixel %d: expected mask broadcast to identical channels, got %v %v %v", i, out[o], out[o+1], out[o+2])
		}
	}
}

func TestProcessPanicsOnROIMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Process to panic on mismatched roi dimensions")
		}
	}()

	rd, _ := CommitParams(DefaultParams())
	roiIn := ROI{Width: 4, Height: 4}
	roiOut := ROI{Width: 4, Height: 8}
	Process(make([]float32, 4*4*4), make([]float32, 4*8*4), roiIn, roiOut, rd, ProcessOptions{})
}
