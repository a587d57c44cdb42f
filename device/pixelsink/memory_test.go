package pixelsink

import "testing"

func TestMemorySinkAccumulatesFrames(t *testing.T) {
	sink := NewMemorySink("mem")
	if sink.Name() != "mem" {
		t.Errorf("Name() = %q, want mem", sink.Name())
	}
	if sink.Last() != nil {
		t.Fatal("Last() should be nil before any Write")
	}

	p1 := buildTestPixels(2, 2)
	p2 := buildTestPixels(3, 3)
	if err := sink.Write(p1, 2, 2); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := sink.Write(p2, 3, 3); err != nil {
		t.Fatalf("Write 2: %v", err)
	}

	frames := sink.Frames()
	if len(frames) != 2 {
		t.Fatalf("len(Frames()) = %d, want 2", len(frames))
	}
	if frames[0].Bounds().Dx() != 2 || frames[1].Bounds().Dx() != 3 {
		t.Errorf("unexpected frame sizes: %v, %v", frames[0].Bounds(), frames[1].Bounds())
	}

	last := sink.Last()
	if last == nil || last.Bounds().Dx() != 3 {
		t.Errorf("Last() = %v, want 3x3 frame", last)
	}

	// Mutating the caller's slice after Write must not affect the stored copy.
	p2[0] = 255
	if sink.Last().Pix[0] == 255 {
		t.Error("MemorySink.Write did not copy pixels; mutation leaked through")
	}
}
