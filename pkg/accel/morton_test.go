package accel

import "testing"

func TestQuantizeClampsToRange(t *testing.T) {
	if got := quantize(-5, 0, 10); got != 0 {
		t.Errorf("quantize below range = %v, want 0", got)
	}
	if got := quantize(15, 0, 10); got != 1023 {
		t.Errorf("quantize above range = %v, want 1023", got)
	}
	if got := quantize(10, 0, 10); got != 1023 {
		t.Errorf("quantize at max corner = %v, want 1023", got)
	}
	if got := quantize(5, 0, 10); got == 0 || got == 1023 {
		t.Errorf("quantize at midpoint = %v, want a mid-range code", got)
	}
}

func TestQuantizeDegenerateRange(t *testing.T) {
	if got := quantize(3, 5, 5); got != 0 {
		t.Errorf("quantize with zero-width range = %v, want 0", got)
	}
}

func TestMortonCode3Interleaving(t *testing.T) {
	// All-zero coordinates interleave to zero.
	if got := mortonCode3(0, 0, 0); got != 0 {
		t.Errorf("mortonCode3(0,0,0) = %v, want 0", got)
	}
	// x=1 sets only the lowest interleaved bit slot (bit 2, since x is
	// shifted left by 2 in mortonCode3).
	if got := mortonCode3(1, 0, 0); got != 1<<2 {
		t.Errorf("mortonCode3(1,0,0) = %v, want %v", got, uint32(1<<2))
	}
	if got := mortonCode3(0, 1, 0); got != 1<<1 {
		t.Errorf("mortonCode3(0,1,0) = %v, want %v", got, uint32(1<<1))
	}
	if got := mortonCode3(0, 0, 1); got != 1 {
		t.Errorf("mortonCode3(0,0,1) = %v, want 1", got)
	}
}

func TestMortonCode3Monotonic(t *testing.T) {
	// Moving along a single axis should not decrease the code when the
	// other two coordinates are held at zero.
	prev := mortonCode3(0, 0, 0)
	for v := uint32(1); v < 1024; v *= 2 {
		cur := mortonCode3(v, 0, 0)
		if cur <= prev {
			t.Errorf("mortonCode3(%d,0,0) = %v did not increase over previous %v", v, cur, prev)
		}
		prev = cur
	}
}
