package profiler

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestTickSamplesAtInterval(t *testing.T) {
	clk := &fakeClock{now: time.Unix(100, 0)}
	p := NewProfiler(WithClock(clk.Now), WithUpdateInterval(time.Second))

	for i := range 9 {
		clk.now = clk.now.Add(100 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("tick %d sampled before the interval elapsed", i)
		}
	}
	clk.now = clk.now.Add(100 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("tick at the interval did not sample")
	}
	if got := p.Last().FPS; math.Abs(got-10) > 1e-9 {
		t.Errorf("FPS = %v, want 10", got)
	}
	if p.Last().HeapMB <= 0 {
		t.Errorf("HeapMB = %v, want > 0", p.Last().HeapMB)
	}

	clk.now = clk.now.Add(10 * time.Millisecond)
	if p.Tick() {
		t.Error("sample window was not reset")
	}
}

func TestUpdateIntervalDefault(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
