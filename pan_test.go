package sitecam

import (
	"math"
	"testing"
)

func TestPanDrainsAlongRight(t *testing.T) {
	c := newTestController()
	c.DisableAutoFit()
	start := c.State().Target
	right := c.Camera().Right()
	up := c.Camera().UpAxis()
	base := c.State().Radius * panPixelScale * c.Config().PanFactor

	c.PanDelta(30, 0)
	settle(t, c)

	if dx, dy := c.PendingPan(); dx != 0 || dy != 0 {
		t.Errorf("PendingPan = (%v,%v) after settling", dx, dy)
	}
	moved := c.State().Target.Sub(start)
	along := moved.Dot(right)
	if along > -29.8*base+1e-9 || along < -30*base-1e-9 {
		t.Errorf("displacement along right = %v, want in [%v, %v]", along, -30*base, -29.8*base)
	}
	if math.Abs(moved.Dot(up)) > 1e-9 {
		t.Errorf("vertical displacement = %v, want 0", moved.Dot(up))
	}
}

func TestPanVerticalMovesUp(t *testing.T) {
	c := newTestController()
	start := c.State().Target
	up := c.Camera().UpAxis()
	c.PanDelta(0, 20)
	settle(t, c)
	if d := c.State().Target.Sub(start).Dot(up); d <= 0 {
		t.Errorf("dragging down moved the target %v along up", d)
	}
}

func TestPanAccumulates(t *testing.T) {
	c := newTestController()
	c.PanDelta(10, 2)
	c.PanDelta(5, -1)
	dx, dy := c.PendingPan()
	if dx != 15 || dy != 1 {
		t.Errorf("PendingPan = (%v,%v), want (15,1)", dx, dy)
	}
	if c.Scheduler().Len() != 1 {
		t.Errorf("scheduled tasks = %d, want 1", c.Scheduler().Len())
	}
}

func TestPanFirstFrameFraction(t *testing.T) {
	c := newTestController()
	c.PanDelta(100, 0)
	c.Update(frame)
	dx, _ := c.PendingPan()
	// One 60 Hz frame applies exactly PanSmooth.
	assertNear(t, "pending", dx, 100*(1-0.22))
}

func TestPanKeepsOrientation(t *testing.T) {
	c := newTestController()
	before := c.State()
	c.PanDelta(-40, 15)
	settle(t, c)
	after := c.State()
	if after.Radius != before.Radius || after.Yaw != before.Yaw || after.Pitch != before.Pitch {
		t.Errorf("pan changed the orbit: %+v -> %+v", before, after)
	}
}

func TestSmoothingFraction(t *testing.T) {
	tests := []struct {
		name string
		s    float64
		dt   float64
		want float64
	}{
		{"one frame", 0.22, 1.0 / 60, 0.22},
		{"two frames", 0.5, 2.0 / 60, 0.75},
		{"zero dt", 0.3, 0, 0.3},
		{"nan dt", 0.3, math.NaN(), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := smoothingFraction(tt.s, tt.dt); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("smoothingFraction(%v, %v) = %v, want %v", tt.s, tt.dt, got, tt.want)
			}
		})
	}
}

func TestPanEmitsOnEveryDelta(t *testing.T) {
	c := newTestController()
	sink := &recordingSink{}
	c.SetEventSink(sink)

	c.PanDelta(10, 2)
	c.PanDelta(5, -1)
	c.PanDelta(0, 0)

	if got := sink.count(EventPan); got != 2 {
		t.Fatalf("pan events = %d, want 2", got)
	}
	want := [][2]float64{{10, 2}, {5, -1}}
	for i, w := range want {
		ev := sink.events[i]
		if ev.DeltaX != w[0] || ev.DeltaY != w[1] {
			t.Errorf("event %d delta = (%v,%v), want (%v,%v)", i, ev.DeltaX, ev.DeltaY, w[0], w[1])
		}
	}
}
