package sitecam

import "testing"

func TestInjectDragOrbits(t *testing.T) {
	c := newTestController()
	before := c.State().Yaw

	c.InjectDrag(300, 300, 400, 300, 10, MouseButtonLeft)
	if len(c.injectQueue) != 11 {
		t.Fatalf("expected 11 queued events, got %d", len(c.injectQueue))
	}
	if !c.Injecting() {
		t.Error("Injecting should be true with queued events")
	}
	runFrames(c, 11)

	if c.Injecting() {
		t.Errorf("expected empty queue, got %d events", len(c.injectQueue))
	}
	assertNear(t, "Δyaw", wrapAngle(c.State().Yaw-before), 100*0.0042)
	if c.Classifier().Count() != 0 {
		t.Errorf("pointer still down after release: %d", c.Classifier().Count())
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	c := newTestController()
	c.InjectDrag(0, 0, 10, 0, 0, MouseButtonLeft)
	// press, final move and release
	if len(c.injectQueue) != 3 {
		t.Errorf("expected 3 queued events, got %d", len(c.injectQueue))
	}
}

func TestInjectMiddleDragPans(t *testing.T) {
	c := newTestController()
	start := c.State()
	c.InjectDrag(300, 300, 340, 300, 5, MouseButtonMiddle)
	runFrames(c, 6)
	settle(t, c)
	s := c.State()
	if s.Target == start.Target {
		t.Error("middle drag did not pan")
	}
	if s.Yaw != start.Yaw || s.Pitch != start.Pitch {
		t.Error("middle drag rotated the camera")
	}
}

func TestInjectDoubleClickThenDragPans(t *testing.T) {
	c := newTestController()
	start := c.State()
	c.InjectDoubleClick(200, 200)
	c.InjectDrag(200, 200, 260, 200, 4, MouseButtonLeft)
	runFrames(c, 8)
	settle(t, c)
	s := c.State()
	if s.Yaw != start.Yaw {
		t.Errorf("yaw changed %v -> %v, want a pan", start.Yaw, s.Yaw)
	}
	if s.Target == start.Target {
		t.Error("target did not move")
	}
}

func TestInjectRightDragTwists(t *testing.T) {
	c := newTestController()
	up := c.Camera().UpAxis()
	c.InjectDrag(100, 100, 150, 100, 3, MouseButtonRight)
	runFrames(c, 4)
	if vecNear(c.Camera().UpAxis(), up, 1e-6) {
		t.Error("right drag did not roll the camera")
	}
}

func TestInjectPinchZoomsIn(t *testing.T) {
	c := newTestController()
	c.InjectPinch(400, 300, 100, 200, 4)
	if len(c.injectQueue) != 12 {
		t.Fatalf("expected 12 queued events, got %d", len(c.injectQueue))
	}
	runFrames(c, 12)
	settle(t, c)
	if r := c.State().Radius; r >= 28 {
		t.Errorf("Radius = %v, want < 28 after spreading fingers", r)
	}
	if c.Classifier().Count() != 0 {
		t.Errorf("%d touches left down", c.Classifier().Count())
	}
}

func TestInjectWheel(t *testing.T) {
	tests := []struct {
		name string
		mods KeyModifiers
		want float64
	}{
		{"plain zooms in", 0, 28 * 0.75},
		{"ctrl zooms out", ModCtrl, 28 * 1.35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			c.InjectWheel(400, 300, 120, tt.mods)
			c.Update(frame)
			r, _, ok := c.ZoomGoal()
			if !ok {
				t.Fatal("no zoom goal")
			}
			assertNear(t, "goal", r, tt.want)
		})
	}
}

func TestInjectClickConsumesTwoFrames(t *testing.T) {
	c := newTestController()
	c.InjectClick(50, 50)
	if len(c.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(c.injectQueue))
	}
	c.Update(frame)
	if c.Classifier().Count() != 1 {
		t.Errorf("Count after press = %d, want 1", c.Classifier().Count())
	}
	c.Update(frame)
	if c.Classifier().Count() != 0 {
		t.Errorf("Count after release = %d, want 0", c.Classifier().Count())
	}
}
