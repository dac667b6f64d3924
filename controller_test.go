package sitecam

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const frame = 1.0 / 60

// towerBox is a 10x20x10 box standing on the ground plane.
var towerBox = Box3{Min: mgl64.Vec3{-5, 0, -5}, Max: mgl64.Vec3{5, 20, 5}}

// staticScene returns a Scene that always reports box.
func staticScene(box Box3) Scene {
	return SceneFunc(func() (Box3, bool) { return box, true })
}

// lazyScene reports its box only once ready is set.
type lazyScene struct {
	box   Box3
	ready bool
}

func (s *lazyScene) Bounds() (Box3, bool) { return s.box, s.ready }

type recordingSink struct {
	events []CameraEvent
}

func (r *recordingSink) EmitEvent(e CameraEvent) { r.events = append(r.events, e) }

func (r *recordingSink) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// newTestController returns a controller without a scene at the default
// pose.
func newTestController() *Controller {
	return NewController(nil, DefaultConfig())
}

// runFrames advances the controller n frames at 60 Hz.
func runFrames(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Update(frame)
	}
}

// settle runs frames until no animation is pending, up to a limit.
func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 600; i++ {
		if c.Scheduler().Len() == 0 {
			return
		}
		c.Update(frame)
	}
	t.Fatal("animations did not settle")
}

func TestNewControllerDefaultPose(t *testing.T) {
	c := newTestController()
	s := c.State()
	if s.Radius != 28 {
		t.Errorf("Radius = %v, want 28", s.Radius)
	}
	assertNear(t, "Yaw", s.Yaw, math.Pi/4)
	assertNear(t, "Pitch", s.Pitch, 0.35*math.Pi)
	want := orbitOffset(28, math.Pi/4, 0.35*math.Pi)
	if !vecNear(c.Camera().Position, want, 1e-9) {
		t.Errorf("Position = %v, want %v", c.Camera().Position, want)
	}
	if c.AutoFitState() != AutoFitPolling {
		t.Errorf("AutoFitState = %s, want polling", c.AutoFitState())
	}
	if _, ok := c.Home(); ok {
		t.Error("Home captured without a scene")
	}
}

func TestOnRenderCalled(t *testing.T) {
	c := newTestController()
	renders := 0
	c.OnRender = func() { renders++ }
	c.OrbitDelta(10, 0, false)
	if renders != 1 {
		t.Errorf("renders after orbit = %d, want 1", renders)
	}
	c.PanDelta(10, 0)
	c.Update(frame)
	if renders != 2 {
		t.Errorf("renders after pan frame = %d, want 2", renders)
	}
}

func TestIdleFrameDoesNotRender(t *testing.T) {
	c := newTestController()
	c.DisableAutoFit()
	renders := 0
	c.OnRender = func() { renders++ }
	runFrames(c, 5)
	if renders != 0 {
		t.Errorf("idle renders = %d, want 0", renders)
	}
}

func TestInputLocked(t *testing.T) {
	c := newTestController()
	before := c.State()

	c.PointerDown(mouse(0, 100, 100, MouseButtonLeft))
	c.SetInputLocked(true)
	c.PointerMove(mouse(0, 200, 100, MouseButtonLeft))
	c.Wheel(WheelEvent{X: 400, Y: 300, DeltaY: 50})
	c.GestureChange(2, 45)
	runFrames(c, 10)
	if c.State() != before {
		t.Errorf("state changed while locked: %+v", c.State())
	}

	// Releases still land so no pointer is stuck after unlocking.
	c.PointerUp(0)
	if c.Classifier().Count() != 0 {
		t.Errorf("Count = %d after release, want 0", c.Classifier().Count())
	}
	c.SetInputLocked(false)
	c.PointerDown(mouse(0, 100, 100, MouseButtonLeft))
	c.PointerMove(mouse(0, 110, 100, MouseButtonLeft))
	if c.State() == before {
		t.Error("state unchanged after unlocking")
	}
}

func TestEventSink(t *testing.T) {
	c := newTestController()
	sink := &recordingSink{}
	c.SetEventSink(sink)

	c.OrbitDelta(5, 0, false)
	c.PanDelta(3, 0)
	c.PanDelta(3, 0)
	c.ZoomDelta(ZoomInput{Scale: 0.9})
	c.OrbitTwist(0.1)

	tests := []struct {
		typ  EventType
		want int
	}{
		{EventOrbit, 1},
		{EventPan, 2},
		{EventZoom, 1},
		{EventTwist, 1},
	}
	for _, tt := range tests {
		if got := sink.count(tt.typ); got != tt.want {
			t.Errorf("count(%d) = %d, want %d", tt.typ, got, tt.want)
		}
	}
	last := sink.events[len(sink.events)-1]
	if last.Angle != 0.1 {
		t.Errorf("twist event angle = %v", last.Angle)
	}
	if sink.events[3].Scale != 0.9 {
		t.Errorf("zoom event scale = %v", sink.events[3].Scale)
	}
}

func TestSetViewportKeepsPose(t *testing.T) {
	c := NewController(staticScene(towerBox), DefaultConfig())
	before := c.State()
	c.SetViewport(1920, 1080)
	if c.State() != before {
		t.Errorf("resize changed state: %+v -> %+v", before, c.State())
	}
	assertNear(t, "Aspect", c.Camera().Aspect, 1920.0/1080.0)
}

func TestApplyDispatches(t *testing.T) {
	c := newTestController()
	c.Apply(ZoomAction{Input: ZoomInput{Scale: 0.5}})
	if r, _, ok := c.ZoomGoal(); !ok || r != 14 {
		t.Errorf("ZoomGoal = %v %v, want 14", r, ok)
	}
	c.Apply(PanAction{DX: 4})
	if dx, _ := c.PendingPan(); dx != 4 {
		t.Errorf("PendingPan dx = %v, want 4", dx)
	}
}
