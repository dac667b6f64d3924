package sitecam

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Controller owns the viewport state, the camera, the home pose and every
// camera engine. It is single-threaded: call its methods from the goroutine
// that runs the frame loop.
type Controller struct {
	cfg    Config
	scene  Scene
	camera *Camera
	state  ViewportState

	home    HomePose
	hasHome bool
	pivot   mgl64.Vec3
	// hasPivot is false until a model box has been seen.
	hasPivot bool

	sched Scheduler
	input *Classifier
	now   func() time.Time

	pan            *panTask
	panHandle      Handle
	zoom           *zoomTask
	zoomHandle     Handle
	recenterHandle Handle

	fit autoFit

	sink        EventSink
	inputLocked bool
	debug       bool
	frameStats  debugStats

	injectQueue []syntheticEvent
	testRunner  *TestRunner

	// OnRender is the render trigger, called after every camera change.
	OnRender func()
	// OnScreenshot is called by the test runner's screenshot action.
	OnScreenshot func(label string)
}

// NewController creates a controller for scene with the default viewport
// size of 800x600. The initial pose comes from cfg and the auto-fit state
// machine starts polling the scene bounds. scene may be nil until a model
// is loaded; see SetScene.
func NewController(scene Scene, cfg Config) *Controller {
	c := &Controller{
		cfg:   cfg,
		scene: scene,
		now:   time.Now,
	}
	c.camera = newCamera(&c.cfg, 800, 600)
	c.input = NewClassifier(&c.cfg)
	c.state = ViewportState{
		Radius: cfg.InitialRadius,
		Yaw:    cfg.InitialYaw,
		Pitch:  cfg.InitialPitch,
	}
	c.ApplyOrbitToCamera()
	c.startAutoFit()
	return c
}

// SetScene replaces the bounds provider, e.g. after a model load.
func (c *Controller) SetScene(scene Scene) {
	c.scene = scene
}

// SetClock overrides the time source used for latch windows.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// SetEventSink sets the optional camera event sink.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetInputLocked suppresses all input while a modal owns the screen.
// Pointer releases are still recorded.
func (c *Controller) SetInputLocked(locked bool) {
	c.inputLocked = locked
}

// SetViewport resizes the camera viewport. It only reapplies the orbit.
func (c *Controller) SetViewport(width, height float64) {
	c.camera.SetViewport(width, height)
	c.ApplyOrbitToCamera()
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *Camera {
	return c.camera
}

// State returns a copy of the current viewport state.
func (c *Controller) State() ViewportState {
	return c.state
}

// Home returns the saved home pose and whether one has been captured.
func (c *Controller) Home() (HomePose, bool) {
	return c.home, c.hasHome
}

// ModelPivot returns the cached model center and whether it is known.
func (c *Controller) ModelPivot() (mgl64.Vec3, bool) {
	return c.pivot, c.hasPivot
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Classifier returns the gesture classifier.
func (c *Controller) Classifier() *Classifier {
	return c.input
}

// Scheduler returns the animation scheduler.
func (c *Controller) Scheduler() *Scheduler {
	return &c.sched
}

// ApplyOrbitToCamera recomputes the camera pose from the viewport state and
// triggers a render.
func (c *Controller) ApplyOrbitToCamera() {
	c.applyOrbit()
	c.render()
}

// applyOrbit places the camera from the viewport state without rendering.
func (c *Controller) applyOrbit() {
	c.state.sanitize(&c.cfg)
	c.camera.Position = c.state.Target.Add(c.state.offset())
	c.camera.lookAt(c.state.Target)
}

// commitOffset stores a new target and camera offset as canonical
// spherical coordinates and places the camera.
func (c *Controller) commitOffset(target, rel mgl64.Vec3) {
	r, yaw, pitch, ok := sphericalFromOffset(rel)
	if !ok || !finiteVec(target) {
		return
	}
	c.state.Target = target
	c.state.Radius = r
	c.state.Yaw = yaw
	c.state.Pitch = pitch
	c.applyOrbit()
}

func (c *Controller) render() {
	if c.OnRender != nil {
		c.OnRender()
	}
}

// pivotOrTarget returns the rotation pivot: the model center when known,
// else the live target.
func (c *Controller) pivotOrTarget() mgl64.Vec3 {
	if c.hasPivot {
		return c.pivot
	}
	return c.state.Target
}

func (c *Controller) emit(t EventType, dx, dy, angle, scale float64) {
	if c.sink == nil {
		return
	}
	c.sink.EmitEvent(CameraEvent{
		Type:   t,
		Target: c.state.Target,
		Radius: c.state.Radius,
		Yaw:    c.state.Yaw,
		Pitch:  c.state.Pitch,
		DeltaX: dx,
		DeltaY: dy,
		Angle:  angle,
		Scale:  scale,
	})
}

// twoFingerActive reports whether a touch gesture currently owns the
// camera; reframing is suppressed meanwhile.
func (c *Controller) twoFingerActive() bool {
	return c.input.TouchCount() >= 2
}

// Update advances one frame: scripted and injected input first, then the
// auto-fit state machine, then every animation task.
func (c *Controller) Update(dt float64) {
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}

	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()
	c.fit.update(c, time.Duration(dt*float64(time.Second)))
	ticked := c.sched.Update(dt)
	if ticked > 0 {
		c.render()
	}

	if c.debug {
		c.frameStats.tickTime = time.Since(t0)
		c.frameStats.tasks = ticked
		c.debugLog(c.frameStats)
		c.frameStats = debugStats{}
	}
}

// --- Input entry points ---

// Apply runs the engine for one classified action.
func (c *Controller) Apply(action GestureAction) {
	switch a := action.(type) {
	case OrbitAction:
		c.OrbitDelta(a.DX, a.DY, a.Touch)
	case PanAction:
		c.PanDelta(a.DX, a.DY)
	case TwistAction:
		c.OrbitTwist(a.Angle)
	case ZoomAction:
		c.ZoomDelta(a.Input)
	}
	c.frameStats.actions++
}

func (c *Controller) applyAll(actions []GestureAction) {
	for _, a := range actions {
		c.Apply(a)
	}
}

// markInteracted records real user input, which ends the auto-fit
// watchdog.
func (c *Controller) markInteracted() {
	c.fit.stopWatchdog()
}

// PointerDown registers a pressed pointer.
func (c *Controller) PointerDown(ev PointerEvent) {
	c.markInteracted()
	if c.inputLocked {
		return
	}
	mode := c.input.Down(ev, c.now())
	c.debugf("pointer %d down (%s)", ev.ID, mode)
}

// PointerMove feeds a pointer motion sample through the classifier.
func (c *Controller) PointerMove(ev PointerEvent) {
	if c.inputLocked {
		return
	}
	c.applyAll(c.input.Move(ev))
}

// PointerUp releases a pointer. Unknown ids are ignored.
func (c *Controller) PointerUp(id int) {
	c.input.Up(id)
}

// PointerCancel drops a pointer after cancel or lost capture.
func (c *Controller) PointerCancel(id int) {
	c.input.Up(id)
}

// DoubleClick arms the mouse pan latch.
func (c *Controller) DoubleClick() {
	c.markInteracted()
	if c.inputLocked {
		return
	}
	c.input.DoubleClick(c.now())
}

// Wheel zooms toward the wheel position.
func (c *Controller) Wheel(ev WheelEvent) {
	c.markInteracted()
	if c.inputLocked {
		return
	}
	if a, ok := c.input.Wheel(ev, c.camera.Width, c.camera.Height); ok {
		c.Apply(a)
	}
}

// GestureStart begins a native trackpad gesture.
func (c *Controller) GestureStart(scale, rotationDeg float64) {
	c.markInteracted()
	if c.inputLocked {
		return
	}
	c.input.GestureStart(scale, rotationDeg)
}

// GestureChange applies a native trackpad gesture update.
func (c *Controller) GestureChange(scale, rotationDeg float64) {
	if c.inputLocked {
		return
	}
	c.applyAll(c.input.GestureChange(scale, rotationDeg))
}

// GestureEnd finishes a native trackpad gesture.
func (c *Controller) GestureEnd() {
	if c.inputLocked {
		return
	}
	c.input.GestureEnd()
}
