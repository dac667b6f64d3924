package sitecam

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// AutoFitState is the state of the initial framing machine.
type AutoFitState int

const (
	// AutoFitUninitialized means polling has not started.
	AutoFitUninitialized AutoFitState = iota
	// AutoFitPolling means the scene bounds are re-evaluated every
	// AutoFitPoll until a valid box appears or AutoFitMax elapses.
	AutoFitPolling
	// AutoFitFitted means the model was framed and Home captured.
	AutoFitFitted
	// AutoFitGaveUp means no valid box appeared in time; the default pose
	// stays.
	AutoFitGaveUp
	// AutoFitDisabled means the machine was stopped by DisableAutoFit or an
	// explicit home save.
	AutoFitDisabled
)

func (s AutoFitState) String() string {
	switch s {
	case AutoFitUninitialized:
		return "uninitialized"
	case AutoFitPolling:
		return "polling"
	case AutoFitFitted:
		return "fitted"
	case AutoFitGaveUp:
		return "gave-up"
	case AutoFitDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// autoFit tracks the polling timer and the post-fit watchdog.
type autoFit struct {
	state     AutoFitState
	elapsed   time.Duration
	sincePoll time.Duration

	watchActive  bool
	watchElapsed time.Duration
	// watchLocked is set once Home has been saved explicitly; the watchdog
	// never runs again.
	watchLocked bool
}

// startAutoFit begins polling the scene. The first attempt happens
// immediately.
func (c *Controller) startAutoFit() {
	if c.hasHome {
		return
	}
	c.fit.state = AutoFitPolling
	c.fit.elapsed = 0
	c.fit.sincePoll = 0
	c.tryAutoFit()
}

// AutoFitState returns the current state of the framing machine.
func (c *Controller) AutoFitState() AutoFitState {
	return c.fit.state
}

// WatchdogActive reports whether the post-fit watchdog is still running.
func (c *Controller) WatchdogActive() bool {
	return c.fit.watchActive
}

// update advances the polling timer and the watchdog by dt.
func (f *autoFit) update(c *Controller, dt time.Duration) {
	switch f.state {
	case AutoFitPolling:
		f.elapsed += dt
		f.sincePoll += dt
		if f.sincePoll >= c.cfg.AutoFitPoll {
			f.sincePoll = 0
			if c.tryAutoFit() {
				return
			}
		}
		if f.elapsed >= c.cfg.AutoFitMax {
			f.state = AutoFitGaveUp
			c.debugf("auto-fit gave up after %v", f.elapsed)
		}
	case AutoFitFitted:
		if !f.watchActive {
			return
		}
		f.watchElapsed += dt
		if f.watchElapsed >= c.cfg.WatchdogWindow {
			f.watchActive = false
			return
		}
		c.checkWatchdog()
	}
}

// stopWatchdog ends the post-fit watchdog. Called on real user input.
func (f *autoFit) stopWatchdog() {
	f.watchActive = false
}

// sceneBounds returns the current model box when it is usable.
func (c *Controller) sceneBounds() (Box3, bool) {
	if c.scene == nil {
		return Box3{}, false
	}
	box, ok := c.scene.Bounds()
	if !ok || !box.Valid() {
		return Box3{}, false
	}
	return box, true
}

// tryAutoFit frames the model if its box is available.
func (c *Controller) tryAutoFit() bool {
	box, ok := c.sceneBounds()
	if !ok {
		return false
	}
	c.fitToBox(box)
	if !c.hasHome {
		c.home = c.state.home()
		c.hasHome = true
	}
	c.fit.state = AutoFitFitted
	c.fit.watchActive = !c.fit.watchLocked
	c.fit.watchElapsed = 0
	c.debugf("auto-fit: radius %.3f target %v", c.state.Radius, c.state.Target)
	c.emit(EventAutoFit, 0, 0, 0, 0)
	return true
}

// fitToBox places the camera upright at the default angles, looking at the
// box center from the fit distance.
func (c *Controller) fitToBox(box Box3) {
	c.cancelMotion()
	c.pivot = box.Center()
	c.hasPivot = true
	c.camera.Up = worldUp
	margin := math.Max(c.cfg.FitMargin, c.cfg.SafeMinMargin)
	c.state = ViewportState{
		Target: c.pivot,
		Radius: FitDistance(box, mgl64.DegToRad(c.camera.FOV), c.camera.Aspect, margin),
		Yaw:    c.cfg.InitialYaw,
		Pitch:  c.cfg.InitialPitch,
	}
	c.ApplyOrbitToCamera()
}

// checkWatchdog reapplies the fit when the model top clips above the
// viewport or the pose drifted from the auto-captured home.
func (c *Controller) checkWatchdog() {
	box, ok := c.sceneBounds()
	if !ok {
		return
	}
	center := box.Center()
	top := mgl64.Vec3{center[0], box.Max[1], center[2]}
	_, sy, visible := c.camera.WorldToScreen(top)
	clipped := !visible || sy < 0

	eps := c.cfg.WatchdogEpsilon
	drifted := c.state.Target.Sub(c.home.Target).Len() > eps ||
		math.Abs(c.state.Radius-c.home.Radius) > eps

	if !clipped && !drifted {
		return
	}
	c.fitToBox(box)
	// Still an automatic home, so a refit may refresh it.
	c.home = c.state.home()
	c.hasHome = true
	c.debugf("watchdog refit (clipped=%t drifted=%t)", clipped, drifted)
	c.emit(EventAutoFit, 0, 0, 0, 0)
}

// DisableAutoFit stops polling and the watchdog. The current pose is kept.
func (c *Controller) DisableAutoFit() {
	if c.fit.state == AutoFitPolling || c.fit.state == AutoFitUninitialized {
		c.fit.state = AutoFitDisabled
	}
	c.fit.watchActive = false
}

// SaveHome captures the current pose as Home. An explicit save also stops
// auto-fit and locks the watchdog off for good.
func (c *Controller) SaveHome() {
	c.home = c.state.home()
	c.hasHome = true
	c.fit.watchLocked = true
	c.DisableAutoFit()
	c.emit(EventHomeSaved, 0, 0, 0, 0)
}

// cancelMotion stops every in-flight camera animation.
func (c *Controller) cancelMotion() {
	c.cancelPan()
	c.cancelZoom()
	c.recenterHandle.Cancel()
}

// RecenterOptions configures RecenterCamera. The zero value frames the
// current scene bounds at the minimum safe margin, keeping the angles.
type RecenterOptions struct {
	// Box frames this box instead of the scene bounds.
	Box *Box3
	// Target replaces the box center as the look-at point.
	Target *mgl64.Vec3
	// Distance, when > 0, replaces the computed fit distance.
	Distance float64
	// Yaw and Pitch, when set, replace the current angles.
	Yaw   *float64
	Pitch *float64
	// Margin multiplies the fit distance; it is raised to SafeMinMargin.
	Margin float64
	// VerticalOffsetRatio shifts the target up by this fraction of the box
	// height and enlarges the vertical fit to match.
	VerticalOffsetRatio float64
	// Animate eases target and radius over Duration (RecenterDur if 0).
	Animate  bool
	Duration time.Duration
	// KeepRoll leaves the camera up vector alone instead of forcing it to
	// world up.
	KeepRoll bool
}

// fallbackFrame is framed when no model box is known.
var fallbackFrame = Box3{Min: mgl64.Vec3{-10, -10, -10}, Max: mgl64.Vec3{10, 10, 10}}

// RecenterCamera frames a box. It is ignored while a two-finger touch
// gesture owns the camera.
func (c *Controller) RecenterCamera(opts RecenterOptions) {
	if c.twoFingerActive() {
		return
	}

	var (
		box    Box3
		hasBox bool
	)
	if opts.Box != nil && opts.Box.Valid() {
		box, hasBox = *opts.Box, true
	} else {
		box, hasBox = c.sceneBounds()
	}
	if !hasBox {
		box = fallbackFrame
	}
	size := box.Size()
	center := box.Center()

	margin := opts.Margin
	if margin <= 0 {
		margin = c.cfg.SafeMinMargin
	}
	margin = math.Max(margin, c.cfg.SafeMinMargin)

	dist := c.cfg.InitialRadius
	if hasBox {
		dist = fitDistanceOffset(box, mgl64.DegToRad(c.camera.FOV), c.camera.Aspect, margin, opts.VerticalOffsetRatio)
	}
	if opts.Distance > 0 && finite(opts.Distance) {
		dist = opts.Distance
	}

	if opts.Yaw != nil && finite(*opts.Yaw) {
		c.state.Yaw = *opts.Yaw
	}
	if opts.Pitch != nil && finite(*opts.Pitch) {
		c.state.Pitch = clamp(*opts.Pitch, c.cfg.MinPitch, c.cfg.MaxPitch)
	}
	if opts.Target != nil && finiteVec(*opts.Target) {
		center = *opts.Target
	}
	dest := mgl64.Vec3{center[0], center[1] + size[1]*opts.VerticalOffsetRatio, center[2]}

	c.cancelMotion()
	upright := func() {
		if !opts.KeepRoll {
			c.camera.Up = worldUp
		}
	}

	if !opts.Animate {
		c.state.Target = dest
		c.state.Radius = dist
		upright()
		c.ApplyOrbitToCamera()
		c.emit(EventRecenter, 0, 0, 0, 0)
		return
	}

	dur := opts.Duration
	if dur <= 0 {
		dur = c.cfg.RecenterDur
	}
	t := newTweenTask(func() {
		upright()
		c.applyOrbit()
	})
	secs := dur.Seconds()
	t.add(&c.state.Target[0], dest[0], secs, ease.OutCubic)
	t.add(&c.state.Target[1], dest[1], secs, ease.OutCubic)
	t.add(&c.state.Target[2], dest[2], secs, ease.OutCubic)
	t.add(&c.state.Radius, clamp(dist, c.cfg.ZoomMin, c.cfg.ZoomMax), secs, ease.OutCubic)
	c.recenterHandle = c.sched.Schedule(t)
	c.emit(EventRecenter, 0, 0, 0, 0)
}

// SyncOptions configures SyncOrbitTargetToModel.
type SyncOptions struct {
	Animate bool
	// SaveAsHome stores the framed pose as an explicit Home.
	SaveAsHome bool
}

// SyncOrbitTargetToModel refreshes the model pivot from the scene bounds
// and frames the model upright. Nothing happens before a model is loaded
// or during a two-finger gesture.
func (c *Controller) SyncOrbitTargetToModel(opts SyncOptions) {
	if c.twoFingerActive() {
		return
	}
	box, ok := c.sceneBounds()
	if !ok {
		return
	}
	c.pivot = box.Center()
	c.hasPivot = true
	c.RecenterCamera(RecenterOptions{Box: &box, Margin: c.cfg.FitMargin, Animate: opts.Animate})

	if opts.SaveAsHome {
		margin := math.Max(c.cfg.FitMargin, c.cfg.SafeMinMargin)
		c.camera.Up = worldUp
		dest := c.state
		dest.Target = c.pivot
		dest.Radius = FitDistance(box, mgl64.DegToRad(c.camera.FOV), c.camera.Aspect, margin)
		dest.sanitize(&c.cfg)
		c.home = dest.home()
		c.hasHome = true
		c.fit.watchLocked = true
		c.DisableAutoFit()
		c.emit(EventHomeSaved, 0, 0, 0, 0)
	}
}

// RefreshModelPivotAndFit recomputes the pivot after a model change and
// reframes it. Home is left alone.
func (c *Controller) RefreshModelPivotAndFit(animate bool) {
	box, ok := c.sceneBounds()
	if !ok {
		return
	}
	c.pivot = box.Center()
	c.hasPivot = true
	c.RecenterCamera(RecenterOptions{Box: &box, Margin: c.cfg.FitMargin, Animate: animate})
}

// ResetRotation returns the camera upright to Home. Without a Home it fits
// the model and saves that as Home, or falls back to the default angles
// when no model is loaded. Calling it twice is the same as calling it once.
func (c *Controller) ResetRotation() {
	if c.twoFingerActive() {
		return
	}
	switch {
	case c.hasHome:
		c.cancelMotion()
		c.state = c.home.state()
		c.camera.Up = worldUp
		c.ApplyOrbitToCamera()
	default:
		if box, ok := c.sceneBounds(); ok {
			c.pivot = box.Center()
			c.hasPivot = true
			yaw, pitch := c.cfg.InitialYaw, c.cfg.InitialPitch
			c.RecenterCamera(RecenterOptions{Box: &box, Margin: c.cfg.FitMargin, Yaw: &yaw, Pitch: &pitch})
			c.SaveHome()
		} else {
			c.cancelMotion()
			c.state.Yaw = c.cfg.InitialYaw
			c.state.Pitch = c.cfg.InitialPitch
			c.camera.Up = worldUp
			c.ApplyOrbitToCamera()
		}
	}
	c.emit(EventReset, 0, 0, 0, 0)
}
