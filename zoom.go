package sitecam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ZoomInput describes one zoom request.
type ZoomInput struct {
	// Scale multiplies the radius when > 0 (< 1 zooms in).
	Scale float64
	// Delta is used when Scale is 0: the factor is exp(Delta·k) with k
	// chosen by Pinch.
	Delta float64
	Pinch bool
	// Focus is the screen point, in NDC, that should stay fixed while
	// zooming. Only used when HasFocus is set.
	Focus    mgl64.Vec2
	HasFocus bool
}

// zoomTask converges radius and target toward the accumulated goal.
type zoomTask struct {
	c            *Controller
	targetRadius float64
	targetCenter mgl64.Vec3
	smoothing    float64
}

// ZoomDelta changes the orbit radius. Rapid calls accumulate into a single
// goal that one animation converges to. With a focus point the target
// shifts so the world point under it stays put, unless the goal radius is
// pinned at a zoom bound.
func (c *Controller) ZoomDelta(in ZoomInput) {
	rNow := clamp(c.state.Radius, c.cfg.ZoomMin, c.cfg.ZoomMax)

	var scale float64
	switch {
	case in.Scale > 0 && finite(in.Scale):
		scale = in.Scale
	case in.Delta != 0 && finite(in.Delta):
		k := c.cfg.ZoomExpWheel
		if in.Pinch {
			k = c.cfg.ZoomExpPinch
		}
		scale = math.Exp(in.Delta * k)
	default:
		return
	}
	scale = clamp(scale, c.cfg.ZoomFactorMin, c.cfg.ZoomFactorMax)

	rBase := rNow
	tBase := c.state.Target
	if c.zoom != nil {
		rBase = c.zoom.targetRadius
		tBase = c.zoom.targetCenter
	}
	rDest := clamp(rBase*scale, c.cfg.ZoomMin, c.cfg.ZoomMax)
	tDest := tBase

	atBound := math.Abs(rDest-c.cfg.ZoomMin) < 1e-6 || math.Abs(rDest-c.cfg.ZoomMax) < 1e-6
	if !atBound && in.HasFocus {
		if hit, ok := c.focusHit(in.Focus, tBase); ok {
			tDest = tBase.Add(hit.Sub(tBase).Mul(1 - rDest/rBase))
		}
	}

	if c.zoom == nil || !c.zoomHandle.Active() {
		c.zoomHandle.Cancel()
		c.zoom = &zoomTask{c: c}
		c.zoomHandle = c.sched.Schedule(c.zoom)
	}
	c.zoom.targetRadius = rDest
	c.zoom.targetCenter = tDest
	c.zoom.smoothing = c.cfg.ZoomSmoothing

	c.emit(EventZoom, 0, 0, 0, scale)
}

// ZoomGoal returns the pending zoom goal while a zoom animation runs.
func (c *Controller) ZoomGoal() (radius float64, center mgl64.Vec3, ok bool) {
	if c.zoom == nil {
		return 0, mgl64.Vec3{}, false
	}
	return c.zoom.targetRadius, c.zoom.targetCenter, true
}

func (c *Controller) cancelZoom() {
	c.zoomHandle.Cancel()
	c.zoom = nil
}

// focusHit casts a ray through the NDC focus point and intersects it with
// the plane through planePoint facing the camera.
func (c *Controller) focusHit(ndc mgl64.Vec2, planePoint mgl64.Vec3) (mgl64.Vec3, bool) {
	camPos := c.camera.Position
	pt := c.camera.Unproject(mgl64.Vec3{ndc[0], ndc[1], 0.5})
	dir := pt.Sub(camPos)
	if dir.Len() < nearZero {
		return mgl64.Vec3{}, false
	}
	dir = dir.Normalize()
	return rayPlane(camPos, dir, planePoint, c.camera.Forward())
}

// Tick implements Task.
func (z *zoomTask) Tick(dt float64) bool {
	c := z.c
	s := smoothingFraction(z.smoothing, dt)

	rCur := clamp(c.state.Radius, c.cfg.ZoomMin, c.cfg.ZoomMax)
	ratio := z.targetRadius / math.Max(rCur, 1e-9)
	rNext := clamp(rCur*math.Pow(math.Max(ratio, 1e-9), s), c.cfg.ZoomMin, c.cfg.ZoomMax)

	tCur := c.state.Target
	tNext := tCur.Add(z.targetCenter.Sub(tCur).Mul(s))

	c.state.Radius = rNext
	c.state.Target = tNext
	c.applyOrbit()

	closeR := math.Abs(z.targetRadius-rNext)/math.Max(z.targetRadius, 1) < 1e-3
	closeT := tNext.Sub(z.targetCenter).LenSqr() < 1e-4
	if !closeR || !closeT {
		return false
	}

	c.state.Radius = z.targetRadius
	c.state.Target = z.targetCenter
	c.applyOrbit()
	if c.zoom == z {
		c.zoom = nil
	}
	return true
}
