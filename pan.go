package sitecam

import "math"

// panPixelScale converts a pixel of pan input into world units per unit of
// orbit radius, before PanFactor.
const panPixelScale = 0.0035

// panTask drains the pending pan buffer with exponential smoothing.
type panTask struct {
	c      *Controller
	dx, dy float64
}

// PanDelta queues a screen-space pan. Bursts of calls accumulate into one
// pending buffer that is applied a fraction per frame, so pan speed follows
// the orbit radius and never jumps.
func (c *Controller) PanDelta(dx, dy float64) {
	if !finite(dx) || !finite(dy) || (dx == 0 && dy == 0) {
		return
	}
	if c.pan != nil && c.panHandle.Active() {
		c.pan.dx += dx
		c.pan.dy += dy
	} else {
		c.panHandle.Cancel()
		c.pan = &panTask{c: c, dx: dx, dy: dy}
		c.panHandle = c.sched.Schedule(c.pan)
	}
	c.emit(EventPan, dx, dy, 0, 0)
}

// cancelPan drops any pending pan.
func (c *Controller) cancelPan() {
	c.panHandle.Cancel()
	c.pan = nil
}

// PendingPan returns the pan input, in pixels, not yet applied.
func (c *Controller) PendingPan() (dx, dy float64) {
	if c.pan == nil {
		return 0, 0
	}
	return c.pan.dx, c.pan.dy
}

// Tick implements Task.
func (p *panTask) Tick(dt float64) bool {
	c := p.c
	f := smoothingFraction(c.cfg.PanSmooth, dt)
	ax, ay := p.dx*f, p.dy*f
	p.dx -= ax
	p.dy -= ay

	c.panBy(ax, ay)

	if math.Abs(p.dx) > c.cfg.PanResidual || math.Abs(p.dy) > c.cfg.PanResidual {
		return false
	}
	if c.pan == p {
		c.pan = nil
	}
	return true
}

// panBy moves the target along the camera's right and up axes. Dragging
// right moves the scene right.
func (c *Controller) panBy(dx, dy float64) {
	base := c.state.Radius * panPixelScale * c.cfg.PanFactor
	right := c.camera.Right()
	up := c.camera.UpAxis()
	c.state.Target = c.state.Target.Add(right.Mul(-dx * base)).Add(up.Mul(dy * base))
	c.applyOrbit()
}

// smoothingFraction converts a per-60Hz-frame smoothing factor into the
// fraction to apply over dt seconds.
func smoothingFraction(s, dt float64) float64 {
	if dt <= 0 || !finite(dt) {
		return s
	}
	return 1 - math.Pow(1-s, dt*60)
}
