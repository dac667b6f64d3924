package sitecam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitTwist rolls the camera by angle radians around its current view
// axis, rotating position and target around the model pivot.
func (c *Controller) OrbitTwist(angle float64) {
	if !finite(angle) || math.Abs(angle) < 1e-6 {
		return
	}
	pivot := c.pivotOrTarget()
	// Derived fresh so twist composes with any prior orbit.
	fwd := normalizeOr(c.state.Target.Sub(c.camera.Position), c.camera.Forward())
	q := mgl64.QuatRotate(angle, fwd)

	posRel := q.Rotate(c.camera.Position.Sub(pivot))
	tgtRel := q.Rotate(c.state.Target.Sub(pivot))

	c.camera.Up = normalizeOr(q.Rotate(c.camera.Up), worldUp)
	c.commitOffset(pivot.Add(tgtRel), posRel.Sub(tgtRel))

	c.emit(EventTwist, 0, 0, angle, 0)
	c.render()
}
