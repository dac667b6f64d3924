package sitecam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// driftEpsilonPx is the pivot displacement, in pixels, that triggers a
// compensating pan after an orbit step.
const driftEpsilonPx = 0.01

// OrbitDelta rotates the camera around the model pivot by a screen delta.
// Horizontal motion yaws around world up; vertical motion pitches around
// the post-yaw right axis. A step whose pitch would leave the allowed band
// or cross a pole keeps its yaw and drops its pitch.
func (c *Controller) OrbitDelta(dx, dy float64, touch bool) {
	if !finite(dx) || !finite(dy) || (dx == 0 && dy == 0) {
		return
	}
	rot := c.cfg.RotSpeedDesktop
	if touch {
		rot = c.cfg.RotSpeedTouch
	}
	// Signs make the model follow the drag.
	yaw := -dx * rot
	pitch := -dy * rot

	pivot := c.pivotOrTarget()
	bx, by, seenBefore := c.camera.WorldToScreen(pivot)

	vP := c.camera.Position.Sub(pivot)
	vT := c.state.Target.Sub(pivot)
	up0 := normalizeOr(c.camera.Up, worldUp)

	fwd0 := normalizeOr(vT.Sub(vP), c.camera.Forward())
	right0 := normalizeOr(fwd0.Cross(up0), mgl64.Vec3{1, 0, 0})
	upOrtho := normalizeOr(right0.Cross(fwd0), worldUp)

	qYaw := mgl64.QuatRotate(yaw, worldUp)
	vP1 := qYaw.Rotate(vP)
	vT1 := qYaw.Rotate(vT)
	up1 := qYaw.Rotate(upOrtho)
	right1 := normalizeOr(qYaw.Rotate(right0), mgl64.Vec3{1, 0, 0})

	qPitch := mgl64.QuatRotate(pitch, right1)
	qTotal := qPitch.Mul(qYaw)
	vP2 := qTotal.Rotate(vP)
	vT2 := qTotal.Rotate(vT)
	up2 := qTotal.Rotate(up0)

	usedP, usedT, usedUp := vP1, vT1, up1
	if c.pitchAllowed(vP1.Sub(vT1), vP2.Sub(vT2), pitch) {
		usedP, usedT, usedUp = vP2, vT2, up2
	}

	c.camera.Up = normalizeOr(usedUp, worldUp)
	c.commitOffset(pivot.Add(usedT), usedP.Sub(usedT))

	if seenBefore {
		if ax, ay, ok := c.camera.WorldToScreen(pivot); ok {
			dsx, dsy := ax-bx, ay-by
			if math.Abs(dsx) > driftEpsilonPx || math.Abs(dsy) > driftEpsilonPx {
				c.panInstantScreen(pivot, dsx, dsy)
			}
		}
	}

	c.emit(EventOrbit, dx, dy, 0, 0)
	c.render()
}

// pitchAllowed reports whether the candidate offset rel2 keeps the camera
// inside the pitch band without passing over a pole. rel1 is the yaw-only
// candidate.
func (c *Controller) pitchAllowed(rel1, rel2 mgl64.Vec3, pitch float64) bool {
	if math.Abs(pitch) >= math.Pi {
		return false
	}
	_, _, ph2, ok := sphericalFromOffset(rel2)
	if !ok || ph2 < c.cfg.MinPitch || ph2 > c.cfg.MaxPitch {
		return false
	}
	// Going over a pole flips the horizontal heading.
	h1 := mgl64.Vec2{rel1[0], rel1[2]}
	h2 := mgl64.Vec2{rel2[0], rel2[2]}
	return h1.Dot(h2) > 0
}

// panInstantScreen translates camera and target so that a world point
// that drifted by (dsx, dsy) pixels returns to its previous screen
// position.
func (c *Controller) panInstantScreen(anchor mgl64.Vec3, dsx, dsy float64) {
	depth := anchor.Sub(c.camera.Position).Dot(c.camera.Forward())
	if depth <= 0 || !finite(depth) {
		return
	}
	wpp := c.camera.worldPerPixel(depth)
	shift := c.camera.Right().Mul(dsx * wpp).Sub(c.camera.UpAxis().Mul(dsy * wpp))
	if !finiteVec(shift) {
		return
	}
	c.state.Target = c.state.Target.Add(shift)
	c.applyOrbit()
}
