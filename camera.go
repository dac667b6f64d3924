package sitecam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera aimed at Target. It is the mutable camera
// the renderer draws with; the Controller keeps it in sync with its
// ViewportState.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	// Up is the up hint handed to LookAt. Twist rolls it; forced-upright
	// operations reset it to world up.
	Up mgl64.Vec3

	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64

	// Width and Height are the viewport size in pixels.
	Width, Height float64

	viewMatrix    mgl64.Mat4
	projMatrix    mgl64.Mat4
	viewProj      mgl64.Mat4
	right, upAxis mgl64.Vec3
	forward       mgl64.Vec3
	dirty         bool
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(cfg *Config, width, height float64) *Camera {
	c := &Camera{
		Position: mgl64.Vec3{8, 8, 8},
		Up:       worldUp,
		FOV:      cfg.FOV,
		Near:     cfg.Near,
		Far:      cfg.Far,
		dirty:    true,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the pixel size and aspect ratio. Resizing never
// refits the model.
func (c *Camera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	c.Width, c.Height = width, height
	c.Aspect = width / height
	c.dirty = true
}

// MarkDirty forces a recomputation of the cached matrices.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// lookAt aims the camera, renormalizing the up hint.
func (c *Camera) lookAt(target mgl64.Vec3) {
	c.Target = target
	c.Up = normalizeOr(c.Up, worldUp)
	c.dirty = true
}

// computeMatrices recomputes the cached matrices and basis if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false

	fwd := normalizeOr(c.Target.Sub(c.Position), mgl64.Vec3{0, 0, -1})
	up := normalizeOr(c.Up, worldUp)
	right := fwd.Cross(up)
	if right.Len() < 1e-9 {
		// Up hint parallel to the view axis; pick any perpendicular.
		right = fwd.Cross(mgl64.Vec3{0, 0, 1})
		if right.Len() < 1e-9 {
			right = mgl64.Vec3{1, 0, 0}
		}
	}
	right = right.Normalize()
	trueUp := right.Cross(fwd).Normalize()

	c.forward, c.right, c.upAxis = fwd, right, trueUp
	c.viewMatrix = mgl64.LookAtV(c.Position, c.Position.Add(fwd), trueUp)
	c.projMatrix = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.viewProj = c.projMatrix.Mul4(c.viewMatrix)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.viewMatrix
}

// ProjectionMatrix returns the camera-to-clip matrix.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.projMatrix
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	c.computeMatrices()
	return c.forward
}

// Right returns the unit screen-right axis in world space.
func (c *Camera) Right() mgl64.Vec3 {
	c.computeMatrices()
	return c.right
}

// UpAxis returns the orthonormal screen-up axis in world space. Unlike Up
// it is always perpendicular to Forward.
func (c *Camera) UpAxis() mgl64.Vec3 {
	c.computeMatrices()
	return c.upAxis
}

// WorldToNDC projects a world point to normalized device coordinates.
// ok is false for points at or behind the camera plane.
func (c *Camera) WorldToNDC(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	c.computeMatrices()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-12 {
		return mgl64.Vec3{}, false
	}
	inv := 1 / clip[3]
	return mgl64.Vec3{clip[0] * inv, clip[1] * inv, clip[2] * inv}, true
}

// WorldToScreen projects a world point to pixel coordinates with the origin
// at the top-left and Y increasing downward.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	ndc, ok := c.WorldToNDC(p)
	if !ok {
		return 0, 0, false
	}
	sx = (ndc[0]*0.5 + 0.5) * c.Width
	sy = (-ndc[1]*0.5 + 0.5) * c.Height
	return sx, sy, true
}

// ScreenToNDC converts pixel coordinates to normalized device X/Y.
func (c *Camera) ScreenToNDC(sx, sy float64) (nx, ny float64) {
	nx = sx/c.Width*2 - 1
	ny = -(sy/c.Height*2 - 1)
	return nx, ny
}

// Unproject maps normalized device coordinates back to world space. A
// degenerate view-projection yields the camera position.
func (c *Camera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	c.computeMatrices()
	const window = 1 << 16
	win := mgl64.Vec3{
		(ndc[0] + 1) / 2 * window,
		(ndc[1] + 1) / 2 * window,
		(ndc[2] + 1) / 2,
	}
	p, err := mgl64.UnProject(win, c.viewMatrix, c.projMatrix, 0, 0, window, window)
	if err != nil || !finiteVec(p) {
		return c.Position
	}
	return p
}

// worldPerPixel returns the world-space size of one screen pixel at the
// given view depth.
func (c *Camera) worldPerPixel(depth float64) float64 {
	return 2 * depth * math.Tan(mgl64.DegToRad(c.FOV)*0.5) / c.Height
}
