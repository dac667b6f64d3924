package sitecam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// worldUp is the fixed yaw axis.
var worldUp = mgl64.Vec3{0, 1, 0}

const nearZero = 1e-12

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// normalizeOr returns v scaled to unit length, or fallback when v is zero
// or not finite.
func normalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if !finite(l) || l < nearZero {
		return fallback
	}
	return v.Mul(1 / l)
}

// wrapAngle maps a into [-π, π].
func wrapAngle(a float64) float64 {
	if !finite(a) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// orbitOffset converts spherical coordinates into the camera offset from
// its target. Pitch is the polar angle from world +Y, yaw is measured in
// the XZ plane from +X toward +Z.
//
//	x = r·sin(pitch)·cos(yaw)
//	y = r·cos(pitch)
//	z = r·sin(pitch)·sin(yaw)
func orbitOffset(radius, yaw, pitch float64) mgl64.Vec3 {
	sp, cp := math.Sincos(pitch)
	sy, cy := math.Sincos(yaw)
	return mgl64.Vec3{radius * sp * cy, radius * cp, radius * sp * sy}
}

// sphericalFromOffset is the inverse of orbitOffset. A zero offset yields
// ok=false.
func sphericalFromOffset(rel mgl64.Vec3) (radius, yaw, pitch float64, ok bool) {
	radius = rel.Len()
	if !finite(radius) || radius < nearZero {
		return 0, 0, 0, false
	}
	pitch = math.Acos(clamp(rel[1]/radius, -1, 1))
	yaw = math.Atan2(rel[2], rel[0])
	return radius, yaw, pitch, true
}

// FitDistance returns the camera distance at which the whole box fits the
// view at the given vertical field of view (radians) and aspect ratio.
// The vertical extent is the box height; the horizontal extent is the
// diagonal of its footprint so the fit holds from any yaw. The larger of
// the two distances wins and is multiplied by margin.
func FitDistance(box Box3, vfov, aspect, margin float64) float64 {
	return fitDistanceOffset(box, vfov, aspect, margin, 0)
}

func fitDistanceOffset(box Box3, vfov, aspect, margin, verticalOffsetRatio float64) float64 {
	size := box.Size()
	h := size[1]
	w := math.Hypot(size[0], size[2])

	vHalf := h*0.5 + math.Abs(h*verticalOffsetRatio)
	hHalf := w * 0.5

	if aspect <= 0 || !finite(aspect) {
		aspect = 1
	}
	tanV := math.Tan(vfov * 0.5)
	distV := vHalf / tanV
	hfov := 2 * math.Atan(tanV*aspect)
	distH := hHalf / math.Tan(hfov*0.5)

	return math.Max(distV, distH) * margin
}

// rayPlane intersects the ray origin + t·dir with the plane through point
// with the given normal. It returns false for rays parallel to the plane
// or hits behind the origin.
func rayPlane(origin, dir, point, normal mgl64.Vec3) (mgl64.Vec3, bool) {
	denom := dir.Dot(normal)
	if math.Abs(denom) < 1e-6 {
		return mgl64.Vec3{}, false
	}
	t := point.Sub(origin).Dot(normal) / denom
	if t <= 0 || !finite(t) {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
