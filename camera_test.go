package sitecam

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testCamera() *Camera {
	cfg := DefaultConfig()
	cam := newCamera(&cfg, 800, 600)
	cam.Position = mgl64.Vec3{10, 12, 14}
	cam.lookAt(mgl64.Vec3{1, 2, 3})
	return cam
}

func TestCameraDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cam := newCamera(&cfg, 800, 600)
	if cam.FOV != 50 || cam.Near != 0.05 || cam.Far != 2000 {
		t.Errorf("projection = %v/%v/%v", cam.FOV, cam.Near, cam.Far)
	}
	assertNear(t, "Aspect", cam.Aspect, 800.0/600.0)
	if cam.Up != worldUp {
		t.Errorf("Up = %v, want world up", cam.Up)
	}
}

func TestCameraTargetProjectsToCenter(t *testing.T) {
	cam := testCamera()
	sx, sy, ok := cam.WorldToScreen(cam.Target)
	if !ok {
		t.Fatal("target not visible")
	}
	if !approxEqual(sx, 400, 1e-6) || !approxEqual(sy, 300, 1e-6) {
		t.Errorf("WorldToScreen(target) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraBehindIsNotVisible(t *testing.T) {
	cam := testCamera()
	behind := cam.Position.Sub(cam.Forward().Mul(5))
	if _, _, ok := cam.WorldToScreen(behind); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraBasisOrthonormal(t *testing.T) {
	cam := testCamera()
	f, r, u := cam.Forward(), cam.Right(), cam.UpAxis()
	for name, v := range map[string]mgl64.Vec3{"forward": f, "right": r, "up": u} {
		if !approxEqual(v.Len(), 1, 1e-12) {
			t.Errorf("%s not unit: %v", name, v.Len())
		}
	}
	if !approxEqual(f.Dot(r), 0, 1e-12) || !approxEqual(f.Dot(u), 0, 1e-12) || !approxEqual(r.Dot(u), 0, 1e-12) {
		t.Error("basis not orthogonal")
	}
	// Screen up should lean toward world up for an upright camera.
	if u.Dot(worldUp) <= 0 {
		t.Errorf("UpAxis %v points down", u)
	}
}

func TestCameraRightMovesRightOnScreen(t *testing.T) {
	cam := testCamera()
	sx, sy, _ := cam.WorldToScreen(cam.Target.Add(cam.Right()))
	if sx <= 400 || !approxEqual(sy, 300, 1e-6) {
		t.Errorf("target+right projects to (%f,%f)", sx, sy)
	}
	_, sy, _ = cam.WorldToScreen(cam.Target.Add(cam.UpAxis()))
	if sy >= 300 {
		t.Errorf("target+up projects below center: %f", sy)
	}
}

func TestCameraProjectUnprojectRoundTrip(t *testing.T) {
	cam := testCamera()
	points := []mgl64.Vec3{
		{1, 2, 3},
		{0, 0, 0},
		{4, 1, -2},
		{-3, 5, 6},
	}
	for _, p := range points {
		ndc, ok := cam.WorldToNDC(p)
		if !ok {
			t.Fatalf("%v not visible", p)
		}
		back := cam.Unproject(ndc)
		if !vecNear(back, p, 1e-6) {
			t.Errorf("Unproject(WorldToNDC(%v)) = %v", p, back)
		}
	}
}

func TestCameraUnprojectMatchesInverse(t *testing.T) {
	cam := testCamera()
	inv := cam.viewProj.Inv()
	for _, ndc := range []mgl64.Vec3{
		{0, 0, 0.5},
		{-0.75, 0.4, 0.5},
		{0.9, -0.9, -0.2},
	} {
		h := inv.Mul4x1(ndc.Vec4(1))
		want := h.Vec3().Mul(1 / h[3])
		if got := cam.Unproject(ndc); !vecNear(got, want, 1e-6) {
			t.Errorf("Unproject(%v) = %v, want %v", ndc, got, want)
		}
	}
}

func TestCameraScreenToNDC(t *testing.T) {
	cam := testCamera()
	tests := []struct {
		sx, sy, nx, ny float64
	}{
		{400, 300, 0, 0},
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{600, 150, 0.5, 0.5},
	}
	for _, tt := range tests {
		nx, ny := cam.ScreenToNDC(tt.sx, tt.sy)
		if !approxEqual(nx, tt.nx, 1e-12) || !approxEqual(ny, tt.ny, 1e-12) {
			t.Errorf("ScreenToNDC(%v,%v) = (%v,%v), want (%v,%v)", tt.sx, tt.sy, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestCameraWorldPerPixel(t *testing.T) {
	cam := testCamera()
	depth := cam.Target.Sub(cam.Position).Len()
	wpp := cam.worldPerPixel(depth)
	p := cam.Target.Add(cam.Right().Mul(10 * wpp))
	sx, _, _ := cam.WorldToScreen(p)
	if !approxEqual(sx, 410, 1e-6) {
		t.Errorf("10 px of world offset projects to x=%f, want 410", sx)
	}
}

func TestCameraSetViewport(t *testing.T) {
	cam := testCamera()
	cam.SetViewport(1920, 1080)
	assertNear(t, "Aspect", cam.Aspect, 1920.0/1080.0)
	sx, sy, _ := cam.WorldToScreen(cam.Target)
	if !approxEqual(sx, 960, 1e-6) || !approxEqual(sy, 540, 1e-6) {
		t.Errorf("center after resize = (%f,%f)", sx, sy)
	}
	cam.SetViewport(0, -5)
	if cam.Width != 1 || cam.Height != 1 {
		t.Errorf("degenerate viewport = %vx%v, want 1x1", cam.Width, cam.Height)
	}
}

func TestCameraUpParallelToForward(t *testing.T) {
	cfg := DefaultConfig()
	cam := newCamera(&cfg, 800, 600)
	cam.Position = mgl64.Vec3{0, 10, 0}
	cam.lookAt(mgl64.Vec3{})
	r := cam.Right()
	if math.IsNaN(r[0]) || !approxEqual(r.Len(), 1, 1e-12) {
		t.Errorf("Right = %v, want a unit fallback", r)
	}
	if _, _, ok := cam.WorldToScreen(mgl64.Vec3{}); !ok {
		t.Error("target should still project")
	}
}
