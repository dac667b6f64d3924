package sitecam

import "github.com/go-gl/mathgl/mgl64"

// ViewportState is the canonical orbit pose: the camera sits at
// Target + orbitOffset(Radius, Yaw, Pitch) and looks at Target.
type ViewportState struct {
	Target mgl64.Vec3
	Radius float64
	// Yaw is unbounded input but stored wrapped to [-π, π].
	Yaw float64
	// Pitch is the polar angle from world up, kept inside [MinPitch, MaxPitch].
	Pitch float64
}

// HomePose is the saved canonical pose restored by ResetRotation.
type HomePose struct {
	Target mgl64.Vec3
	Radius float64
	Yaw    float64
	Pitch  float64
}

// sanitize clamps radius and pitch into the configured ranges and replaces
// non-finite fields with defaults so a stray NaN never reaches the camera.
func (s *ViewportState) sanitize(cfg *Config) {
	if !finiteVec(s.Target) {
		s.Target = mgl64.Vec3{}
	}
	if !finite(s.Radius) || s.Radius <= 0 {
		s.Radius = cfg.InitialRadius
	}
	s.Radius = clamp(s.Radius, cfg.ZoomMin, cfg.ZoomMax)
	if !finite(s.Yaw) {
		s.Yaw = cfg.InitialYaw
	}
	if !finite(s.Pitch) {
		s.Pitch = cfg.InitialPitch
	}
	s.Pitch = clamp(s.Pitch, cfg.MinPitch, cfg.MaxPitch)
}

// offset returns the camera position relative to the target.
func (s *ViewportState) offset() mgl64.Vec3 {
	return orbitOffset(s.Radius, s.Yaw, s.Pitch)
}

func (s ViewportState) home() HomePose {
	return HomePose{Target: s.Target, Radius: s.Radius, Yaw: s.Yaw, Pitch: s.Pitch}
}

func (h HomePose) state() ViewportState {
	return ViewportState{Target: h.Target, Radius: h.Radius, Yaw: h.Yaw, Pitch: h.Pitch}
}
