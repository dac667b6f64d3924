package sitecam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 is an axis-aligned bounding box in world space.
type Box3 struct {
	Min, Max mgl64.Vec3
}

// Center returns the midpoint of the box.
func (b Box3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both b and other.
func (b Box3) Union(other Box3) Box3 {
	return Box3{
		Min: mgl64.Vec3{math.Min(b.Min[0], other.Min[0]), math.Min(b.Min[1], other.Min[1]), math.Min(b.Min[2], other.Min[2])},
		Max: mgl64.Vec3{math.Max(b.Max[0], other.Max[0]), math.Max(b.Max[1], other.Max[1]), math.Max(b.Max[2], other.Max[2])},
	}
}

// Valid reports whether the box is finite and has a non-zero extent on at
// least one axis. Invalid boxes are "not fittable yet".
func (b Box3) Valid() bool {
	if !finiteVec(b.Min) || !finiteVec(b.Max) {
		return false
	}
	s := b.Size()
	if s[0] < 0 || s[1] < 0 || s[2] < 0 {
		return false
	}
	return s[0] > 0 || s[1] > 0 || s[2] > 0
}

// Scene is the rendering collaborator queried for the current model bounds.
// Bounds returns false while nothing renderable is loaded.
type Scene interface {
	Bounds() (Box3, bool)
}

// SceneFunc adapts a plain function to the Scene interface.
type SceneFunc func() (Box3, bool)

// Bounds calls f.
func (f SceneFunc) Bounds() (Box3, bool) { return f() }

// DeviceType identifies the kind of input device behind a pointer.
type DeviceType uint8

const (
	DeviceMouse DeviceType = iota // mouse or trackpad cursor
	DeviceTouch                   // finger on a touch screen
	DevicePen                     // stylus; classified like touch
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonRight                     // secondary (right) mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// GestureMode is the semantic action a pointer is bound to at press time.
type GestureMode uint8

const (
	ModeOrbit    GestureMode = iota // rotate around the model pivot
	ModePan                         // translate camera and target together
	ModeTwist                       // roll around the view axis
	ModeGesture2                    // joint two-pointer zoom/pan/twist
)

// String returns the lowercase mode name.
func (m GestureMode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModePan:
		return "pan"
	case ModeTwist:
		return "twist"
	case ModeGesture2:
		return "gesture2"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of camera event published to an EventSink.
type EventType uint8

const (
	EventOrbit     EventType = iota // orbit step committed
	EventPan                        // pan input queued or applied
	EventZoom                       // zoom goal updated
	EventTwist                      // roll step committed
	EventRecenter                   // camera reframed on the model
	EventReset                      // camera restored to the home pose
	EventAutoFit                    // auto-fit captured the home pose
	EventHomeSaved                  // home pose saved explicitly
)

// CameraEvent describes one committed camera change.
type CameraEvent struct {
	Type   EventType
	Target mgl64.Vec3
	Radius float64
	Yaw    float64
	Pitch  float64
	// Input deltas, valid for the event kinds that carry them.
	DeltaX float64
	DeltaY float64
	Angle  float64
	Scale  float64
}

// EventSink receives camera events. Set one on a Controller with
// SetEventSink to forward camera changes to an ECS or HUD.
type EventSink interface {
	EmitEvent(event CameraEvent)
}
