package sitecam

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// gestureRotationDeadzoneDeg suppresses native-gesture rotation jitter.
const gestureRotationDeadzoneDeg = 0.05

// PointerEvent is one pointer down/move sample in client pixels.
type PointerEvent struct {
	ID        int
	X, Y      float64
	Button    MouseButton // button captured at press time; ignored for touch
	Device    DeviceType
	Modifiers KeyModifiers
}

// WheelDeltaMode is the unit of a wheel delta.
type WheelDeltaMode uint8

const (
	WheelDeltaPixel WheelDeltaMode = iota
	WheelDeltaLine
	WheelDeltaPage
)

// WheelEvent is a mouse wheel or trackpad scroll sample. Trackpad pinch is
// reported as a wheel event with Ctrl or Meta held.
type WheelEvent struct {
	X, Y      float64
	DeltaY    float64
	DeltaMode WheelDeltaMode
	Modifiers KeyModifiers
}

// --- Per-pointer state ---

// PointerRecord is the bookkeeping for one active pointer. Mode is fixed at
// press time.
type PointerRecord struct {
	ID           int
	LastX, LastY float64
	Device       DeviceType
	Button       MouseButton
	Mode         GestureMode
}

// --- Pinch state ---

// PinchState tracks the previous two-pointer geometry. It is reset whenever
// the pointer count leaves 2.
type PinchState struct {
	PrevDistance float64
	PrevMidpoint mgl64.Vec2
	PrevAngle    float64
	active       bool
}

// --- Gesture actions ---

// GestureAction is the classified meaning of an input event: one of
// OrbitAction, PanAction, TwistAction or ZoomAction.
type GestureAction interface {
	gestureAction()
}

// OrbitAction rotates the camera around the model pivot by a screen delta.
type OrbitAction struct {
	DX, DY float64
	Touch  bool
}

// PanAction translates the camera by a screen delta.
type PanAction struct {
	DX, DY float64
}

// TwistAction rolls the camera around its view axis by Angle radians.
type TwistAction struct {
	Angle float64
}

// ZoomAction changes the orbit radius.
type ZoomAction struct {
	Input ZoomInput
}

func (OrbitAction) gestureAction() {}
func (PanAction) gestureAction()   {}
func (TwistAction) gestureAction() {}
func (ZoomAction) gestureAction()  {}

// Classifier maps raw pointer, wheel and native gesture events to gesture
// actions. It owns the pointer map, the pinch state and the pan-latch
// timers; it never touches the camera.
type Classifier struct {
	cfg *Config

	pointers map[int]*PointerRecord
	order    []int // insertion order; the first two form a pinch
	pinch    PinchState

	panLatchUntil      time.Time
	touchPanArmedUntil time.Time
	lastTapTime        time.Time
	lastTapX, lastTapY float64

	gesturePrevScale    float64
	gesturePrevRotation float64

	actions []GestureAction
}

// NewClassifier creates a Classifier using the tunables in cfg.
func NewClassifier(cfg *Config) *Classifier {
	return &Classifier{
		cfg:              cfg,
		pointers:         make(map[int]*PointerRecord),
		gesturePrevScale: 1,
	}
}

// Count returns the number of active pointers (the gesture arity).
func (k *Classifier) Count() int {
	return len(k.order)
}

// TouchCount returns the number of active touch and pen pointers.
func (k *Classifier) TouchCount() int {
	n := 0
	for _, id := range k.order {
		if k.pointers[id].Device != DeviceMouse {
			n++
		}
	}
	return n
}

// Pointer returns a copy of the record for id.
func (k *Classifier) Pointer(id int) (PointerRecord, bool) {
	rec, ok := k.pointers[id]
	if !ok {
		return PointerRecord{}, false
	}
	return *rec, true
}

// Pinch returns the current two-pointer state.
func (k *Classifier) Pinch() PinchState {
	return k.pinch
}

// PanLatchActive reports whether a mouse drag starting at now would pan.
func (k *Classifier) PanLatchActive(now time.Time) bool {
	return now.Before(k.panLatchUntil)
}

// TouchPanArmed reports whether a single touch starting at now would pan.
func (k *Classifier) TouchPanArmed(now time.Time) bool {
	return now.Before(k.touchPanArmedUntil)
}

// DoubleClick arms the mouse pan latch.
func (k *Classifier) DoubleClick(now time.Time) {
	k.panLatchUntil = now.Add(k.cfg.PanLatch)
}

// classify picks the mode of a new pointer. activeCount includes it.
func (k *Classifier) classify(ev PointerEvent, activeCount int, now time.Time) GestureMode {
	if ev.Device == DeviceMouse {
		switch {
		case ev.Button == MouseButtonLeft && k.PanLatchActive(now):
			return ModePan
		case ev.Button == MouseButtonMiddle:
			return ModePan
		case ev.Button == MouseButtonRight:
			return ModeTwist
		case ev.Button == MouseButtonLeft && ev.Modifiers&ModCtrl != 0:
			return ModePan
		}
		return ModeOrbit
	}
	if activeCount >= 2 {
		return ModeGesture2
	}
	if k.TouchPanArmed(now) {
		return ModePan
	}
	return ModeOrbit
}

// Down registers a pressed pointer and returns the mode assigned to it.
// A second tap close to the previous one in time and space arms the touch
// pan latch before the new pointer is classified, so tap-then-drag pans.
func (k *Classifier) Down(ev PointerEvent, now time.Time) GestureMode {
	if ev.Device != DeviceMouse && k.Count() == 0 {
		dt := now.Sub(k.lastTapTime)
		d := math.Hypot(ev.X-k.lastTapX, ev.Y-k.lastTapY)
		if !k.lastTapTime.IsZero() && dt < k.cfg.DoubleTap && d < k.cfg.DoubleTapMaxPx {
			k.touchPanArmedUntil = now.Add(k.cfg.PanLatch)
		}
		k.lastTapTime, k.lastTapX, k.lastTapY = now, ev.X, ev.Y
	}

	rec, exists := k.pointers[ev.ID]
	if !exists {
		rec = &PointerRecord{ID: ev.ID}
		k.pointers[ev.ID] = rec
		k.order = append(k.order, ev.ID)
	}
	rec.LastX, rec.LastY = ev.X, ev.Y
	rec.Device = ev.Device
	rec.Button = ev.Button
	rec.Mode = k.classify(ev, k.Count(), now)

	if k.Count() == 2 {
		k.resetPinch()
	}
	return rec.Mode
}

// Up removes a pointer on release, cancel or lost capture. Unknown ids are
// ignored so duplicate or out-of-order releases are harmless.
func (k *Classifier) Up(id int) {
	if _, ok := k.pointers[id]; !ok {
		return
	}
	delete(k.pointers, id)
	for i, pid := range k.order {
		if pid == id {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
	switch {
	case k.Count() < 2:
		k.pinch = PinchState{}
	case k.Count() == 2:
		k.resetPinch()
	}
}

// Reset forgets every pointer, e.g. when the window loses focus.
func (k *Classifier) Reset() {
	clear(k.pointers)
	k.order = k.order[:0]
	k.pinch = PinchState{}
}

// pair returns the two pinch pointers in stable order.
func (k *Classifier) pair() (a, b *PointerRecord) {
	return k.pointers[k.order[0]], k.pointers[k.order[1]]
}

func pinchGeometry(a, b *PointerRecord) (mid mgl64.Vec2, dist, angle float64) {
	mid = mgl64.Vec2{(a.LastX + b.LastX) * 0.5, (a.LastY + b.LastY) * 0.5}
	dx := b.LastX - a.LastX
	dy := b.LastY - a.LastY
	return mid, math.Hypot(dx, dy), math.Atan2(dy, dx)
}

func (k *Classifier) resetPinch() {
	a, b := k.pair()
	mid, dist, angle := pinchGeometry(a, b)
	k.pinch = PinchState{PrevDistance: dist, PrevMidpoint: mid, PrevAngle: angle, active: true}
}

// Move updates a pointer position and returns the resulting actions. The
// returned slice is reused by the next call.
func (k *Classifier) Move(ev PointerEvent) []GestureAction {
	k.actions = k.actions[:0]
	rec, ok := k.pointers[ev.ID]
	if !ok {
		return k.actions
	}
	px, py := rec.LastX, rec.LastY
	rec.LastX, rec.LastY = ev.X, ev.Y

	switch k.Count() {
	case 1:
		dx, dy := ev.X-px, ev.Y-py
		if dx == 0 && dy == 0 {
			return k.actions
		}
		switch rec.Mode {
		case ModePan:
			k.actions = append(k.actions, PanAction{DX: dx, DY: dy})
		case ModeTwist:
			k.actions = append(k.actions, TwistAction{Angle: dx * k.cfg.TwistSensMouse})
		default:
			k.actions = append(k.actions, OrbitAction{DX: dx, DY: dy, Touch: rec.Device != DeviceMouse})
		}
	case 2:
		k.moveTwoPointer()
	}
	return k.actions
}

// moveTwoPointer decomposes the pair motion into zoom, pan and twist.
func (k *Classifier) moveTwoPointer() {
	a, b := k.pair()
	mid, dist, angle := pinchGeometry(a, b)
	if !k.pinch.active {
		k.pinch = PinchState{PrevDistance: dist, PrevMidpoint: mid, PrevAngle: angle, active: true}
		return
	}

	if k.pinch.PrevDistance > 0 && dist > 0 {
		raw := dist / k.pinch.PrevDistance
		if math.Abs(math.Log(raw)) > k.cfg.PinchDeadzone {
			scale := clamp(math.Pow(raw, k.cfg.PinchExponent), k.cfg.PinchScaleMin, k.cfg.PinchScaleMax)
			// Spreading the fingers zooms in.
			k.actions = append(k.actions, ZoomAction{Input: ZoomInput{Scale: 1 / scale, Pinch: true}})
		}
	}
	k.pinch.PrevDistance = dist

	mdx := mid[0] - k.pinch.PrevMidpoint[0]
	mdy := mid[1] - k.pinch.PrevMidpoint[1]
	if mdx != 0 || mdy != 0 {
		k.actions = append(k.actions, PanAction{DX: mdx, DY: mdy})
	}
	k.pinch.PrevMidpoint = mid

	dAng := wrapAngle(angle - k.pinch.PrevAngle)
	if math.Abs(dAng) > k.cfg.TwistDeadzone {
		k.actions = append(k.actions, TwistAction{Angle: -dAng})
	}
	k.pinch.PrevAngle = angle
}

// Wheel converts a wheel event into a pointer-anchored zoom. width and
// height are the viewport size used to express the focus point in NDC.
func (k *Classifier) Wheel(ev WheelEvent, width, height float64) (ZoomAction, bool) {
	unit := 1.0
	switch ev.DeltaMode {
	case WheelDeltaLine:
		unit = 33
	case WheelDeltaPage:
		unit = 120
	}
	dy := ev.DeltaY * unit
	if dy == 0 || !finite(dy) {
		return ZoomAction{}, false
	}

	trackpadPinch := ev.Modifiers&(ModCtrl|ModMeta) != 0
	kk := -k.cfg.WheelK
	if trackpadPinch {
		kk = k.cfg.WheelK
	}
	scale := clamp(math.Exp(dy*kk), k.cfg.WheelScaleMin, k.cfg.WheelScaleMax)

	in := ZoomInput{Scale: scale, Pinch: trackpadPinch}
	if width > 0 && height > 0 {
		in.Focus = mgl64.Vec2{ev.X/width*2 - 1, -(ev.Y/height*2 - 1)}
		in.HasFocus = true
	}
	return ZoomAction{Input: in}, true
}

// GestureStart begins a native two-finger gesture (scale starts at 1,
// rotation in degrees).
func (k *Classifier) GestureStart(scale, rotationDeg float64) {
	k.gesturePrevScale = 1
	if scale > 0 && finite(scale) {
		k.gesturePrevScale = scale
	}
	k.gesturePrevRotation = 0
	if finite(rotationDeg) {
		k.gesturePrevRotation = rotationDeg
	}
}

// GestureChange returns the zoom and twist implied by a native gesture
// update. The returned slice is reused by the next call.
func (k *Classifier) GestureChange(scale, rotationDeg float64) []GestureAction {
	k.actions = k.actions[:0]
	if scale > 0 && finite(scale) {
		prev := k.gesturePrevScale
		if prev <= 0 {
			prev = 1
		}
		factor := scale / prev
		if math.Abs(math.Log(factor)) > k.cfg.PinchDeadzone {
			factor = clamp(math.Pow(factor, k.cfg.PinchExponent), k.cfg.PinchScaleMin, k.cfg.PinchScaleMax)
			k.actions = append(k.actions, ZoomAction{Input: ZoomInput{Scale: 1 / factor, Pinch: true}})
		}
		k.gesturePrevScale = scale
	}
	if finite(rotationDeg) {
		dDeg := rotationDeg - k.gesturePrevRotation
		if math.Abs(dDeg) > gestureRotationDeadzoneDeg {
			k.actions = append(k.actions, TwistAction{Angle: -mgl64.DegToRad(dDeg)})
			k.gesturePrevRotation = rotationDeg
		}
	}
	return k.actions
}

// GestureEnd finishes a native gesture.
func (k *Classifier) GestureEnd() {
	k.gesturePrevScale = 1
	k.gesturePrevRotation = 0
}
