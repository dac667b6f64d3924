package ebitenview

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/sitecam"
)

// maxPointers is the number of pointer slots: 0 is the mouse, 1-9 are
// touches.
const maxPointers = 10

// poller turns ebiten's polled input state into controller events.
type poller struct {
	ctl *sitecam.Controller
	now func() time.Time

	mouseDown   bool
	mouseButton sitecam.MouseButton
	mouseX      float64
	mouseY      float64

	lastRelease  time.Time
	lastReleaseX float64
	lastReleaseY float64

	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchPos  [maxPointers][2]float64
}

func newPoller(ctl *sitecam.Controller) *poller {
	return &poller{ctl: ctl, now: time.Now}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() sitecam.KeyModifiers {
	var mods sitecam.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= sitecam.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= sitecam.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= sitecam.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= sitecam.ModMeta
	}
	return mods
}

// poll forwards one frame of input. Real input is ignored while injected
// events are pending so scripted runs stay deterministic.
func (p *poller) poll() {
	if p.ctl.Injecting() {
		return
	}
	mods := readModifiers()
	p.pollMouse(mods)
	p.pollTouches(mods)
	p.pollWheel(mods)
}

// pollMouse handles the mouse (pointer 0). The button is fixed at press
// time, matching the classifier.
func (p *poller) pollMouse(mods sitecam.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	pressed := left || right || middle

	switch {
	case pressed && !p.mouseDown:
		button := sitecam.MouseButtonLeft
		if right {
			button = sitecam.MouseButtonRight
		} else if middle && !left {
			button = sitecam.MouseButtonMiddle
		}
		p.mouseDown = true
		p.mouseButton = button
		p.ctl.PointerDown(sitecam.PointerEvent{
			ID: 0, X: x, Y: y, Button: button, Device: sitecam.DeviceMouse, Modifiers: mods,
		})
	case pressed && (x != p.mouseX || y != p.mouseY):
		p.ctl.PointerMove(sitecam.PointerEvent{
			ID: 0, X: x, Y: y, Button: p.mouseButton, Device: sitecam.DeviceMouse, Modifiers: mods,
		})
	case !pressed && p.mouseDown:
		p.mouseDown = false
		p.ctl.PointerUp(0)
		if p.mouseButton == sitecam.MouseButtonLeft {
			p.detectDoubleClick(x, y)
		}
	}
	p.mouseX, p.mouseY = x, y
}

// detectDoubleClick arms the pan latch on a second left release close to
// the previous one.
func (p *poller) detectDoubleClick(x, y float64) {
	cfg := p.ctl.Config()
	now := p.now()
	if !p.lastRelease.IsZero() && now.Sub(p.lastRelease) < cfg.DoubleClick &&
		math.Hypot(x-p.lastReleaseX, y-p.lastReleaseY) < cfg.DoubleTapMaxPx {
		p.ctl.DoubleClick()
		p.lastRelease = time.Time{}
		return
	}
	p.lastRelease, p.lastReleaseX, p.lastReleaseY = now, x, y
}

// pollTouches handles touch input (pointers 1-9).
func (p *poller) pollTouches(mods sitecam.KeyModifiers) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range p.touchIDs {
		slot, fresh := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		ev := sitecam.PointerEvent{ID: slot, X: x, Y: y, Device: sitecam.DeviceTouch, Modifiers: mods}
		if fresh {
			p.ctl.PointerDown(ev)
		} else if p.touchPos[slot] != [2]float64{x, y} {
			p.ctl.PointerMove(ev)
		}
		p.touchPos[slot] = [2]float64{x, y}
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !active[i] {
			p.ctl.PointerUp(i)
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). fresh is true
// when the slot was just allocated. Returns -1 if full.
func (p *poller) touchSlot(tid ebiten.TouchID) (slot int, fresh bool) {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i, false
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}

// pollWheel forwards wheel motion. Ebitengine reports scroll-up as positive
// lines, the inverse of the DOM convention the classifier expects.
func (p *poller) pollWheel(mods sitecam.KeyModifiers) {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	p.ctl.Wheel(sitecam.WheelEvent{
		X: float64(mx), Y: float64(my),
		DeltaY:    -dy,
		DeltaMode: sitecam.WheelDeltaLine,
		Modifiers: mods,
	})
}
