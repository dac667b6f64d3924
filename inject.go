package sitecam

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthDoubleClick
	synthWheel
)

// syntheticEvent is one queued input event. Coordinates are screen pixels,
// identical to real input.
type syntheticEvent struct {
	kind    syntheticKind
	pointer PointerEvent
	wheel   WheelEvent
}

// mousePointer is the pointer id used for injected mouse events.
const mousePointer = 0

// InjectPress queues a left mouse press at the given screen coordinates.
// The event is consumed on the next Update.
func (c *Controller) InjectPress(x, y float64) {
	c.injectPointer(synthPress, mousePointer, x, y, DeviceMouse, MouseButtonLeft)
}

// InjectMove queues a mouse move at the given screen coordinates. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (c *Controller) InjectMove(x, y float64) {
	c.injectPointer(synthMove, mousePointer, x, y, DeviceMouse, MouseButtonLeft)
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (c *Controller) InjectRelease(x, y float64) {
	c.injectPointer(synthRelease, mousePointer, x, y, DeviceMouse, MouseButtonLeft)
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (c *Controller) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDoubleClick queues a double-click, which arms the pan latch.
func (c *Controller) InjectDoubleClick(x, y float64) {
	c.InjectClick(x, y)
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthDoubleClick})
}

// InjectDrag queues a full drag sequence with the given button: press at
// (fromX, fromY), linearly interpolated moves over frames-2 intermediate
// frames, a final move and release at (toX, toY). Minimum frames is 2.
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 2 {
		frames = 2
	}
	c.injectPointer(synthPress, mousePointer, fromX, fromY, DeviceMouse, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		c.injectPointer(synthMove, mousePointer, x, y, DeviceMouse, button)
	}
	c.injectPointer(synthMove, mousePointer, toX, toY, DeviceMouse, button)
	c.injectPointer(synthRelease, mousePointer, toX, toY, DeviceMouse, button)
}

// InjectPinch queues a horizontal two-finger touch pinch centered on
// (cx, cy) whose finger distance goes from fromDist to toDist over the
// given number of steps. Each step moves both fingers, one per frame.
func (c *Controller) InjectPinch(cx, cy, fromDist, toDist float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	const a, b = 1, 2
	half := fromDist / 2
	c.injectPointer(synthPress, a, cx-half, cy, DeviceTouch, MouseButtonLeft)
	c.injectPointer(synthPress, b, cx+half, cy, DeviceTouch, MouseButtonLeft)
	for i := 1; i <= steps; i++ {
		d := fromDist + (toDist-fromDist)*float64(i)/float64(steps)
		half = d / 2
		c.injectPointer(synthMove, a, cx-half, cy, DeviceTouch, MouseButtonLeft)
		c.injectPointer(synthMove, b, cx+half, cy, DeviceTouch, MouseButtonLeft)
	}
	c.injectPointer(synthRelease, a, cx-half, cy, DeviceTouch, MouseButtonLeft)
	c.injectPointer(synthRelease, b, cx+half, cy, DeviceTouch, MouseButtonLeft)
}

// InjectWheel queues a pixel-mode wheel event at (x, y). With no modifier a
// positive deltaY zooms in; with Ctrl it acts as a trackpad pinch and the
// direction flips.
func (c *Controller) InjectWheel(x, y, deltaY float64, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		kind:  synthWheel,
		wheel: WheelEvent{X: x, Y: y, DeltaY: deltaY, DeltaMode: WheelDeltaPixel, Modifiers: mods},
	})
}

// Injecting reports whether injected events are still queued. Backends
// skip real input while this is true.
func (c *Controller) Injecting() bool {
	return len(c.injectQueue) > 0
}

func (c *Controller) injectPointer(kind syntheticKind, id int, x, y float64, dev DeviceType, button MouseButton) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		kind: kind,
		pointer: PointerEvent{
			ID: id, X: x, Y: y,
			Button: button,
			Device: dev,
		},
	})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the regular input entry points. Returns true if an event was
// consumed.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		c.PointerDown(evt.pointer)
	case synthMove:
		c.PointerMove(evt.pointer)
	case synthRelease:
		c.PointerMove(evt.pointer)
		c.PointerUp(evt.pointer.ID)
	case synthDoubleClick:
		c.DoubleClick()
	case synthWheel:
		c.Wheel(evt.wheel)
	}
	return true
}
