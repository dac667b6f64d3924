// Package sitecam is the camera controller of a 3D construction-site
// viewer: a multi-device orbit, pan, zoom and twist camera with automatic
// model framing, built for inspecting a building model floor by floor.
//
// # Quick start
//
// Create a [Controller] from a [Scene] that reports the model bounds, feed
// it input events and call [Controller.Update] once per frame:
//
//	ctl := sitecam.NewController(model, sitecam.DefaultConfig())
//	ctl.SetViewport(1280, 720)
//	ctl.PointerDown(sitecam.PointerEvent{ID: 0, X: 100, Y: 100})
//	ctl.PointerMove(sitecam.PointerEvent{ID: 0, X: 150, Y: 120})
//	ctl.PointerUp(0)
//	ctl.Update(1.0 / 60)
//
// The ebitenview package wires a Controller to an Ebitengine window.
//
// # Viewport state
//
// The camera pose is a [ViewportState]: a target point plus spherical
// coordinates (radius, yaw, pitch) of the camera around it. Pitch is the
// polar angle from world +Y and is kept inside [Config.MinPitch,
// Config.MaxPitch]; radius is kept inside [Config.ZoomMin,
// Config.ZoomMax]. Every engine writes through the state and recomputes
// the camera from it, so the state is always canonical.
//
// # Gestures
//
// A [Classifier] assigns a mode to each pointer at press time:
//
//   - mouse left: orbit, or pan after a double-click or with Ctrl held
//   - mouse middle: pan
//   - mouse right: twist
//   - one touch: orbit, or pan after a double-tap
//   - two touches: pinch zoom, midpoint pan and twist at once
//
// Wheel events zoom toward the cursor. Native trackpad gestures arrive
// through [Controller.GestureStart], [Controller.GestureChange] and
// [Controller.GestureEnd].
//
// # Rotation
//
// [Controller.OrbitDelta] rotates around the model center rather than the
// look-at target, so after a pan the model keeps spinning in place. A
// pitch step that would cross a pole is dropped while the yaw part still
// applies. Any screen drift of the pivot is cancelled with an instant pan.
//
// # Framing
//
// On creation the controller polls [Scene.Bounds] until a valid box
// appears, frames it with [FitDistance] and captures the result as the
// home pose. A short watchdog refits if the model top clips or the pose
// drifts before the user touches anything. [Controller.ResetRotation]
// returns to home; [Controller.RecenterCamera] and
// [Controller.SyncOrbitTargetToModel] reframe on demand.
//
// # Animation
//
// Smoothed pan, zoom convergence and animated recenter run as tasks on a
// per-controller [Scheduler]. Each engine cancels its own previous task
// before starting a new one; nothing locks, since everything runs on the
// frame goroutine.
//
// # Testing
//
// Synthetic input ([Controller.InjectDrag], [Controller.InjectPinch] and
// friends) is consumed one event per frame, and a JSON [TestRunner]
// script can drive a whole session:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 100, "fromY": 100, "toX": 200, "toY": 100, "frames": 10},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "after-orbit"}
//	]}
package sitecam
