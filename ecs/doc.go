// Package ecs provides ECS adapters for sitecam's camera events.
//
// The primary adapter is [NewDonburiSink], which publishes every camera
// event (orbit, pan, zoom, twist, recenter, reset, auto-fit, home saved)
// into a [Donburi] world as a typed event and mirrors the latest pose into
// a singleton [CameraPose] component. Subscribe to [CameraEventType] in your
// ECS systems to react to camera motion, e.g. to relayout HUD labels.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ctl.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
