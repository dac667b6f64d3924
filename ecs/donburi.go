package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/sitecam"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CameraEventType is the Donburi event type for sitecam camera events.
var CameraEventType = events.NewEventType[sitecam.CameraEvent]()

// PoseData is the last published camera pose.
type PoseData struct {
	Target mgl64.Vec3
	Radius float64
	Yaw    float64
	Pitch  float64
	// Last is the type of the event that produced this pose.
	Last sitecam.EventType
}

// CameraPose is the component holding the latest pose on the sink's
// singleton entity.
var CameraPose = donburi.NewComponentType[PoseData]()

type donburiSink struct {
	world donburi.World
	pose  donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to CameraEventType and can be consumed with events.Subscribe
// and ProcessEvents. The pose entity is created immediately.
func NewDonburiSink(world donburi.World) sitecam.EventSink {
	return &donburiSink{
		world: world,
		pose:  world.Create(CameraPose),
	}
}

func (s *donburiSink) EmitEvent(event sitecam.CameraEvent) {
	if s.world.Valid(s.pose) {
		CameraPose.SetValue(s.world.Entry(s.pose), PoseData{
			Target: event.Target,
			Radius: event.Radius,
			Yaw:    event.Yaw,
			Pitch:  event.Pitch,
			Last:   event.Type,
		})
	}
	CameraEventType.Publish(s.world, event)
}

// Pose returns the latest pose stored in world, if a sink created one.
func Pose(world donburi.World) (PoseData, bool) {
	entry, ok := CameraPose.First(world)
	if !ok {
		return PoseData{}, false
	}
	return *CameraPose.Get(entry), true
}
