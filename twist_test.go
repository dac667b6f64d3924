package sitecam

import (
	"math"
	"testing"
)

func TestTwistQuarterTurn(t *testing.T) {
	c := newTestController()
	oldRight := c.Camera().Right()
	oldPos := c.Camera().Position
	oldFwd := c.Camera().Forward()

	c.OrbitTwist(math.Pi / 2)

	if !vecNear(c.Camera().UpAxis(), oldRight, 1e-9) {
		t.Errorf("UpAxis = %v, want old right %v", c.Camera().UpAxis(), oldRight)
	}
	if !vecNear(c.Camera().Position, oldPos, 1e-9) {
		t.Errorf("Position moved: %v -> %v", oldPos, c.Camera().Position)
	}
	if !vecNear(c.Camera().Forward(), oldFwd, 1e-9) {
		t.Errorf("Forward changed: %v -> %v", oldFwd, c.Camera().Forward())
	}
}

func TestTwistRoundTrip(t *testing.T) {
	c := newTestController()
	up := c.Camera().UpAxis()
	c.OrbitTwist(0.7)
	c.OrbitTwist(-0.7)
	if !vecNear(c.Camera().UpAxis(), up, 1e-9) {
		t.Errorf("UpAxis = %v, want %v", c.Camera().UpAxis(), up)
	}
}

func TestTwistAroundOffsetPivot(t *testing.T) {
	c := NewController(staticScene(towerBox), DefaultConfig())
	c.DisableAutoFit()
	c.PanDelta(80, 0)
	settle(t, c)
	pivot, _ := c.ModelPivot()
	before := c.Camera().Position.Sub(pivot).Len()

	c.OrbitTwist(0.4)
	after := c.Camera().Position.Sub(pivot).Len()
	if !approxEqual(before, after, 1e-9) {
		t.Errorf("distance to pivot %v -> %v", before, after)
	}
	if !approxEqual(c.State().Radius, c.Camera().Position.Sub(c.State().Target).Len(), 1e-9) {
		t.Error("state radius out of sync with camera")
	}
}

func TestTwistIgnoresTinyAndBadAngles(t *testing.T) {
	c := newTestController()
	sink := &recordingSink{}
	c.SetEventSink(sink)
	up := c.Camera().Up
	for _, a := range []float64{0, 1e-7, math.NaN(), math.Inf(-1)} {
		c.OrbitTwist(a)
	}
	if c.Camera().Up != up {
		t.Errorf("Up changed to %v", c.Camera().Up)
	}
	if len(sink.events) != 0 {
		t.Errorf("got %d events, want 0", len(sink.events))
	}
}
