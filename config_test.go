package sitecam

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultDoubleClickWiderThanTap(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DoubleClick != 500*time.Millisecond {
		t.Errorf("DoubleClick = %v, want 500ms", cfg.DoubleClick)
	}
	if cfg.DoubleClick <= cfg.DoubleTap {
		t.Errorf("DoubleClick %v not wider than DoubleTap %v", cfg.DoubleClick, cfg.DoubleTap)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	data := []byte(`
fov: 60
zoom_min: 2
pan_latch: 800ms
double_click: 400ms
auto_fit_max: 2s
`)
	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FOV != 60 || cfg.ZoomMin != 2 {
		t.Errorf("fov/zoom_min = %v/%v", cfg.FOV, cfg.ZoomMin)
	}
	if cfg.PanLatch != 800*time.Millisecond {
		t.Errorf("PanLatch = %v, want 800ms", cfg.PanLatch)
	}
	if cfg.DoubleClick != 400*time.Millisecond {
		t.Errorf("DoubleClick = %v, want 400ms", cfg.DoubleClick)
	}
	if cfg.AutoFitMax != 2*time.Second {
		t.Errorf("AutoFitMax = %v, want 2s", cfg.AutoFitMax)
	}
	// Unset keys keep their defaults.
	if cfg.ZoomMax != 400 || cfg.RotSpeedDesktop != 0.0042 {
		t.Errorf("defaults lost: zoom_max=%v rot=%v", cfg.ZoomMax, cfg.RotSpeedDesktop)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"fit_margin": 2.0, "double_tap_max_px": 30}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FitMargin != 2 || cfg.DoubleTapMaxPx != 30 {
		t.Errorf("fit_margin/double_tap_max_px = %v/%v", cfg.FitMargin, cfg.DoubleTapMaxPx)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "fov: [1, 2", "parse config"},
		{"bad fov", "fov: 0", "fov"},
		{"inverted zoom", "zoom_min: 50\nzoom_max: 10", "zoom range"},
		{"pitch at pole", "min_pitch: 0", "pitch range"},
		{"bad smoothing", "pan_smooth: 1.5", "pan_smooth"},
		{"bad near far", "near: 10\nfar: 5", "near/far"},
		{"bad poll", "auto_fit_poll: 5s", "auto-fit poll"},
		{"bad duration", "pan_latch: soon", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestControllerUsesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotSpeedDesktop = 0.01
	c := NewController(nil, cfg)
	before := c.State().Yaw
	c.OrbitDelta(10, 0, false)
	assertNear(t, "Δyaw", wrapAngle(c.State().Yaw-before), 0.1)
}
