package sitecam

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the camera controller. Start from
// DefaultConfig and override fields, or load a YAML/JSON document with
// LoadConfig.
type Config struct {
	// Camera projection.
	FOV  float64 `yaml:"fov" json:"fov"` // vertical field of view, degrees
	Near float64 `yaml:"near" json:"near"`
	Far  float64 `yaml:"far" json:"far"`

	// Initial pose and orbit limits. Pitch is the polar angle from world up.
	InitialYaw    float64 `yaml:"initial_yaw" json:"initial_yaw"`
	InitialPitch  float64 `yaml:"initial_pitch" json:"initial_pitch"`
	InitialRadius float64 `yaml:"initial_radius" json:"initial_radius"`
	MinPitch      float64 `yaml:"min_pitch" json:"min_pitch"`
	MaxPitch      float64 `yaml:"max_pitch" json:"max_pitch"`
	ZoomMin       float64 `yaml:"zoom_min" json:"zoom_min"`
	ZoomMax       float64 `yaml:"zoom_max" json:"zoom_max"`

	// Orbit and twist sensitivity, radians per pixel.
	RotSpeedDesktop float64 `yaml:"rot_speed_desktop" json:"rot_speed_desktop"`
	RotSpeedTouch   float64 `yaml:"rot_speed_touch" json:"rot_speed_touch"`
	TwistSensMouse  float64 `yaml:"twist_sens_mouse" json:"twist_sens_mouse"`

	// Pan.
	PanFactor   float64 `yaml:"pan_factor" json:"pan_factor"`
	PanSmooth   float64 `yaml:"pan_smooth" json:"pan_smooth"`
	PanResidual float64 `yaml:"pan_residual" json:"pan_residual"` // pixels left when draining stops

	// Zoom.
	ZoomExpWheel  float64 `yaml:"zoom_exp_wheel" json:"zoom_exp_wheel"`
	ZoomExpPinch  float64 `yaml:"zoom_exp_pinch" json:"zoom_exp_pinch"`
	ZoomFactorMin float64 `yaml:"zoom_factor_min" json:"zoom_factor_min"`
	ZoomFactorMax float64 `yaml:"zoom_factor_max" json:"zoom_factor_max"`
	ZoomSmoothing float64 `yaml:"zoom_smoothing" json:"zoom_smoothing"`

	// Wheel mapping.
	WheelK        float64 `yaml:"wheel_k" json:"wheel_k"`
	WheelScaleMin float64 `yaml:"wheel_scale_min" json:"wheel_scale_min"`
	WheelScaleMax float64 `yaml:"wheel_scale_max" json:"wheel_scale_max"`

	// Two-pointer pinch decomposition.
	PinchExponent float64 `yaml:"pinch_exponent" json:"pinch_exponent"`
	PinchScaleMin float64 `yaml:"pinch_scale_min" json:"pinch_scale_min"`
	PinchScaleMax float64 `yaml:"pinch_scale_max" json:"pinch_scale_max"`
	PinchDeadzone float64 `yaml:"pinch_deadzone" json:"pinch_deadzone"` // |ln(ratio)| below this is ignored
	TwistDeadzone float64 `yaml:"twist_deadzone" json:"twist_deadzone"` // radians

	// Pan latch and double tap detection. DoubleClick is the mouse window;
	// both devices share DoubleTapMaxPx.
	PanLatch       time.Duration `yaml:"pan_latch" json:"pan_latch"`
	DoubleTap      time.Duration `yaml:"double_tap" json:"double_tap"`
	DoubleClick    time.Duration `yaml:"double_click" json:"double_click"`
	DoubleTapMaxPx float64       `yaml:"double_tap_max_px" json:"double_tap_max_px"`

	// Framing.
	FitMargin     float64       `yaml:"fit_margin" json:"fit_margin"`
	SafeMinMargin float64       `yaml:"safe_min_margin" json:"safe_min_margin"`
	RecenterDur   time.Duration `yaml:"recenter_duration" json:"recenter_duration"`

	// Auto-fit state machine.
	AutoFitPoll     time.Duration `yaml:"auto_fit_poll" json:"auto_fit_poll"`
	AutoFitMax      time.Duration `yaml:"auto_fit_max" json:"auto_fit_max"`
	WatchdogWindow  time.Duration `yaml:"watchdog_window" json:"watchdog_window"`
	WatchdogEpsilon float64       `yaml:"watchdog_epsilon" json:"watchdog_epsilon"`
}

// DefaultConfig returns the tuned defaults of the site viewer.
func DefaultConfig() Config {
	return Config{
		FOV:  50,
		Near: 0.05,
		Far:  2000,

		InitialYaw:    math.Pi * 0.25,
		InitialPitch:  math.Pi * 0.35,
		InitialRadius: 28,
		MinPitch:      0.05,
		MaxPitch:      math.Pi - 0.05,
		ZoomMin:       4,
		ZoomMax:       400,

		RotSpeedDesktop: 0.0042,
		RotSpeedTouch:   0.0042,
		TwistSensMouse:  0.012,

		PanFactor:   0.4,
		PanSmooth:   0.22,
		PanResidual: 0.2,

		ZoomExpWheel:  0.27,
		ZoomExpPinch:  2,
		ZoomFactorMin: 0.5,
		ZoomFactorMax: 1.35,
		ZoomSmoothing: 0.22,

		WheelK:        0.008,
		WheelScaleMin: 0.75,
		WheelScaleMax: 1.35,

		PinchExponent: 0.85,
		PinchScaleMin: 0.8,
		PinchScaleMax: 1.25,
		PinchDeadzone: 0.003,
		TwistDeadzone: 1e-4,

		PanLatch:       650 * time.Millisecond,
		DoubleTap:      300 * time.Millisecond,
		DoubleClick:    500 * time.Millisecond,
		DoubleTapMaxPx: 22,

		FitMargin:     1.6,
		SafeMinMargin: 1.5,
		RecenterDur:   280 * time.Millisecond,

		AutoFitPoll:     120 * time.Millisecond,
		AutoFitMax:      4000 * time.Millisecond,
		WatchdogWindow:  1200 * time.Millisecond,
		WatchdogEpsilon: 1e-3,
	}
}

// LoadConfig parses a YAML (or JSON) document over DefaultConfig and
// validates the result. Durations use Go syntax, e.g. "650ms".
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("fov %v out of range (0, 180)", c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("near/far planes %v/%v invalid", c.Near, c.Far)
	case c.ZoomMin <= 0 || c.ZoomMax <= c.ZoomMin:
		return fmt.Errorf("zoom range [%v, %v] invalid", c.ZoomMin, c.ZoomMax)
	case c.MinPitch <= 0 || c.MaxPitch >= math.Pi || c.MaxPitch <= c.MinPitch:
		return fmt.Errorf("pitch range [%v, %v] must lie strictly inside (0, π)", c.MinPitch, c.MaxPitch)
	case c.ZoomFactorMin <= 0 || c.ZoomFactorMax < c.ZoomFactorMin:
		return fmt.Errorf("zoom factor range [%v, %v] invalid", c.ZoomFactorMin, c.ZoomFactorMax)
	case c.PanSmooth <= 0 || c.PanSmooth > 1:
		return errors.New("pan_smooth must be in (0, 1]")
	case c.ZoomSmoothing <= 0 || c.ZoomSmoothing > 1:
		return errors.New("zoom_smoothing must be in (0, 1]")
	case c.AutoFitPoll <= 0 || c.AutoFitMax < c.AutoFitPoll:
		return fmt.Errorf("auto-fit poll %v / max %v invalid", c.AutoFitPoll, c.AutoFitMax)
	}
	return nil
}
