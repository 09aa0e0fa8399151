package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
)

// maxFileSize caps the size of a controls file.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// ControlsConfig is the JSON form of the orbit controls settings.
// Every field is optional; omitted fields keep the controller defaults, so partial
// files are safe. Omitted bounds mean unbounded.
type ControlsConfig struct {
	Enabled *bool `json:"enabled,omitempty"`

	// Target is the initial orbit centre.
	Target *[3]float64 `json:"target,omitempty"`

	// Damping
	EnableDamping *bool    `json:"enable_damping,omitempty"`
	DampingFactor *float64 `json:"damping_factor,omitempty"`

	// Capabilities
	EnableZoom         *bool    `json:"enable_zoom,omitempty"`
	ZoomSpeed          *float64 `json:"zoom_speed,omitempty"`
	EnableRotate       *bool    `json:"enable_rotate,omitempty"`
	RotateSpeed        *float64 `json:"rotate_speed,omitempty"`
	EnablePan          *bool    `json:"enable_pan,omitempty"`
	PanSpeed           *float64 `json:"pan_speed,omitempty"`
	ScreenSpacePanning *bool    `json:"screen_space_panning,omitempty"`
	EnableKeys         *bool    `json:"enable_keys,omitempty"`
	KeyPanSpeed        *float64 `json:"key_pan_speed,omitempty"` // pixels per key press
	AutoRotate         *bool    `json:"auto_rotate,omitempty"`
	AutoRotateSpeed    *float64 `json:"auto_rotate_speed,omitempty"`

	// Bounds, angles in radians
	MinDistance     *float64 `json:"min_distance,omitempty"`
	MaxDistance     *float64 `json:"max_distance,omitempty"`
	MinZoom         *float64 `json:"min_zoom,omitempty"`
	MaxZoom         *float64 `json:"max_zoom,omitempty"`
	MinPolarAngle   *float64 `json:"min_polar_angle,omitempty"`
	MaxPolarAngle   *float64 `json:"max_polar_angle,omitempty"`
	MinAzimuthAngle *float64 `json:"min_azimuth_angle,omitempty"`
	MaxAzimuthAngle *float64 `json:"max_azimuth_angle,omitempty"`

	// Bindings
	MouseButtons *MouseButtonsConfig `json:"mouse_buttons,omitempty"`
	Touches      *TouchesConfig      `json:"touches,omitempty"`

	TouchIdentifierRecovery *bool `json:"touch_identifier_recovery,omitempty"`
}

// MouseButtonsConfig names the action for each button: "rotate", "dolly", "pan" or "none".
type MouseButtonsConfig struct {
	Left   *string `json:"left,omitempty"`
	Middle *string `json:"middle,omitempty"`
	Right  *string `json:"right,omitempty"`
}

// TouchesConfig names the action per finger count: "rotate", "pan", "dolly_pan",
// "dolly_rotate" or "none". One finger accepts only "rotate", "pan" and "none".
type TouchesConfig struct {
	One *string `json:"one,omitempty"`
	Two *string `json:"two,omitempty"`
}

var mouseActions = map[string]camera.MouseAction{
	"none":   camera.MouseNone,
	"rotate": camera.MouseRotate,
	"dolly":  camera.MouseDolly,
	"pan":    camera.MousePan,
}

var touchActions = map[string]camera.TouchAction{
	"none":         camera.TouchNone,
	"rotate":       camera.TouchRotate,
	"pan":          camera.TouchPan,
	"dolly_pan":    camera.TouchDollyPan,
	"dolly_rotate": camera.TouchDollyRotate,
}

// LoadControlsConfig loads a ControlsConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Unknown fields are rejected.
func LoadControlsConfig(path string) (*ControlsConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := &ControlsConfig{}
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable by the controller.
func (c *ControlsConfig) Validate() error {
	if c.DampingFactor != nil && (*c.DampingFactor <= 0 || *c.DampingFactor > 1) {
		return fmt.Errorf("damping_factor must be in (0, 1], got %g", *c.DampingFactor)
	}

	speeds := []struct {
		name  string
		value *float64
	}{
		{"zoom_speed", c.ZoomSpeed},
		{"rotate_speed", c.RotateSpeed},
		{"pan_speed", c.PanSpeed},
		{"key_pan_speed", c.KeyPanSpeed},
	}
	for _, s := range speeds {
		if s.value != nil && *s.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %g", s.name, *s.value)
		}
	}

	if c.MinDistance != nil && *c.MinDistance < 0 {
		return fmt.Errorf("min_distance must be non-negative, got %g", *c.MinDistance)
	}
	if c.GetMinDistance() > c.GetMaxDistance() {
		return fmt.Errorf("min_distance %g exceeds max_distance %g", c.GetMinDistance(), c.GetMaxDistance())
	}
	if c.MinZoom != nil && *c.MinZoom < 0 {
		return fmt.Errorf("min_zoom must be non-negative, got %g", *c.MinZoom)
	}
	if c.GetMinZoom() > c.GetMaxZoom() {
		return fmt.Errorf("min_zoom %g exceeds max_zoom %g", c.GetMinZoom(), c.GetMaxZoom())
	}

	for _, a := range []*float64{c.MinPolarAngle, c.MaxPolarAngle} {
		if a != nil && (*a < 0 || *a > math.Pi) {
			return fmt.Errorf("polar angles must be in [0, pi], got %g", *a)
		}
	}
	if c.GetMinPolarAngle() > c.GetMaxPolarAngle() {
		return fmt.Errorf("min_polar_angle %g exceeds max_polar_angle %g", c.GetMinPolarAngle(), c.GetMaxPolarAngle())
	}

	// azimuth bounds may wrap, so only finiteness is checked
	for _, a := range []*float64{c.MinAzimuthAngle, c.MaxAzimuthAngle} {
		if a != nil && (math.IsNaN(*a) || math.IsInf(*a, 0)) {
			return fmt.Errorf("azimuth angles must be finite, got %g", *a)
		}
	}

	if _, err := c.mouseButtons(); err != nil {
		return err
	}
	if _, err := c.touches(); err != nil {
		return err
	}
	return nil
}

// Options converts the configuration into controller options.
// Unset fields fall back to the controller defaults.
func (c *ControlsConfig) Options() []camera.OrbitControlsOption {
	opts := []camera.OrbitControlsOption{
		camera.WithEnabled(c.GetEnabled()),
		camera.WithDamping(c.GetEnableDamping()),
		camera.WithDampingFactor(c.GetDampingFactor()),
		camera.WithZoomControl(c.GetEnableZoom(), c.GetZoomSpeed()),
		camera.WithRotateControl(c.GetEnableRotate(), c.GetRotateSpeed()),
		camera.WithPanControl(c.GetEnablePan(), c.GetPanSpeed()),
		camera.WithScreenSpacePanning(c.GetScreenSpacePanning()),
		camera.WithKeyControl(c.GetEnableKeys(), c.GetKeyPanSpeed()),
		camera.WithAutoRotate(c.GetAutoRotate(), c.GetAutoRotateSpeed()),
		camera.WithDistanceBounds(c.GetMinDistance(), c.GetMaxDistance()),
		camera.WithZoomBounds(c.GetMinZoom(), c.GetMaxZoom()),
		camera.WithPolarBounds(c.GetMinPolarAngle(), c.GetMaxPolarAngle()),
		camera.WithAzimuthBounds(c.GetMinAzimuthAngle(), c.GetMaxAzimuthAngle()),
		camera.WithTouchIdentifierRecovery(getOr(c.TouchIdentifierRecovery, false)),
	}
	if c.Target != nil {
		opts = append(opts, camera.WithTarget(c.Target[0], c.Target[1], c.Target[2]))
	}
	// Validate has already rejected bad names
	if buttons, err := c.mouseButtons(); err == nil {
		opts = append(opts, camera.WithMouseButtons(buttons))
	}
	if touches, err := c.touches(); err == nil {
		opts = append(opts, camera.WithTouches(touches))
	}
	return opts
}

func (c *ControlsConfig) mouseButtons() (camera.MouseButtons, error) {
	buttons := camera.MouseButtons{Left: camera.MouseRotate, Middle: camera.MouseDolly, Right: camera.MousePan}
	if c.MouseButtons == nil {
		return buttons, nil
	}
	for _, b := range []struct {
		name string
		in   *string
		out  *camera.MouseAction
	}{
		{"left", c.MouseButtons.Left, &buttons.Left},
		{"middle", c.MouseButtons.Middle, &buttons.Middle},
		{"right", c.MouseButtons.Right, &buttons.Right},
	} {
		if b.in == nil {
			continue
		}
		action, ok := mouseActions[*b.in]
		if !ok {
			return buttons, fmt.Errorf("mouse_buttons.%s: unknown action %q", b.name, *b.in)
		}
		*b.out = action
	}
	return buttons, nil
}

func (c *ControlsConfig) touches() (camera.Touches, error) {
	touches := camera.Touches{One: camera.TouchRotate, Two: camera.TouchDollyPan}
	if c.Touches == nil {
		return touches, nil
	}
	if c.Touches.One != nil {
		action, ok := touchActions[*c.Touches.One]
		if !ok || action == camera.TouchDollyPan || action == camera.TouchDollyRotate {
			return touches, fmt.Errorf("touches.one: unsupported action %q", *c.Touches.One)
		}
		touches.One = action
	}
	if c.Touches.Two != nil {
		action, ok := touchActions[*c.Touches.Two]
		if !ok {
			return touches, fmt.Errorf("touches.two: unknown action %q", *c.Touches.Two)
		}
		touches.Two = action
	}
	return touches, nil
}

func getOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// GetEnabled returns the enabled value or the default.
func (c *ControlsConfig) GetEnabled() bool { return getOr(c.Enabled, true) }

// GetEnableDamping returns the enable_damping value or the default.
func (c *ControlsConfig) GetEnableDamping() bool { return getOr(c.EnableDamping, true) }

// GetDampingFactor returns the damping_factor value or the default.
func (c *ControlsConfig) GetDampingFactor() float64 { return getOr(c.DampingFactor, 0.05) }

func (c *ControlsConfig) GetEnableZoom() bool         { return getOr(c.EnableZoom, true) }
func (c *ControlsConfig) GetZoomSpeed() float64       { return getOr(c.ZoomSpeed, 1.0) }
func (c *ControlsConfig) GetEnableRotate() bool       { return getOr(c.EnableRotate, true) }
func (c *ControlsConfig) GetRotateSpeed() float64     { return getOr(c.RotateSpeed, 1.0) }
func (c *ControlsConfig) GetEnablePan() bool          { return getOr(c.EnablePan, false) }
func (c *ControlsConfig) GetPanSpeed() float64        { return getOr(c.PanSpeed, 1.0) }
func (c *ControlsConfig) GetScreenSpacePanning() bool { return getOr(c.ScreenSpacePanning, false) }
func (c *ControlsConfig) GetEnableKeys() bool         { return getOr(c.EnableKeys, true) }
func (c *ControlsConfig) GetKeyPanSpeed() float64     { return getOr(c.KeyPanSpeed, 7.0) }
func (c *ControlsConfig) GetAutoRotate() bool         { return getOr(c.AutoRotate, false) }
func (c *ControlsConfig) GetAutoRotateSpeed() float64 { return getOr(c.AutoRotateSpeed, 2.0) }

// GetMinDistance returns the min_distance value or 0.
func (c *ControlsConfig) GetMinDistance() float64 { return getOr(c.MinDistance, 0) }

// GetMaxDistance returns the max_distance value, unbounded when unset.
func (c *ControlsConfig) GetMaxDistance() float64 { return getOr(c.MaxDistance, math.Inf(1)) }

func (c *ControlsConfig) GetMinZoom() float64       { return getOr(c.MinZoom, 0) }
func (c *ControlsConfig) GetMaxZoom() float64       { return getOr(c.MaxZoom, 100) }
func (c *ControlsConfig) GetMinPolarAngle() float64 { return getOr(c.MinPolarAngle, 0) }
func (c *ControlsConfig) GetMaxPolarAngle() float64 { return getOr(c.MaxPolarAngle, math.Pi) }

// GetMinAzimuthAngle returns the min_azimuth_angle value, unbounded when unset.
func (c *ControlsConfig) GetMinAzimuthAngle() float64 { return getOr(c.MinAzimuthAngle, math.Inf(-1)) }

// GetMaxAzimuthAngle returns the max_azimuth_angle value, unbounded when unset.
func (c *ControlsConfig) GetMaxAzimuthAngle() float64 { return getOr(c.MaxAzimuthAngle, math.Inf(1)) }
