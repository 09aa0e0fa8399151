package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newControls(t *testing.T, cfg *ControlsConfig) camera.OrbitControls {
	t.Helper()
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10))
	opts := append(cfg.Options(), camera.WithWarningHandler(t.Logf))
	return camera.NewOrbitControls(cam, camera.FixedViewport{W: 800, H: 500}, opts...)
}

func TestLoadControlsConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "controls.json", `{
  "enable_pan": true,
  "pan_speed": 2,
  "screen_space_panning": true,
  "damping_factor": 0.1,
  "min_distance": 2,
  "max_distance": 20,
  "max_polar_angle": 1.5,
  "target": [1, 2, 3],
  "mouse_buttons": {"left": "pan", "right": "rotate"},
  "touches": {"two": "dolly_rotate"}
}`)

	cfg, err := LoadControlsConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ptrBool(true), cfg.EnablePan)
	assert.Equal(t, ptrFloat64(2), cfg.PanSpeed)
	assert.Equal(t, &[3]float64{1, 2, 3}, cfg.Target)
	assert.Nil(t, cfg.ZoomSpeed)

	controls := newControls(t, cfg)
	assert.True(t, controls.EnablePan())
	assert.Equal(t, 2.0, controls.PanSpeed())
	assert.True(t, controls.ScreenSpacePanning())
	assert.Equal(t, 0.1, controls.DampingFactor())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, controls.Target())

	minD, maxD := controls.DistanceBounds()
	assert.Equal(t, 2.0, minD)
	assert.Equal(t, 20.0, maxD)
	minP, maxP := controls.PolarBounds()
	assert.Equal(t, 0.0, minP)
	assert.Equal(t, 1.5, maxP)

	assert.Equal(t, camera.MouseButtons{Left: camera.MousePan, Middle: camera.MouseDolly, Right: camera.MouseRotate}, controls.MouseButtons())
	assert.Equal(t, camera.Touches{One: camera.TouchRotate, Two: camera.TouchDollyRotate}, controls.Touches())
}

func TestEmptyConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg := &ControlsConfig{}
	require.NoError(t, cfg.Validate())

	controls := newControls(t, cfg)
	defaults := camera.NewOrbitControls(camera.NewCamera(camera.WithPosition(0, 0, 10)), camera.FixedViewport{W: 800, H: 500})

	assert.Equal(t, defaults.Enabled(), controls.Enabled())
	assert.Equal(t, defaults.EnableDamping(), controls.EnableDamping())
	assert.Equal(t, defaults.DampingFactor(), controls.DampingFactor())
	assert.Equal(t, defaults.EnableZoom(), controls.EnableZoom())
	assert.Equal(t, defaults.ZoomSpeed(), controls.ZoomSpeed())
	assert.Equal(t, defaults.EnableRotate(), controls.EnableRotate())
	assert.Equal(t, defaults.EnablePan(), controls.EnablePan())
	assert.Equal(t, defaults.EnableKeys(), controls.EnableKeys())
	assert.Equal(t, defaults.KeyPanSpeed(), controls.KeyPanSpeed())
	assert.Equal(t, defaults.AutoRotate(), controls.AutoRotate())
	assert.Equal(t, defaults.AutoRotateSpeed(), controls.AutoRotateSpeed())
	assert.Equal(t, defaults.MouseButtons(), controls.MouseButtons())
	assert.Equal(t, defaults.Touches(), controls.Touches())

	minA, maxA := controls.AzimuthBounds()
	assert.True(t, math.IsInf(minA, -1))
	assert.True(t, math.IsInf(maxA, 1))
	_, maxD := controls.DistanceBounds()
	assert.True(t, math.IsInf(maxD, 1))
}

func TestLoadControlsConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "controls.yaml", `{}`, ".json extension"},
		{"malformed json", "controls.json", `{"enable_pan": `, "failed to parse config JSON"},
		{"unknown field", "controls.json", `{"enable_pann": true}`, "failed to parse config JSON"},
		{"wrong type", "controls.json", `{"zoom_speed": "fast"}`, "failed to parse config JSON"},
		{"invalid value", "controls.json", `{"damping_factor": 0}`, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadControlsConfig(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadControlsConfigMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadControlsConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadControlsConfigTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"enabled": true}` + strings.Repeat(" ", maxFileSize)
	_, err := LoadControlsConfig(writeConfig(t, "big.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     ControlsConfig
		wantErr string
	}{
		{"valid", ControlsConfig{DampingFactor: ptrFloat64(1), MinDistance: ptrFloat64(1), MaxDistance: ptrFloat64(1)}, ""},
		{"damping factor too large", ControlsConfig{DampingFactor: ptrFloat64(1.5)}, "damping_factor"},
		{"negative speed", ControlsConfig{RotateSpeed: ptrFloat64(-1)}, "rotate_speed"},
		{"negative min distance", ControlsConfig{MinDistance: ptrFloat64(-1)}, "min_distance must be non-negative"},
		{"inverted distance", ControlsConfig{MinDistance: ptrFloat64(5), MaxDistance: ptrFloat64(2)}, "exceeds max_distance"},
		{"min distance beyond default max", ControlsConfig{MinDistance: ptrFloat64(1e9)}, ""},
		{"inverted zoom", ControlsConfig{MinZoom: ptrFloat64(200)}, "exceeds max_zoom"},
		{"polar out of range", ControlsConfig{MaxPolarAngle: ptrFloat64(4)}, "polar angles"},
		{"inverted polar", ControlsConfig{MinPolarAngle: ptrFloat64(2), MaxPolarAngle: ptrFloat64(1)}, "exceeds max_polar_angle"},
		{"wrapped azimuth", ControlsConfig{MinAzimuthAngle: ptrFloat64(3), MaxAzimuthAngle: ptrFloat64(-3)}, ""},
		{"infinite azimuth", ControlsConfig{MinAzimuthAngle: ptrFloat64(math.Inf(-1))}, "azimuth angles must be finite"},
		{"unknown button action", ControlsConfig{MouseButtons: &MouseButtonsConfig{Middle: ptrString("zoom")}}, "mouse_buttons.middle"},
		{"one finger dolly", ControlsConfig{Touches: &TouchesConfig{One: ptrString("dolly_pan")}}, "touches.one"},
		{"unknown two finger action", ControlsConfig{Touches: &TouchesConfig{Two: ptrString("spin")}}, "touches.two"},
		{"disabled bindings", ControlsConfig{
			MouseButtons: &MouseButtonsConfig{Right: ptrString("none")},
			Touches:      &TouchesConfig{One: ptrString("none"), Two: ptrString("none")},
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
