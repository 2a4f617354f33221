package config

import (
	"os"
	"path/filepath"
	"testing"

	"thematrix/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thematrix.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, `
scene = "levels/red.json"

[camera]
max_speed = 4
friction = 0.1

[physics]
carry_scale = 0.5
verbose = true

[bindings]
interact = "F"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "levels/red.json", cfg.Scene)
	assert.Equal(t, float32(4), cfg.Camera.MaxSpeed)
	assert.Equal(t, float32(0.1), cfg.Camera.Friction)
	assert.Equal(t, float32(20), cfg.Camera.Acceleration, "unset keys keep defaults")
	assert.Equal(t, float32(0.5), cfg.Physics.CarryScale)
	assert.True(t, cfg.Physics.Verbose)

	b, err := cfg.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, input.Key(rl.KeyF), b[input.Interact])
	assert.Equal(t, input.Key(rl.KeyW), b[input.MoveForward])
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[camera\nmax_speed = 4"},
		{"unknown key", "[camera]\nmax_sped = 4"},
		{"friction out of range", "[camera]\nfriction = 1.0"},
		{"non-positive speed", "[camera]\nmax_speed = 0"},
		{"non-positive acceleration", "[camera]\nacceleration = 0"},
		{"negative fly acceleration", "[camera]\nfly_acceleration = -1"},
		{"non-positive sensitivity", "[camera]\nmouse_sensitivity = 0"},
		{"non-positive fov", "[camera]\nfov = 0"},
		{"fov past half turn", "[camera]\nfov = 3.5"},
		{"bad key name", "[bindings]\nforward = \"Hyper\""},
		{"bad action name", "[bindings]\njump = \"Space\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Camera.MaxSpeed = 6

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
