package game

import (
	"testing"

	"thematrix/internal/config"
	"thematrix/internal/input"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roomScene = "../world/testdata/room.yaml"

func TestNewUsesConfiguredScene(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, cfg.Scene, New(cfg, "").ScenePath)
	assert.Equal(t, "levels/x.yaml", New(cfg, "levels/x.yaml").ScenePath)
}

func TestLoad(t *testing.T) {
	g := New(config.Default(), roomScene)

	require.NoError(t, g.Load())

	require.NotNil(t, g.State)
	require.NotNil(t, g.State.Camera)
	assert.Equal(t, "Camera", g.State.Camera.Node.Name)
	assert.Equal(t, 1, g.State.Physics.OnTrigger.ListenerCount())
	assert.Equal(t, "E", g.keyName(input.Interact))
}

func TestLoadMissingScene(t *testing.T) {
	g := New(config.Default(), "does/not/exist.yaml")

	assert.Error(t, g.Load())
	assert.Nil(t, g.State)
}

func TestLookTargetSkipsCamera(t *testing.T) {
	g := New(config.Default(), roomScene)
	require.NoError(t, g.Load())

	// the camera faces -Z where the pill sits three units away
	hit, ok := g.lookTarget()

	require.True(t, ok)
	assert.Equal(t, "Pill", hit.Node.Name)
	assert.InDelta(t, 2.75, hit.Distance, 1e-4)
}
