package physics

import (
	"testing"

	"thematrix/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycastAABB(t *testing.T) {
	b := box(-1, -1, -6, 1, 1, -4)

	hit, ok := RaycastAABB(rl.Vector3{}, rl.Vector3{Z: -1}, b, 100)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Distance, 1e-6)
	assert.Equal(t, rl.Vector3{Z: 1}, hit.Normal)

	_, ok = RaycastAABB(rl.Vector3{}, rl.Vector3{Z: 1}, b, 100)
	assert.False(t, ok, "box is behind the ray")

	_, ok = RaycastAABB(rl.Vector3{}, rl.Vector3{Z: -1}, b, 3)
	assert.False(t, ok, "box is beyond max distance")

	_, ok = RaycastAABB(rl.Vector3{X: 2}, rl.Vector3{Z: -1}, b, 100)
	assert.False(t, ok, "parallel ray outside the slab")
}

func TestRaycastClosestNode(t *testing.T) {
	scene := engine.NewScene("Test")
	cam := newCamera(rl.Vector3{})
	near := newBody("Near", rl.Vector3{Z: -3}, rl.Vector3{X: 1, Y: 1, Z: 1})
	far := newBody("Far", rl.Vector3{Z: -8}, rl.Vector3{X: 1, Y: 1, Z: 1})
	scene.AddRoot(cam)
	scene.AddRoot(far)
	scene.AddRoot(near)

	hit, ok := Raycast(scene, rl.Vector3{}, rl.Vector3{Z: -1}, 20, func(n *engine.Node) bool { return n.Caps.IsCamera })

	require.True(t, ok)
	assert.Same(t, near, hit.Node)
	assert.InDelta(t, 2.5, hit.Distance, 1e-6)
}
