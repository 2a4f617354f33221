package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got rl.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, []float32{want.X, want.Y, want.Z}, []float32{got.X, got.Y, got.Z}, eps, msgAndArgs...)
}

func TestNewNode(t *testing.T) {
	n := NewNode("Wall")

	assert.Equal(t, "Wall", n.Name)
	assert.NotZero(t, n.UID)
	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, n.Transform.Scale)
	assert.True(t, n.Caps.Solid)
	assert.NotNil(t, n.Children)
	assert.Equal(t, rl.MatrixIdentity(), n.LocalTransform)
}

func TestNodeUniqueUIDs(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	assert.NotEqual(t, a.UID, b.UID)
	assert.NotEqual(t, b.UID, c.UID)
	assert.NotEqual(t, a.UID, c.UID)
}

func TestUpdateTransformTranslation(t *testing.T) {
	n := NewNode("n")
	n.Transform.Translation = rl.Vector3{X: 1, Y: 2, Z: 3}
	n.UpdateTransform()

	assertVec(t, rl.Vector3{X: 1, Y: 2, Z: 3}, n.WorldPosition())
}

func TestUpdateTransformYaw(t *testing.T) {
	n := NewNode("cam")
	n.Transform.Rotation.Y = math.Pi / 2
	n.UpdateTransform()

	// Local -Z (look direction) turns to -X after a quarter yaw.
	got := rl.Vector3Transform(rl.Vector3{Z: -1}, n.LocalTransform)
	assertVec(t, rl.Vector3{X: -1}, got)
}

func TestUpdateTransformPitch(t *testing.T) {
	n := NewNode("cam")
	n.Transform.Rotation.X = -math.Pi / 2
	n.UpdateTransform()

	// Negative pitch tips the look direction down.
	got := rl.Vector3Transform(rl.Vector3{Z: -1}, n.LocalTransform)
	assertVec(t, rl.Vector3{Y: -1}, got)
}

func TestUpdateTransformLookDirection(t *testing.T) {
	tests := []struct {
		yaw, pitch float64
	}{
		{0, 0},
		{0.4, 0},
		{math.Pi, 0.3},
		{4.1, -0.7},
		{5.9, 1.2},
	}
	for _, tt := range tests {
		n := NewNode("cam")
		n.Transform.Rotation = rl.Vector3{X: float32(tt.pitch), Y: float32(tt.yaw)}
		n.UpdateTransform()

		want := rl.Vector3{
			X: float32(-math.Sin(tt.yaw) * math.Cos(tt.pitch)),
			Y: float32(math.Sin(tt.pitch)),
			Z: float32(-math.Cos(tt.yaw) * math.Cos(tt.pitch)),
		}
		got := rl.Vector3Transform(rl.Vector3{Z: -1}, n.LocalTransform)
		assertVec(t, want, got, "yaw %v pitch %v", tt.yaw, tt.pitch)
	}
}

func TestUpdateTransformScaleBeforeTranslate(t *testing.T) {
	n := NewNode("n")
	n.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	n.Transform.Translation = rl.Vector3{X: 10}
	n.UpdateTransform()

	got := rl.Vector3Transform(rl.Vector3{X: 1}, n.LocalTransform)
	assertVec(t, rl.Vector3{X: 12}, got)
}

func TestGlobalTransformComposesParents(t *testing.T) {
	root := NewNode("root")
	root.Transform.Translation = rl.Vector3{X: 5}
	root.UpdateTransform()

	mid := NewNode("mid")
	mid.Transform.Translation = rl.Vector3{Y: 2}
	mid.UpdateTransform()
	root.AddChild(mid)

	leaf := NewNode("leaf")
	leaf.Transform.Translation = rl.Vector3{Z: -1}
	leaf.UpdateTransform()
	mid.AddChild(leaf)

	assertVec(t, rl.Vector3{X: 5, Y: 2, Z: -1}, leaf.WorldPosition())
}

func TestWorldAABB(t *testing.T) {
	n := NewNode("box")
	n.AABB = AABB{Min: rl.Vector3{X: -1, Y: 0, Z: -1}, Max: rl.Vector3{X: 1, Y: 2, Z: 1}}
	n.Transform.Translation = rl.Vector3{X: 3, Y: 1}
	n.UpdateTransform()

	box := n.WorldAABB()
	assertVec(t, rl.Vector3{X: 2, Y: 1, Z: -1}, box.Min)
	assertVec(t, rl.Vector3{X: 4, Y: 3, Z: 1}, box.Max)
}

func TestAddRemoveChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")

	parent.AddChild(child)
	require.Len(t, parent.Children, 1)
	assert.Same(t, parent, child.Parent)

	parent.RemoveChild(child)
	assert.Empty(t, parent.Children)
	assert.Nil(t, child.Parent)
}

func TestNodeTraversePrePost(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	d := NewNode("d")
	a.AddChild(b)
	b.AddChild(c)
	a.AddChild(d)

	var order []string
	a.Traverse(
		func(n *Node) { order = append(order, "+"+n.Name) },
		func(n *Node) { order = append(order, "-"+n.Name) },
	)

	assert.Equal(t, []string{"+a", "+b", "+c", "-c", "-b", "+d", "-d", "-a"}, order)
}

func TestNodeValidate(t *testing.T) {
	n := NewNode("ok")
	n.AABB = AABB{Max: rl.Vector3{X: 1, Y: 1, Z: 1}}
	assert.NoError(t, n.Validate())

	bad := NewNode("bad")
	bad.AABB = AABB{Min: rl.Vector3{Y: 2}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}
	assert.Error(t, bad.Validate())

	orphan := NewNode("orphan")
	orphan.Attachment = &Attachment{}
	assert.Error(t, orphan.Validate())
}

func TestAABBEmpty(t *testing.T) {
	assert.True(t, AABB{}.Empty())
	assert.False(t, AABB{Max: rl.Vector3{X: 1}}.Empty())
}

func TestGameModePickUp(t *testing.T) {
	assert.False(t, ModeNeutral.PickUp())
	assert.True(t, GameMode(0).PickUp())
	assert.True(t, GameMode(1).PickUp())
}
