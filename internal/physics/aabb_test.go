package physics

import (
	"testing"

	"thematrix/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) engine.AABB {
	return engine.AABB{
		Min: rl.Vector3{X: minX, Y: minY, Z: minZ},
		Max: rl.Vector3{X: maxX, Y: maxY, Z: maxZ},
	}
}

func offset(b engine.AABB, d rl.Vector3) engine.AABB {
	return engine.AABB{Min: rl.Vector3Add(b.Min, d), Max: rl.Vector3Add(b.Max, d)}
}

func TestIntersects(t *testing.T) {
	unit := box(0, 0, 0, 1, 1, 1)
	tests := []struct {
		name string
		b    engine.AABB
		want bool
	}{
		{"identical", unit, true},
		{"partial X", box(0.5, 0, 0, 1.5, 1, 1), true},
		{"contained", box(0.25, 0.25, 0.25, 0.75, 0.75, 0.75), true},
		{"separated +X", box(2, 0, 0, 3, 1, 1), false},
		{"separated -Y", box(0, -2, 0, 1, -1, 1), false},
		{"separated +Z", box(0, 0, 2, 1, 1, 3), false},
		{"touching face", box(1, 0, 0, 2, 1, 1), false},
		{"overlap on two axes only", box(0.5, 0.5, 1.5, 1.5, 1.5, 2.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersects(unit, tt.b))
			assert.Equal(t, tt.want, Intersects(tt.b, unit), "symmetry")
		})
	}
}

func TestResolveScenarioX(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	b := box(0.5, 0, 0, 1.5, 1, 1)

	push, ok := Resolve(a, b)

	require.True(t, ok)
	assert.InDelta(t, -0.5, push.X, 1e-6)
	assert.Zero(t, push.Y)
	assert.Zero(t, push.Z)
	assert.False(t, Intersects(offset(a, push), b))
}

func TestResolvePicksSmallestAxis(t *testing.T) {
	tests := []struct {
		name string
		a, b engine.AABB
		want rl.Vector3
	}{
		{"land on top", box(0, 0.9, 0, 1, 1.9, 1), box(-5, -1, -5, 5, 1, 5), rl.Vector3{Y: 0.1}},
		{"hit ceiling", box(0, 1.5, 0, 1, 2.5, 1), box(-5, 2.25, -5, 5, 3, 5), rl.Vector3{Y: -0.25}},
		{"push back along +Z", box(0, 0, 4.5, 1, 1, 5.5), box(-5, -5, -5, 5, 5, 5), rl.Vector3{Z: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			push, ok := Resolve(tt.a, tt.b)
			require.True(t, ok)
			assert.InDelta(t, tt.want.X, push.X, 1e-5)
			assert.InDelta(t, tt.want.Y, push.Y, 1e-5)
			assert.InDelta(t, tt.want.Z, push.Z, 1e-5)
			assert.False(t, Intersects(offset(tt.a, push), tt.b))
		})
	}
}

func TestResolveTieBreak(t *testing.T) {
	// Identical unit boxes: every candidate has depth 1, +X comes first.
	push, ok := Resolve(box(0, 0, 0, 1, 1, 1), box(0, 0, 0, 1, 1, 1))

	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1}, push)
}

func TestResolveNoOverlap(t *testing.T) {
	_, ok := Resolve(box(0, 0, 0, 1, 1, 1), box(1, 0, 0, 2, 1, 1))
	assert.False(t, ok, "zero depth is not a collision")
}

func TestNewAABBFromCenter(t *testing.T) {
	b := NewAABBFromCenter(rl.Vector3{Y: 1}, rl.Vector3{X: 2, Y: 2, Z: 4})
	assert.Equal(t, rl.Vector3{X: -1, Y: 0, Z: -2}, b.Min)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 2}, b.Max)
}
