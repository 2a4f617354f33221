package physics

import (
	"thematrix/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NewAABBFromCenter creates a box from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) engine.AABB {
	half := rl.Vector3Scale(size, 0.5)
	return engine.AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// intervalOverlap treats touching intervals as separate, so a box pushed
// flush against another no longer counts as colliding.
func intervalOverlap(min1, max1, min2, max2 float32) bool {
	return min1 < max2 && min2 < max1
}

// Intersects reports whether a and b overlap on all three axes.
func Intersects(a, b engine.AABB) bool {
	return intervalOverlap(a.Min.X, a.Max.X, b.Min.X, b.Max.X) &&
		intervalOverlap(a.Min.Y, a.Max.Y, b.Min.Y, b.Max.Y) &&
		intervalOverlap(a.Min.Z, a.Max.Z, b.Min.Z, b.Max.Z)
}

// Resolve returns the minimum translation that moves a out of b along one axis.
// Candidates are tried in the order +X, +Y, +Z, -X, -Y, -Z and the first
// smallest non-negative depth wins. ok is false when that depth is zero or
// every candidate is negative.
func Resolve(a, b engine.AABB) (push rl.Vector3, ok bool) {
	diffA := rl.Vector3Subtract(b.Max, a.Min) // push a toward +axis
	diffB := rl.Vector3Subtract(a.Max, b.Min) // push a toward -axis

	candidates := [6]struct {
		depth float32
		dir   rl.Vector3
	}{
		{diffA.X, rl.Vector3{X: 1}},
		{diffA.Y, rl.Vector3{Y: 1}},
		{diffA.Z, rl.Vector3{Z: 1}},
		{diffB.X, rl.Vector3{X: -1}},
		{diffB.Y, rl.Vector3{Y: -1}},
		{diffB.Z, rl.Vector3{Z: -1}},
	}

	var minDepth float32
	for _, c := range candidates {
		if c.depth < 0 {
			continue
		}
		if !ok || c.depth < minDepth {
			minDepth = c.depth
			push = rl.Vector3Scale(c.dir, c.depth)
			ok = true
		}
	}
	if ok && minDepth == 0 {
		return rl.Vector3{}, false
	}
	return push, ok
}
