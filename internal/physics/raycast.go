package physics

import (
	"thematrix/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Node     *engine.Node
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest node whose world AABB the ray enters within
// maxDistance. Nodes for which skip returns true are ignored.
func Raycast(scene *engine.Scene, origin, direction rl.Vector3, maxDistance float32, skip func(*engine.Node) bool) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	closest := RaycastHit{Distance: maxDistance}
	hit := false

	for _, n := range scene.Nodes() {
		if n.AABB.Empty() || (skip != nil && skip(n)) {
			continue
		}
		if h, ok := RaycastAABB(origin, direction, n.WorldAABB(), maxDistance); ok && h.Distance < closest.Distance {
			closest = h
			closest.Node = n
			hit = true
		}
	}
	return closest, hit
}

// RaycastAABB intersects a normalized ray with a box using the slab method.
func RaycastAABB(origin, direction rl.Vector3, box engine.AABB, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !slab(origin.X, direction.X, box.Min.X, box.Max.X) ||
		!slab(origin.Y, direction.Y, box.Min.Y, box.Max.Y) ||
		!slab(origin.Z, direction.Z, box.Min.Z, box.Max.Z) {
		return RaycastHit{}, false
	}
	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		// origin is inside the box
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	var normal rl.Vector3
	epsilon := float32(0.001)
	switch {
	case abs(point.X-box.Min.X) < epsilon:
		normal = rl.Vector3{X: -1}
	case abs(point.X-box.Max.X) < epsilon:
		normal = rl.Vector3{X: 1}
	case abs(point.Y-box.Min.Y) < epsilon:
		normal = rl.Vector3{Y: -1}
	case abs(point.Y-box.Max.Y) < epsilon:
		normal = rl.Vector3{Y: 1}
	case abs(point.Z-box.Min.Z) < epsilon:
		normal = rl.Vector3{Z: -1}
	default:
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
