// Stress test for the all-pairs AABB step: a field of static crates with a
// growing number of moving bodies pushing through it.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"thematrix/internal/engine"
	"thematrix/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	steps := flag.Int("steps", 120, "physics steps per run")
	static := flag.Int("static", 200, "static boxes in the field")
	flag.Parse()

	// Test various body counts
	testCounts := []int{1, 10, 50, 100, 200}

	for _, count := range testCounts {
		run(count, *static, *steps)
	}
}

func run(bodies, static, steps int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results
	scene := engine.NewScene("Stress")

	// Spawn in a square, size scales with count to keep density reasonable
	spawnSize := float32(20.0) + float32(static)/10.0
	randomPos := func() rl.Vector3 {
		return rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
	}

	for i := 0; i < static; i++ {
		n := engine.NewNode(fmt.Sprintf("Box_%d", i))
		n.Transform.Translation = randomPos()
		n.AABB = physics.NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
		n.Caps.Movable = i%4 == 0
		n.UpdateTransform()
		scene.AddRoot(n)
	}
	for i := 0; i < bodies; i++ {
		n := engine.NewNode(fmt.Sprintf("Body_%d", i))
		n.Transform.Translation = randomPos()
		n.AABB = physics.NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 0.5, Y: 1, Z: 0.5})
		n.Caps.HasVelocity = true
		n.Velocity = rl.Vector3{X: rng.Float32()*6 - 3, Z: rng.Float32()*6 - 3}
		n.UpdateTransform()
		scene.AddRoot(n)
	}

	sys := physics.NewSystem(scene)
	const dt = float32(1.0 / 60)

	// Warm up
	sys.Advance(dt, engine.ModeNeutral, false)

	start := time.Now()
	for i := 0; i < steps; i++ {
		sys.Advance(dt, engine.ModeNeutral, false)
	}
	perStep := time.Since(start) / time.Duration(steps)

	fmt.Printf("%4d bodies x %4d boxes: %10v per step (%d pairs)\n",
		bodies, static, perStep.Round(time.Microsecond), bodies*(static+bodies-1))
}
