package camera

import (
	"math"

	"thematrix/internal/engine"
	"thematrix/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2
)

// Controller turns held keys and pointer motion into velocity and look
// angles for a camera node. Translation is integrated by physics.
type Controller struct {
	Node *engine.Node

	MaxSpeed         float32
	Friction         float32 // per-step damping in [0,1) when no planar key is held
	Acceleration     float32
	MouseSensitivity float32
	FlyAcceleration  float32 // magnitude of the vertical basis in free-fly

	FOV        float32
	Aspect     float32
	Near       float32
	Far        float32
	Projection rl.Matrix

	Bindings input.Bindings

	// Interacting is true while the interact key is held in pick-up mode.
	Interacting bool
	viewMode    bool

	OnViewMode          engine.EventWithArg[bool]
	OnNothingToInteract engine.Event
}

// Result is what one Update reports back to game logic.
type Result struct {
	NothingToInteract bool
	Released          *engine.Node // node dropped on interact release
}

// New wraps node as a first-person camera with the default tuning.
func New(node *engine.Node) *Controller {
	node.Caps.IsCamera = true
	node.Caps.HasVelocity = true
	c := &Controller{
		Node:             node,
		MaxSpeed:         3,
		Friction:         0.2,
		Acceleration:     20,
		MouseSensitivity: 0.002,
		FlyAcceleration:  3,
		FOV:              1.5,
		Aspect:           1,
		Near:             0.01,
		Far:              100,
		Bindings:         input.DefaultBindings(),
	}
	c.UpdateProjection()
	return c
}

func (c *Controller) UpdateProjection() {
	c.Projection = rl.MatrixPerspective(c.FOV, c.Aspect, c.Near, c.Far)
}

func (c *Controller) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// Pitch and Yaw are the node's rotation about X and Y.
func (c *Controller) Pitch() float32 { return c.Node.Transform.Rotation.X }
func (c *Controller) Yaw() float32   { return c.Node.Transform.Rotation.Y }

// ViewMode reports whether the special view key is currently held.
func (c *Controller) ViewMode() bool { return c.viewMode }

// Look applies pointer motion: pitch is clamped to [-π/2, π/2] and yaw is
// wrapped into [0, 2π).
func (c *Controller) Look(dx, dy float32) {
	r := &c.Node.Transform.Rotation
	r.X -= dy * c.MouseSensitivity
	r.Y -= dx * c.MouseSensitivity

	if r.X > halfPi {
		r.X = halfPi
	}
	if r.X < -halfPi {
		r.X = -halfPi
	}
	r.Y = WrapAngle(r.Y)
	c.Node.UpdateTransform()
}

// WrapAngle maps a into [0, 2π), including negative angles and angles more
// than one turn away.
func WrapAngle(a float32) float32 {
	w := math.Mod(math.Mod(float64(a), twoPi)+twoPi, twoPi)
	r := float32(w)
	if r >= twoPi {
		// float32 rounding can land exactly on 2π
		r = 0
	}
	return r
}

// Basis returns the planar forward and right vectors for the current yaw.
func (c *Controller) Basis() (forward, right rl.Vector3) {
	yaw := float64(c.Yaw())
	forward = rl.Vector3{X: float32(-math.Sin(yaw)), Z: float32(-math.Cos(yaw))}
	right = rl.Vector3{X: float32(math.Cos(yaw)), Z: float32(-math.Sin(yaw))}
	return
}

// Update advances velocity for one step. When interaction ends the carried
// node's detach is pushed onto q and takes effect when q is applied.
func (c *Controller) Update(dt float32, in input.Snapshot, mode engine.GameMode, q *engine.MutationQueue) Result {
	var res Result
	b := c.Bindings
	forward, right := c.Basis()

	// 1: movement acceleration, deliberately not normalized
	var acc rl.Vector3
	if b.Down(in, input.MoveForward) {
		acc = rl.Vector3Add(acc, forward)
	}
	if b.Down(in, input.MoveBack) {
		acc = rl.Vector3Subtract(acc, forward)
	}
	if b.Down(in, input.MoveRight) {
		acc = rl.Vector3Add(acc, right)
	}
	if b.Down(in, input.MoveLeft) {
		acc = rl.Vector3Subtract(acc, right)
	}

	if mode.PickUp() {
		fly := rl.Vector3{Y: c.FlyAcceleration}
		if b.Down(in, input.FlyUp) {
			acc = rl.Vector3Add(acc, fly)
		}
		if b.Down(in, input.FlyDown) {
			acc = rl.Vector3Subtract(acc, fly)
		}
		c.setViewMode(b.Down(in, input.ViewMode))

		if b.Down(in, input.Interact) {
			c.Interacting = true
		} else if c.Interacting {
			res = c.release(q)
			c.Interacting = false
		}
	}

	// 2: velocity
	v := &c.Node.Velocity
	*v = rl.Vector3Add(*v, rl.Vector3Scale(acc, dt*c.Acceleration))

	// 3: friction when no planar key is held
	if !b.Down(in, input.MoveForward) && !b.Down(in, input.MoveBack) &&
		!b.Down(in, input.MoveRight) && !b.Down(in, input.MoveLeft) {
		*v = rl.Vector3Scale(*v, 1-c.Friction)
	}

	// 4: speed limit
	if l := rl.Vector3Length(*v); l > c.MaxSpeed && l > 0 {
		*v = rl.Vector3Scale(*v, c.MaxSpeed/l)
	}

	return res
}

func (c *Controller) setViewMode(on bool) {
	if on == c.viewMode {
		return
	}
	c.viewMode = on
	c.OnViewMode.Invoke(on)
}

// release queues a detach of the carried node, or reports that there was
// nothing to drop.
func (c *Controller) release(q *engine.MutationQueue) Result {
	var carried []*engine.Node
	for _, ch := range c.Node.Children {
		if ch.Attachment != nil {
			carried = append(carried, ch)
		}
	}
	switch len(carried) {
	case 0:
		c.OnNothingToInteract.Invoke()
		return Result{NothingToInteract: true}
	case 1:
		if q != nil {
			q.Detach(carried[0])
		}
		return Result{Released: carried[0]}
	}
	return Result{}
}

// Disable drops transient input state, e.g. when the pointer lock is lost.
func (c *Controller) Disable() {
	c.setViewMode(false)
	c.Interacting = false
}

// RaylibCamera describes the view for raylib drawing.
func (c *Controller) RaylibCamera() rl.Camera3D {
	m := c.Node.GlobalTransform()
	pos := engine.Translation(m)
	look := rl.Vector3Transform(rl.Vector3{Z: -1}, m)
	up := rl.Vector3Subtract(rl.Vector3Transform(rl.Vector3{Y: 1}, m), pos)
	return rl.Camera3D{
		Position:   pos,
		Target:     look,
		Up:         up,
		Fovy:       c.FOV * rl.Rad2deg,
		Projection: rl.CameraPerspective,
	}
}
