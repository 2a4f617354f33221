package physics

import (
	"log"

	"thematrix/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// System integrates velocity nodes and resolves their AABB contacts against
// everything else in the scene. Structural changes caused by contacts
// (trigger consumption, pick-up) are queued and applied after the pass.
type System struct {
	Scene *engine.Scene
	Queue engine.MutationQueue

	// CarryScale multiplies the saved scale of a node while it is carried.
	CarryScale float32
	Verbose    bool

	// OnTrigger fires with the trigger id after the consuming step completes.
	OnTrigger engine.EventWithArg[int]
}

func NewSystem(scene *engine.Scene) *System {
	return &System{
		Scene:      scene,
		CarryScale: 1,
	}
}

// stepState is the per-Advance bookkeeping shared by every pair.
type stepState struct {
	mode        engine.GameMode
	interacting bool
	triggered   bool
	triggerID   int
}

// Advance runs one physics step. It reports the id of the trigger consumed
// during the step, if any.
func (p *System) Advance(dt float32, mode engine.GameMode, interacting bool) (int, bool) {
	if p.Scene == nil {
		return 0, false
	}

	st := stepState{mode: mode, interacting: interacting}
	nodes := p.Scene.Nodes()

	for _, a := range nodes {
		if !a.Caps.HasVelocity || p.skipped(a) {
			continue
		}
		a.Transform.Translation = rl.Vector3Add(a.Transform.Translation, rl.Vector3Scale(a.Velocity, dt))
		a.UpdateTransform()

		if a.AABB.Empty() {
			continue
		}
		for _, b := range nodes {
			if b == a || b.Parent == a || b.AABB.Empty() || p.skipped(b) {
				continue
			}
			p.resolveCollision(a, b, &st)
		}
	}

	for _, m := range p.Queue.Apply(p.Scene) {
		if p.Verbose {
			log.Printf("physics: %s node %d", m.Kind, m.Node.UID)
		}
	}
	p.FollowCarriers()

	if st.triggered {
		p.OnTrigger.Invoke(st.triggerID)
	}
	return st.triggerID, st.triggered
}

// skipped reports nodes already on their way out of the free scene this step.
func (p *System) skipped(n *engine.Node) bool {
	return p.Queue.Pending(n, engine.MutationRemove) || p.Queue.Pending(n, engine.MutationAttach)
}

func (p *System) resolveCollision(a, b *engine.Node, st *stepState) {
	boxA := a.WorldAABB()
	boxB := b.WorldAABB()
	if !Intersects(boxA, boxB) {
		return
	}

	if !st.mode.PickUp() {
		if b.Caps.IsTrigger && !st.triggered {
			p.consumeTriggers(b, st)
			return
		}
	} else if b.Caps.Movable && b.Parent == nil && st.interacting && p.canCarry(a) {
		p.attach(a, b)
		return
	}

	if !b.Caps.Solid {
		return
	}
	push, ok := Resolve(boxA, boxB)
	if !ok {
		return
	}
	a.Transform.Translation = rl.Vector3Add(a.Transform.Translation, push)
	a.UpdateTransform()
}

// consumeTriggers queues every trigger in the scene for removal and records
// hit as the step result.
func (p *System) consumeTriggers(hit *engine.Node, st *stepState) {
	for _, t := range p.Scene.Triggers() {
		p.Queue.Remove(t)
	}
	st.triggered = true
	st.triggerID = hit.TriggerID
	log.Printf("physics: trigger %q consumed (id %d)", hit.Name, hit.TriggerID)
}

// canCarry allows a single carried node per carrier.
func (p *System) canCarry(carrier *engine.Node) bool {
	if p.Queue.Carrying(carrier) {
		return false
	}
	for _, c := range carrier.Children {
		if c.Attachment != nil {
			return false
		}
	}
	return true
}

func (p *System) attach(carrier, n *engine.Node) {
	p.Queue.Attach(n, carrier, &engine.Attachment{
		Offset:           rl.Vector3Subtract(n.WorldPosition(), carrier.WorldPosition()),
		SavedTranslation: n.Transform.Translation,
		SavedRotation:    n.Transform.Rotation,
		SavedScale:       n.Transform.Scale,
	})
	if p.Verbose {
		log.Printf("physics: %q picks up %q", carrier.Name, n.Name)
	}
}

// FollowCarriers moves every carried node to its carrier's position plus the
// offset recorded at pick-up.
func (p *System) FollowCarriers() {
	for _, n := range p.Scene.Nodes() {
		a := n.Attachment
		if a == nil || n.Parent == nil {
			continue
		}
		n.Transform.Translation = rl.Vector3Add(n.Parent.WorldPosition(), a.Offset)
		n.Transform.Scale = rl.Vector3Scale(a.SavedScale, p.CarryScale)
		n.UpdateTransform()
	}
}
