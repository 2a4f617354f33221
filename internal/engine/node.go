package engine

import (
	"fmt"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

// Transform is the local pose of a node. Rotation is in radians:
// X is pitch, Y is yaw, Z is roll.
type Transform struct {
	Translation rl.Vector3
	Rotation    rl.Vector3
	Scale       rl.Vector3
}

// Caps are the capability flags physics and the camera check by field.
type Caps struct {
	HasVelocity bool // integrated by physics every step
	IsCamera    bool
	Movable     bool // can be picked up and carried
	IsTrigger   bool // consumed on contact in neutral mode
	Solid       bool // other bodies are pushed out of it
}

// AABB is an axis-aligned box in object space.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// Empty reports whether the box has no extent on every axis.
func (b AABB) Empty() bool {
	return b.Min == b.Max
}

// Attachment is set on a node while it is carried by another node.
type Attachment struct {
	Offset           rl.Vector3 // world offset from carrier translation
	SavedTranslation rl.Vector3
	SavedRotation    rl.Vector3
	SavedScale       rl.Vector3
}

type Node struct {
	UID       uint64
	Name      string
	Transform Transform
	Caps      Caps
	Velocity  rl.Vector3
	AABB      AABB
	TriggerID int
	Tint      rl.Color // debug draw color; zero means the host default

	// LocalTransform is rebuilt from Transform by UpdateTransform.
	LocalTransform rl.Matrix
	// Global is the cached result of the last Scene.UpdateGlobalTransforms.
	Global rl.Matrix

	Attachment *Attachment
	Parent     *Node
	Children   []*Node
}

func NewNode(name string) *Node {
	n := &Node{
		UID:  nextUID.Add(1),
		Name: name,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		Caps:     Caps{Solid: true},
		Children: make([]*Node, 0),
	}
	n.UpdateTransform()
	n.Global = n.LocalTransform
	return n
}

// UpdateTransform rebuilds LocalTransform: scale, roll, pitch, yaw, then translate.
func (n *Node) UpdateTransform() {
	t := n.Transform
	m := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	// raymath's MatrixRotate* turn by -angle under Vector3Transform, so the
	// angles are negated to keep positive yaw turning -Z toward -X.
	m = rl.MatrixMultiply(m, rl.MatrixRotateZ(-t.Rotation.Z))
	m = rl.MatrixMultiply(m, rl.MatrixRotateX(-t.Rotation.X))
	m = rl.MatrixMultiply(m, rl.MatrixRotateY(-t.Rotation.Y))
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(t.Translation.X, t.Translation.Y, t.Translation.Z))

	if n.Attachment != nil && n.Parent != nil {
		// Carried nodes store world-space poses; express them relative to the carrier.
		m = rl.MatrixMultiply(m, rl.MatrixInvert(n.Parent.GlobalTransform()))
	}
	n.LocalTransform = m
}

// GlobalTransform composes the local transforms of all ancestors.
func (n *Node) GlobalTransform() rl.Matrix {
	if n.Parent == nil {
		return n.LocalTransform
	}
	return rl.MatrixMultiply(n.LocalTransform, n.Parent.GlobalTransform())
}

// WorldPosition is the translation part of GlobalTransform.
func (n *Node) WorldPosition() rl.Vector3 {
	return Translation(n.GlobalTransform())
}

// WorldAABB offsets the object-space box by the node's world position.
func (n *Node) WorldAABB() AABB {
	pos := n.WorldPosition()
	return AABB{
		Min: rl.Vector3Add(pos, n.AABB.Min),
		Max: rl.Vector3Add(pos, n.AABB.Max),
	}
}

// Translation extracts the translation column of m.
func Translation(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

func (n *Node) AddChild(child *Node) {
	Assert(child.Parent == nil, "node %q already has parent %q", child.Name, parentName(child))
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Traverse walks the subtree depth-first, calling pre before and post after the children.
func (n *Node) Traverse(pre, post func(*Node)) {
	if pre != nil {
		pre(n)
	}
	for _, c := range n.Children {
		c.Traverse(pre, post)
	}
	if post != nil {
		post(n)
	}
}

// Validate checks the node-local invariants.
func (n *Node) Validate() error {
	b := n.AABB
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
		return fmt.Errorf("node %q: aabb min %v exceeds max %v", n.Name, b.Min, b.Max)
	}
	if n.Attachment != nil && n.Parent == nil {
		return fmt.Errorf("node %q: attached without a carrier", n.Name)
	}
	return nil
}

func parentName(n *Node) string {
	if n.Parent == nil {
		return ""
	}
	return n.Parent.Name
}
