package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Scene struct {
	Name  string
	Roots []*Node

	uidMap     map[uint64]*Node
	traversing int
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:   name,
		Roots:  make([]*Node, 0),
		uidMap: make(map[uint64]*Node),
	}
}

func (s *Scene) guard(op string) {
	if s.traversing > 0 {
		panic("engine: scene mutated during traversal (" + op + ")")
	}
}

func (s *Scene) index(n *Node) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Node)
	}
	n.Traverse(func(c *Node) { s.uidMap[c.UID] = c }, nil)
}

func (s *Scene) unindex(n *Node) {
	n.Traverse(func(c *Node) { delete(s.uidMap, c.UID) }, nil)
}

func (s *Scene) AddRoot(n *Node) {
	s.guard("AddRoot")
	Assert(n.Parent == nil, "root %q still has parent %q", n.Name, parentName(n))
	s.Roots = append(s.Roots, n)
	s.index(n)
}

// RemoveRoot removes the first root identical to n. It reports whether one was found.
func (s *Scene) RemoveRoot(n *Node) bool {
	s.guard("RemoveRoot")
	for i, r := range s.Roots {
		if r == n {
			s.Roots = append(s.Roots[:i], s.Roots[i+1:]...)
			s.unindex(n)
			return true
		}
	}
	return false
}

// Remove detaches n from wherever it lives in the tree and drops it from the scene.
func (s *Scene) Remove(n *Node) {
	s.guard("Remove")
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
		n.Attachment = nil
		s.unindex(n)
		return
	}
	s.RemoveRoot(n)
}

// Attach reparents the free root child under carrier. The caller fills child.Attachment.
func (s *Scene) Attach(child, carrier *Node) {
	s.guard("Attach")
	if !s.RemoveRoot(child) {
		Assert(false, "attach: %q is not a scene root", child.Name)
		return
	}
	carrier.AddChild(child)
	s.index(child)
	child.UpdateTransform()
}

// Detach returns a carried node to the scene roots with its saved pose.
func (s *Scene) Detach(child *Node) {
	s.guard("Detach")
	if child.Parent == nil {
		return
	}
	child.Parent.RemoveChild(child)
	if a := child.Attachment; a != nil {
		child.Transform.Translation = a.SavedTranslation
		child.Transform.Rotation = a.SavedRotation
		child.Transform.Scale = a.SavedScale
		child.Attachment = nil
	}
	child.UpdateTransform()
	s.Roots = append(s.Roots, child)
	s.index(child)
}

// Traverse visits every node depth-first. Membership changes are not allowed
// until it returns; queue them on a MutationQueue instead.
func (s *Scene) Traverse(pre, post func(*Node)) {
	s.traversing++
	defer func() { s.traversing-- }()
	for _, r := range s.Roots {
		r.Traverse(pre, post)
	}
}

// Nodes returns a depth-first snapshot of every node.
func (s *Scene) Nodes() []*Node {
	nodes := make([]*Node, 0, len(s.uidMap))
	s.Traverse(func(n *Node) { nodes = append(nodes, n) }, nil)
	return nodes
}

func (s *Scene) FindByUID(uid uint64) *Node {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *Node {
	var found *Node
	s.Traverse(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	}, nil)
	return found
}

// Camera returns the first camera node, or nil.
func (s *Scene) Camera() *Node {
	var found *Node
	s.Traverse(func(n *Node) {
		if found == nil && n.Caps.IsCamera {
			found = n
		}
	}, nil)
	return found
}

func (s *Scene) Triggers() []*Node {
	var result []*Node
	s.Traverse(func(n *Node) {
		if n.Caps.IsTrigger {
			result = append(result, n)
		}
	}, nil)
	return result
}

// UpdateGlobalTransforms caches each node's global transform in Node.Global.
func (s *Scene) UpdateGlobalTransforms() {
	current := rl.MatrixIdentity()
	stack := make([]rl.Matrix, 0, 8)
	s.Traverse(
		func(n *Node) {
			stack = append(stack, current)
			current = rl.MatrixMultiply(n.LocalTransform, current)
			n.Global = current
		},
		func(n *Node) {
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		},
	)
}
