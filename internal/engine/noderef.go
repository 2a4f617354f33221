package engine

// NodeRef is a stable handle to a Node by UID. It resolves to nil once the
// node has left the scene, which lets queued work outlive removals safely.
type NodeRef struct {
	UID uint64 // 0 = none
}

func RefOf(n *Node) NodeRef {
	if n == nil {
		return NodeRef{}
	}
	return NodeRef{UID: n.UID}
}

// Get resolves the reference against scene.
func (r NodeRef) Get(scene *Scene) *Node {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}
