package engine

type MutationKind int

const (
	MutationRemove MutationKind = iota
	MutationDetach
	MutationAttach
)

func (k MutationKind) String() string {
	switch k {
	case MutationRemove:
		return "remove"
	case MutationDetach:
		return "detach"
	case MutationAttach:
		return "attach"
	}
	return "unknown"
}

type Mutation struct {
	Kind    MutationKind
	Node    NodeRef
	Carrier NodeRef     // attach only
	Attach  *Attachment // attach only
}

// MutationQueue buffers structural changes requested while the scene is being
// traversed. Apply runs removes, then detaches, then attaches, each group in
// request order.
type MutationQueue struct {
	pending []Mutation
}

func (q *MutationQueue) push(m Mutation) {
	for _, p := range q.pending {
		if p.Kind == m.Kind && p.Node == m.Node {
			return
		}
	}
	q.pending = append(q.pending, m)
}

func (q *MutationQueue) Remove(n *Node) {
	q.push(Mutation{Kind: MutationRemove, Node: RefOf(n)})
}

func (q *MutationQueue) Detach(n *Node) {
	q.push(Mutation{Kind: MutationDetach, Node: RefOf(n)})
}

// Attach queues carrying child on carrier; a is installed on child when applied.
func (q *MutationQueue) Attach(child, carrier *Node, a *Attachment) {
	q.push(Mutation{Kind: MutationAttach, Node: RefOf(child), Carrier: RefOf(carrier), Attach: a})
}

// Pending reports whether n has a queued mutation of the given kind.
func (q *MutationQueue) Pending(n *Node, kind MutationKind) bool {
	ref := RefOf(n)
	for _, p := range q.pending {
		if p.Kind == kind && p.Node == ref {
			return true
		}
	}
	return false
}

// Carrying reports whether an attach onto carrier is queued.
func (q *MutationQueue) Carrying(carrier *Node) bool {
	ref := RefOf(carrier)
	for _, p := range q.pending {
		if p.Kind == MutationAttach && p.Carrier == ref {
			return true
		}
	}
	return false
}

func (q *MutationQueue) Len() int {
	return len(q.pending)
}

// Apply performs the queued mutations on scene and empties the queue.
// Requests whose nodes have already left the scene are dropped. It returns
// the mutations that were applied.
func (q *MutationQueue) Apply(scene *Scene) []Mutation {
	var applied []Mutation
	for _, kind := range []MutationKind{MutationRemove, MutationDetach, MutationAttach} {
		for _, m := range q.pending {
			if m.Kind != kind {
				continue
			}
			n := m.Node.Get(scene)
			if n == nil {
				continue
			}
			switch kind {
			case MutationRemove:
				scene.Remove(n)
			case MutationDetach:
				if n.Parent == nil {
					continue
				}
				scene.Detach(n)
			case MutationAttach:
				carrier := m.Carrier.Get(scene)
				if carrier == nil || n.Parent != nil {
					continue
				}
				n.Attachment = m.Attach
				scene.Attach(n, carrier)
			}
			applied = append(applied, m)
		}
	}
	q.pending = q.pending[:0]
	return applied
}
