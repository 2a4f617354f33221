package engine

// EventWithArg fans a value out to every listener, in the order they were
// added. The scene core signals through it: the camera reports view-mode
// toggles, physics reports the consumed trigger id, and the world state
// reports game mode changes.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener subscribes fn. A nil fn is ignored.
func (e *EventWithArg[T]) AddListener(fn func(T)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// Invoke runs every listener synchronously with arg.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, fn := range e.listeners {
		fn(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int { return len(e.listeners) }

// Event is the payload-free form, used when an interaction release finds
// nothing carried.
type Event struct {
	sig EventWithArg[struct{}]
}

func (e *Event) AddListener(fn func()) {
	if fn != nil {
		e.sig.AddListener(func(struct{}) { fn() })
	}
}

func (e *Event) Invoke() { e.sig.Invoke(struct{}{}) }

func (e *Event) ListenerCount() int { return e.sig.ListenerCount() }
