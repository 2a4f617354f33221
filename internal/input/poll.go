package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Poll reads the bound keys and mouse motion from raylib. It needs an open window.
func Poll(b Bindings) Snapshot {
	s := Snapshot{Held: make(map[Key]bool, len(b))}
	for _, k := range b {
		if rl.IsKeyDown(int32(k)) {
			s.Held[k] = true
		}
	}
	s.Pointer = rl.GetMouseDelta()
	return s
}
