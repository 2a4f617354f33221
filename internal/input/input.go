package input

import (
	"fmt"
	"sort"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Key is an opaque key identifier. The host uses raylib key codes.
type Key int32

type Action int

const (
	MoveForward Action = iota
	MoveBack
	MoveLeft
	MoveRight
	FlyUp
	FlyDown
	Interact
	ViewMode
)

var actionNames = map[Action]string{
	MoveForward: "forward",
	MoveBack:    "back",
	MoveLeft:    "left",
	MoveRight:   "right",
	FlyUp:       "up",
	FlyDown:     "down",
	Interact:    "interact",
	ViewMode:    "view",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps a config name such as "forward" to its Action.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == strings.ToLower(name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

var keyByName = map[string]Key{
	"w":         rl.KeyW,
	"a":         rl.KeyA,
	"s":         rl.KeyS,
	"d":         rl.KeyD,
	"e":         rl.KeyE,
	"f":         rl.KeyF,
	"m":         rl.KeyM,
	"q":         rl.KeyQ,
	"space":     rl.KeySpace,
	"leftshift": rl.KeyLeftShift,
	"leftctrl":  rl.KeyLeftControl,
	"up":        rl.KeyUp,
	"down":      rl.KeyDown,
	"left":      rl.KeyLeft,
	"right":     rl.KeyRight,
}

// ParseKey maps a config name such as "W" or "LeftShift" to its key code.
func ParseKey(name string) (Key, error) {
	if k, ok := keyByName[strings.ToLower(name)]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// KeyName is the inverse of ParseKey. Codes without a name print as numbers.
func KeyName(k Key) string {
	for n, key := range keyByName {
		if key == k {
			return n
		}
	}
	return fmt.Sprintf("key%d", int32(k))
}

// KeyNames lists the names ParseKey accepts.
func KeyNames() []string {
	names := make([]string, 0, len(keyByName))
	for n := range keyByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bindings maps each action to the key that drives it.
type Bindings map[Action]Key

func DefaultBindings() Bindings {
	return Bindings{
		MoveForward: rl.KeyW,
		MoveBack:    rl.KeyS,
		MoveLeft:    rl.KeyA,
		MoveRight:   rl.KeyD,
		FlyUp:       rl.KeySpace,
		FlyDown:     rl.KeyLeftShift,
		Interact:    rl.KeyE,
		ViewMode:    rl.KeyM,
	}
}

// Snapshot is the input state for one frame.
type Snapshot struct {
	Held    map[Key]bool
	Pointer rl.Vector2 // pointer motion since the previous frame
}

// NewSnapshot builds a snapshot with the given keys held.
func NewSnapshot(keys ...Key) Snapshot {
	s := Snapshot{Held: make(map[Key]bool, len(keys))}
	for _, k := range keys {
		s.Held[k] = true
	}
	return s
}

func (s Snapshot) Down(k Key) bool {
	return s.Held[k]
}

// Down reports whether the key bound to a is held in s.
func (b Bindings) Down(s Snapshot, a Action) bool {
	k, ok := b[a]
	return ok && s.Down(k)
}
