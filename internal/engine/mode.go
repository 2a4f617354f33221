package engine

// GameMode gates the trigger and pick-up rules. Neutral is the opening
// state; non-negative values are the story branches picked by a trigger.
type GameMode int

const ModeNeutral GameMode = -1

// PickUp reports whether carrying, free-fly and view mode are enabled.
func (m GameMode) PickUp() bool {
	return m >= 0
}
