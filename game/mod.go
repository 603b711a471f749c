package game

import "golf/geometry"

// Shot is the command played each turn: how far to hit and in which direction
// (radians, x right, y up).
type Shot struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
}

// Turn is what the host tells the agent before a stroke. The Previous fields
// are nil on the first turn of a game.
type Turn struct {
	Score              int              `json:"score"`
	Course             []geometry.Point `json:"course"`
	Target             geometry.Point   `json:"target"`
	Current            geometry.Point   `json:"current"`
	Previous           *geometry.Point  `json:"previous,omitempty"`
	PreviousLanding    *geometry.Point  `json:"previous_landing,omitempty"`
	PreviousAdmissible *bool            `json:"previous_admissible,omitempty"`
}

func (t Turn) IsFirst() bool {
	return t.Previous == nil
}

// WasReset reports whether the previous stroke left the course, in which case
// the ball was returned to its last safe position.
func (t Turn) WasReset() bool {
	return t.PreviousAdmissible != nil && !*t.PreviousAdmissible
}
