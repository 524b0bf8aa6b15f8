package engine

// BlitzController is the timed mode: a turn lasts turnSeconds ticks and every
// tap before the countdown hits zero scores. Scores accumulate across rounds.
type BlitzController struct {
	*roundMachine
}

func NewBlitzController(roster *Roster, turnSeconds int) *BlitzController {
	m := newRoundMachine(roster, ModeBlitz)
	m.turnSeconds = turnSeconds
	m.remaining = turnSeconds
	m.carryScores = true
	return &BlitzController{roundMachine: m}
}

func (c *BlitzController) RecordInput(in Input) error {
	return c.record(in)
}
