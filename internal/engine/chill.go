package engine

// ChillController is the self-paced mode: each turn ends when the player
// reaches the per-turn cap or the table moves on.
type ChillController struct {
	*roundMachine
}

func NewChillController(roster *Roster, turnCap int) *ChillController {
	m := newRoundMachine(roster, ModeChill)
	m.turnCap = turnCap
	return &ChillController{roundMachine: m}
}

func (c *ChillController) RecordInput(in Input) error {
	if in.Intent == IntentDecrement {
		c.decrement()
		return nil
	}
	return c.record(in)
}
