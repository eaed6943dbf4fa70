package table

import "encoding/json"

// Phase is where the table is in the life of a hand
type Phase int

// Constants for Phase, in the order a hand moves through them
const (
	PhaseIdle Phase = iota
	PhaseSmallBlind
	PhaseBigBlind
	PhasePreflop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSmallBlind:
		return "small-blind"
	case PhaseBigBlind:
		return "big-blind"
	case PhasePreflop:
		return "preflop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	}

	return "unknown"
}

// MarshalJSON encodes the phase with its id and name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"id":   int(p),
		"name": p.String(),
	})
}

// isBetting returns true during the streets where players check, bet, call, raise and fold
func (p Phase) isBetting() bool {
	return p >= PhasePreflop && p <= PhaseRiver
}

// isBlinds returns true while blinds are being collected
func (p Phase) isBlinds() bool {
	return p == PhaseSmallBlind || p == PhaseBigBlind
}

// handInProgress returns true from the blinds through the river
func (p Phase) handInProgress() bool {
	return p.isBlinds() || p.isBetting()
}
