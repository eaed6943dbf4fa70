package table

import "fmt"

// Action is a command a player sends to the table
type Action string

// Constants for Action
const (
	ActionJoin      Action = "join"
	ActionLeave     Action = "leave"
	ActionSitIn     Action = "sitIn"
	ActionSitOut    Action = "sitOut"
	ActionPostBlind Action = "postBlind"
	ActionCheck     Action = "check"
	ActionFold      Action = "fold"
	ActionCall      Action = "call"
	ActionBet       Action = "bet"
	ActionRaise     Action = "raise"
)

var actions = map[Action]bool{
	ActionJoin:      true,
	ActionLeave:     true,
	ActionSitIn:     true,
	ActionSitOut:    true,
	ActionPostBlind: true,
	ActionCheck:     true,
	ActionFold:      true,
	ActionCall:      true,
	ActionBet:       true,
	ActionRaise:     true,
}

// ActionFromString returns the action named s
func ActionFromString(s string) (Action, error) {
	a := Action(s)
	if !actions[a] {
		return "", UserError(fmt.Sprintf("unknown action: %s", s))
	}

	return a, nil
}

// Legal returns the betting actions open to the active player
func (t *Table) Legal(seat int) []Action {
	if seat != t.activeSeat || seat == NoSeat {
		return nil
	}

	if t.phase.isBlinds() {
		return []Action{ActionPostBlind, ActionSitOut}
	}

	if !t.phase.isBetting() {
		return nil
	}

	p := t.seats[seat]
	legal := []Action{ActionFold}
	if p.currentBet == t.biggestBet {
		legal = append(legal, ActionCheck)
	}

	if t.biggestBet > 0 {
		legal = append(legal, ActionCall)
		if !t.othersAllIn(seat) && p.currentBet+p.chipsInPlay > t.biggestBet {
			legal = append(legal, ActionRaise)
		}
	} else {
		legal = append(legal, ActionBet)
	}

	return legal
}
