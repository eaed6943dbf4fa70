package table

import (
	"encoding/json"
	"holdem-server/pkg/deck"
	"time"

	"github.com/google/uuid"
)

// Effect is something the owner of the table must do after a command succeeds
// Effects are returned in the order they happened.
type Effect interface {
	effect()
}

// Snapshot is the public state to broadcast to everyone at the table
type Snapshot struct {
	State PublicState
}

// HoleCards must be sent privately to one player
type HoleCards struct {
	Seat     int
	PlayerID int64
	Cards    []deck.Card
}

// Prompt asks one player to act
type Prompt struct {
	Seat     int
	PlayerID int64
	Kind     PromptKind
}

// GameStopped is broadcast when the table goes idle for lack of players
type GameStopped struct {
	State PublicState
}

// Log carries the hand messages produced by a command
type Log struct {
	Messages []LogMessage
}

// CashOut returns chips to a player's bankroll after they leave their seat
type CashOut struct {
	PlayerID int64
	Chips    int
}

// Schedule asks for RunTask(Task) to be called once Task.After has passed
type Schedule struct {
	Task Task
}

func (Snapshot) effect()    {}
func (HoleCards) effect()   {}
func (Prompt) effect()      {}
func (GameStopped) effect() {}
func (Log) effect()         {}
func (CashOut) effect()     {}
func (Schedule) effect()    {}

// PromptKind is the decision a prompted player is facing
type PromptKind int

// Constants for PromptKind
const (
	PromptPostSmallBlind PromptKind = iota
	PromptPostBigBlind
	PromptActNoBet
	PromptActFacingBet
	PromptActFacingAllIn
)

func (p PromptKind) String() string {
	switch p {
	case PromptPostSmallBlind:
		return "post-small-blind"
	case PromptPostBigBlind:
		return "post-big-blind"
	case PromptActNoBet:
		return "act-no-bet"
	case PromptActFacingBet:
		return "act-facing-bet"
	case PromptActFacingAllIn:
		return "act-facing-allin"
	}

	return "unknown"
}

// MarshalJSON encodes the kind as its name
func (p PromptKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// LogMessage is a line of hand history
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func newLogMessage(message string) LogMessage {
	return LogMessage{
		UUID:    uuid.New().String(),
		Message: message,
		Time:    time.Now(),
	}
}
