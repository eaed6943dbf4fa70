package table

import (
	"fmt"
	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/pot"

	"github.com/sirupsen/logrus"
)

// logLength is how many hand messages are kept in the public state
const logLength = 20

// cardSource is where the table gets its cards
type cardSource interface {
	Shuffle()
	Deal(n int) []deck.Card
	HashCode() string
}

// Table is a single Texas Hold'em table
// A Table is not safe for concurrent use, its owner serializes every call.
type Table struct {
	id      string
	name    string
	options Options
	logger  logrus.FieldLogger
	rng     rng.Generator

	deck  cardSource
	pot   *pot.Pot
	seats SeatRing

	phase         Phase
	activeSeat    int
	dealerSeat    int
	lastSeatToAct int
	biggestBet    int
	board         []deck.Card
	gameIsOn      bool
	headsUp       bool
	handNumber    int
	generation    uint64

	log []LogMessage

	// effects and messages collect the output of the command in progress
	effects  []Effect
	messages []LogMessage
}

// New returns an idle table
func New(id, name string, opts Options, logger logrus.FieldLogger, generator rng.Generator) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if generator == nil {
		generator = rng.Crypto{}
	}

	return &Table{
		id:            id,
		name:          name,
		options:       opts,
		logger:        logger,
		rng:           generator,
		deck:          deck.New(generator),
		pot:           pot.New(),
		seats:         make(SeatRing, opts.Seats),
		activeSeat:    NoSeat,
		dealerSeat:    NoSeat,
		lastSeatToAct: NoSeat,
	}, nil
}

// ID returns the table ID
func (t *Table) ID() string {
	return t.id
}

// Name returns the display name
func (t *Table) Name() string {
	return t.name
}

// Options returns the options the table was created with
func (t *Table) Options() Options {
	return t.options
}

// Phase returns the current phase
func (t *Table) Phase() Phase {
	return t.phase
}

// ActiveSeat returns the seat that must act, or NoSeat
func (t *Table) ActiveSeat() int {
	return t.activeSeat
}

// DealerSeat returns the seat with the dealer button, or NoSeat
func (t *Table) DealerSeat() int {
	return t.dealerSeat
}

// GameIsOn returns true while hands are being dealt
func (t *Table) GameIsOn() bool {
	return t.gameIsOn
}

// Player returns the player in seat, or nil
func (t *Table) Player(seat int) *Player {
	if seat < 0 || seat >= len(t.seats) {
		return nil
	}

	return t.seats[seat]
}

// SeatOf returns the seat of the player, or NoSeat
func (t *Table) SeatOf(playerID int64) int {
	for seat, p := range t.seats {
		if p != nil && p.ID == playerID {
			return seat
		}
	}

	return NoSeat
}

// apply runs a command and collects its effects
// A command that fails leaves no effects behind. A command that succeeds ends with a snapshot.
func (t *Table) apply(fn func() error) ([]Effect, error) {
	t.effects = nil
	t.messages = nil

	if err := fn(); err != nil {
		t.effects = nil
		t.messages = nil
		return nil, err
	}

	if len(t.messages) > 0 {
		t.emit(Log{Messages: t.messages})
	}
	t.emit(Snapshot{State: t.PublicState()})

	effects := t.effects
	t.effects = nil
	t.messages = nil
	return effects, nil
}

func (t *Table) emit(effect Effect) {
	t.effects = append(t.effects, effect)
}

// logf records a line of hand history
func (t *Table) logf(format string, a ...interface{}) {
	msg := newLogMessage(fmt.Sprintf(format, a...))
	t.messages = append(t.messages, msg)

	t.log = append(t.log, msg)
	if len(t.log) > logLength {
		t.log = t.log[len(t.log)-logLength:]
	}
}

// potSeats returns the seats as the pot sees them, an empty seat must be a nil interface
func (t *Table) potSeats() []pot.Seat {
	seats := make([]pot.Seat, len(t.seats))
	for i, p := range t.seats {
		if p != nil {
			seats[i] = p
		}
	}

	return seats
}

// fail stops the game after an internal invariant is broken
// Bets of the hand are returned to the players still seated.
func (t *Table) fail(err error) {
	t.logger.WithError(err).WithFields(logrus.Fields{
		"phase":      t.phase.String(),
		"hand":       t.handNumber,
		"activeSeat": t.activeSeat,
		"dealerSeat": t.dealerSeat,
	}).Error("table invariant violated, stopping the game")

	// once the pot is paid out at showdown there is nothing left to return
	if t.phase.handInProgress() {
		for _, p := range t.seats {
			if p != nil && p.committed > 0 {
				p.chipsInPlay += p.committed
				p.currentBet = 0
				p.committed = 0
			}
		}
		t.pot.Reset()
		t.logf("the hand was cancelled and bets were returned")
	}

	t.stopGame()
}

// Abort cancels the hand in progress and stops the game
// It is used by the owner of the table after a command failed in a way the table could not handle.
func (t *Table) Abort(err error) []Effect {
	effects, _ := t.apply(func() error {
		t.fail(err)
		return nil
	})

	return effects
}
