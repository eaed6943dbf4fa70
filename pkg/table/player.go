package table

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/handeval"
)

// Player is a seated player
type Player struct {
	ID   int64
	name string

	chipsInPlay int
	currentBet  int
	// committed is everything put in the pot this hand, only used to refund a hand that had to be abandoned
	committed int

	holeCards     []deck.Card
	sittingIn     bool
	inHand        bool
	evaluatedHand *handeval.Hand
	revealed      bool
}

func newPlayer(id int64, name string, chips int) *Player {
	return &Player{
		ID:          id,
		name:        name,
		chipsInPlay: chips,
	}
}

// Name returns the display name
func (p *Player) Name() string {
	return p.name
}

// ChipsInPlay returns the chips in front of the player, not counting the current bet
func (p *Player) ChipsInPlay() int {
	return p.chipsInPlay
}

// CurrentBet returns the amount wagered in the current betting round
func (p *Player) CurrentBet() int {
	return p.currentBet
}

// SittingIn returns true if the player is dealt into new hands
func (p *Player) SittingIn() bool {
	return p.sittingIn
}

// InHand returns true if the player is still contesting the current hand
func (p *Player) InHand() bool {
	return p.inHand
}

// HoleCards returns a copy of the player's private cards
func (p *Player) HoleCards() []deck.Card {
	if len(p.holeCards) == 0 {
		return nil
	}

	cards := make([]deck.Card, len(p.holeCards))
	copy(cards, p.holeCards)
	return cards
}

// bet moves up to amount from the stack into the current bet and returns what was moved
func (p *Player) bet(amount int) int {
	amount = min(amount, p.chipsInPlay)
	if amount <= 0 {
		return 0
	}

	p.chipsInPlay -= amount
	p.currentBet += amount
	p.committed += amount
	return amount
}

// prepareForHand deals the player into a new hand
func (p *Player) prepareForHand() {
	p.clearHand()
	p.inHand = true
}

// clearHand forgets everything about the previous hand
func (p *Player) clearHand() {
	p.inHand = false
	p.currentBet = 0
	p.committed = 0
	p.holeCards = nil
	p.evaluatedHand = nil
	p.revealed = false
}

// fold takes the player out of the hand, whatever they have bet stays on the table
func (p *Player) fold() {
	p.inHand = false
	p.holeCards = nil
	p.evaluatedHand = nil
}

// Bet implements pot.Seat
func (p *Player) Bet() int {
	return p.currentBet
}

// TakeBet implements pot.Seat
func (p *Player) TakeBet(amount int) {
	p.currentBet -= amount
}

// AllIn implements pot.Seat
func (p *Player) AllIn() bool {
	return p.chipsInPlay == 0
}

// Rating implements pot.Seat
func (p *Player) Rating() int {
	if p.evaluatedHand == nil {
		return 0
	}

	return p.evaluatedHand.Rating
}

// Award implements pot.Seat
func (p *Player) Award(amount int) {
	p.chipsInPlay += amount
}

// HandName implements pot.Seat
func (p *Player) HandName() string {
	if p.evaluatedHand == nil {
		return "an unknown hand"
	}

	return p.evaluatedHand.Name()
}
