package table

import (
	"fmt"
	"math"
)

// ParseAmount converts a wire amount into chips
func ParseAmount(value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) || value <= 0 || value > math.MaxInt32 {
		return 0, ErrInvalidAmount
	}

	return int(value), nil
}

// Join seats a player with buyIn chips, the player is sitting in
func (t *Table) Join(seat int, playerID int64, name string, buyIn int) ([]Effect, error) {
	return t.apply(func() error {
		if seat < 0 || seat >= len(t.seats) {
			return ErrSeatOutOfRange
		}

		if t.seats[seat] != nil {
			return ErrSeatTaken
		}

		if t.SeatOf(playerID) != NoSeat {
			return ErrAlreadySeated
		}

		if buyIn < t.options.MinBuyIn || buyIn > t.options.MaxBuyIn {
			return UserError(fmt.Sprintf("the buy-in must be between %d and %d", t.options.MinBuyIn, t.options.MaxBuyIn))
		}

		p := newPlayer(playerID, name, buyIn)
		p.sittingIn = true
		t.seats[seat] = p
		t.logf("%s sits down with %d", name, buyIn)

		t.startIfReady()
		return nil
	})
}

// Leave vacates the seat, the player's chips are returned through a CashOut effect
func (t *Table) Leave(seat int) ([]Effect, error) {
	return t.apply(func() error {
		p := t.Player(seat)
		if p == nil {
			return ErrNotSeated
		}

		t.logf("%s leaves the table", p.name)

		// whatever was bet this round stays in the pot, matched layer by layer like a fold
		t.pot.AddDeadMoney(seat, p.currentBet)
		p.currentBet = 0

		wasInHand := p.inHand
		wasActive, wasLast := seat == t.activeSeat, seat == t.lastSeatToAct
		if wasInHand {
			p.fold()
			t.pot.RemovePlayer(seat)
		}
		p.sittingIn = false
		t.seats[seat] = nil
		t.moveDealerFrom(seat)

		t.emit(CashOut{PlayerID: p.ID, Chips: p.chipsInPlay})
		t.departed(seat, wasInHand, wasActive, wasLast)
		return nil
	})
}

// SitIn deals the player into hands again
func (t *Table) SitIn(seat int) ([]Effect, error) {
	return t.apply(func() error {
		p := t.Player(seat)
		if p == nil {
			return ErrNotSeated
		}

		if p.sittingIn {
			return ErrAlreadySittingIn
		}

		if p.chipsInPlay <= 0 {
			return ErrNoChips
		}

		p.sittingIn = true
		t.logf("%s sits in", p.name)

		t.startIfReady()
		return nil
	})
}

// SitOut stops dealing the player into hands, a hand in progress is folded
func (t *Table) SitOut(seat int) ([]Effect, error) {
	return t.apply(func() error {
		p := t.Player(seat)
		if p == nil {
			return ErrNotSeated
		}

		if !p.sittingIn {
			return ErrAlreadySittingOut
		}

		t.sitOut(seat)
		return nil
	})
}

// PostBlind posts the blind the player was prompted for, refusing sits the player out
func (t *Table) PostBlind(seat int, accepted bool) ([]Effect, error) {
	return t.apply(func() error {
		if err := t.checkTurn(seat); err != nil {
			return err
		}

		if !t.phase.isBlinds() {
			return ErrNoBlindToPost
		}

		if !accepted {
			t.sitOut(seat)
			return nil
		}

		p := t.seats[seat]
		if t.phase == PhaseSmallBlind {
			amount := p.bet(t.options.SmallBlind)
			t.biggestBet = max(t.biggestBet, p.currentBet)
			t.logf("%s posts the small blind (%d)", p.name, amount)

			t.phase = PhaseBigBlind
			t.actionToNextPlayer()
			return nil
		}

		amount := p.bet(t.options.BigBlind)
		t.biggestBet = max(t.biggestBet, p.currentBet)
		t.logf("%s posts the big blind (%d)", p.name, amount)

		t.initPreflop(seat)
		return nil
	})
}

// Check passes the action without betting
func (t *Table) Check(seat int) ([]Effect, error) {
	return t.apply(func() error {
		if err := t.checkBettingTurn(seat); err != nil {
			return err
		}

		p := t.seats[seat]
		if p.currentBet != t.biggestBet {
			return ErrCannotCheck
		}

		t.logf("%s checks", p.name)
		t.afterAction(seat)
		return nil
	})
}

// Fold gives up the hand
func (t *Table) Fold(seat int) ([]Effect, error) {
	return t.apply(func() error {
		if err := t.checkBettingTurn(seat); err != nil {
			return err
		}

		t.fold(seat)
		return nil
	})
}

// Call matches the biggest bet, or goes all-in trying
func (t *Table) Call(seat int) ([]Effect, error) {
	return t.apply(func() error {
		if err := t.checkBettingTurn(seat); err != nil {
			return err
		}

		if t.biggestBet <= 0 {
			return ErrNothingToCall
		}

		p := t.seats[seat]
		amount := p.bet(t.biggestBet - p.currentBet)
		if p.AllIn() {
			t.logf("%s calls all-in (%d)", p.name, amount)
		} else {
			t.logf("%s calls (%d)", p.name, amount)
		}

		t.afterCall(seat)
		return nil
	})
}

// Bet opens the betting
func (t *Table) Bet(seat int, amount int) ([]Effect, error) {
	return t.apply(func() error {
		if err := t.checkBettingTurn(seat); err != nil {
			return err
		}

		if t.biggestBet != 0 {
			return ErrCannotBet
		}

		if amount <= 0 {
			return ErrInvalidAmount
		}

		p := t.seats[seat]
		amount = p.bet(amount)
		t.biggestBet = max(t.biggestBet, p.currentBet)
		if p.AllIn() {
			t.logf("%s bets all-in (%d)", p.name, amount)
		} else {
			t.logf("%s bets %d", p.name, amount)
		}

		t.reopenAction(seat)
		return nil
	})
}

// Raise raises the player's bet to a total of amount
func (t *Table) Raise(seat int, amount int) ([]Effect, error) {
	return t.apply(func() error {
		if err := t.checkBettingTurn(seat); err != nil {
			return err
		}

		if t.biggestBet <= 0 {
			return ErrCannotRaise
		}

		if t.othersAllIn(seat) {
			return ErrNoOneToRaise
		}

		if amount <= 0 {
			return ErrInvalidAmount
		}

		p := t.seats[seat]
		increment := amount - p.currentBet
		if increment <= 0 {
			return ErrRaiseBelowYourBet
		}

		allIn := increment >= p.chipsInPlay
		if allIn {
			increment = p.chipsInPlay
		}

		if p.currentBet+increment <= t.biggestBet && !allIn {
			return ErrRaiseNotAboveBet
		}

		previous := t.biggestBet
		p.bet(increment)
		if allIn {
			t.logf("%s raises all-in to %d", p.name, p.currentBet)
		} else {
			t.logf("%s raises to %d", p.name, p.currentBet)
		}

		// an all-in that does not beat the bet only calls it
		if p.currentBet <= previous {
			t.afterCall(seat)
			return nil
		}

		t.biggestBet = p.currentBet
		t.reopenAction(seat)
		return nil
	})
}

func (t *Table) checkTurn(seat int) error {
	if t.Player(seat) == nil {
		return ErrNotSeated
	}

	if seat != t.activeSeat {
		return ErrNotYourTurn
	}

	return nil
}

func (t *Table) checkBettingTurn(seat int) error {
	if err := t.checkTurn(seat); err != nil {
		return err
	}

	if !t.phase.isBetting() {
		return ErrNotBettingRound
	}

	return nil
}
