package table

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/handeval"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// startIfReady starts the first hand once two players are sitting in
func (t *Table) startIfReady() {
	if !t.gameIsOn && t.seats.Count(SittingIn) >= 2 {
		t.startHand()
	}
}

func (t *Table) startHand() {
	for seat, p := range t.seats {
		if p != nil && p.sittingIn && p.chipsInPlay == 0 {
			p.sittingIn = false
			t.logf("%s is out of chips and sits out", p.name)
			t.moveDealerFrom(seat)
		}
	}

	if t.seats.Count(SittingIn) < 2 {
		t.stopGame()
		return
	}

	t.generation++
	t.handNumber++
	t.gameIsOn = true
	t.deck.Shuffle()
	t.pot.Reset()
	t.board = nil
	t.biggestBet = 0
	t.activeSeat = NoSeat
	t.lastSeatToAct = NoSeat

	for _, p := range t.seats {
		if p == nil {
			continue
		}

		if p.sittingIn {
			p.prepareForHand()
		} else {
			p.clearHand()
		}
	}
	t.headsUp = t.seats.Count(InHand) == 2

	if t.dealerSeat == NoSeat {
		t.dealerSeat = t.randomSeat(SittingIn)
	} else {
		t.dealerSeat = t.seats.FindNext(t.dealerSeat, SittingIn)
	}

	if t.dealerSeat == NoSeat {
		t.fail(errNoDealer)
		return
	}

	t.logger.WithFields(logrus.Fields{
		"hand":       t.handNumber,
		"dealerSeat": t.dealerSeat,
		"players":    t.seats.Count(InHand),
		"deck":       t.deck.HashCode(),
	}).Debug("starting hand")
	t.logf("hand #%d, %s has the button", t.handNumber, t.seats[t.dealerSeat].name)

	t.initSmallBlind()
}

// randomSeat returns one of the matching seats at random
func (t *Table) randomSeat(predicates ...Predicate) int {
	var candidates []int
	for seat := range t.seats {
		if t.seats.matches(seat, predicates) {
			candidates = append(candidates, seat)
		}
	}

	if len(candidates) == 0 {
		return NoSeat
	}

	return candidates[t.rng.Intn(len(candidates))]
}

// moveDealerFrom passes a vacated button back to the previous player sitting in
// The next hand then starts with the seat after the vacated one.
func (t *Table) moveDealerFrom(seat int) {
	if t.dealerSeat == seat {
		t.dealerSeat = t.seats.FindPrevious(seat, SittingIn)
	}
}

func (t *Table) initSmallBlind() {
	t.phase = PhaseSmallBlind
	if t.headsUp {
		t.activeSeat = t.dealerSeat
	} else {
		t.activeSeat = t.seats.FindNext(t.dealerSeat, CanAct)
	}

	t.prompt(PromptPostSmallBlind)
}

func (t *Table) initPreflop(bigBlindSeat int) {
	t.phase = PhasePreflop

	seat := t.seats.FindNext(bigBlindSeat, InHand)
	for i, n := 0, t.seats.Count(InHand); i < n; i++ {
		p := t.seats[seat]
		p.holeCards = t.deck.Deal(2)
		t.emit(HoleCards{Seat: seat, PlayerID: p.ID, Cards: p.HoleCards()})
		seat = t.seats.FindNext(seat, InHand)
	}

	if CanAct(t.seats[bigBlindSeat]) {
		t.lastSeatToAct = bigBlindSeat
	} else {
		t.lastSeatToAct = t.seats.FindPrevious(bigBlindSeat, CanAct)
	}

	t.activeSeat = bigBlindSeat
	t.actionToNextPlayer()
}

// actionToNextPlayer moves the action to the next player that can act and prompts them
func (t *Table) actionToNextPlayer() {
	next := t.seats.FindNext(t.activeSeat, CanAct)
	if next == NoSeat {
		if t.phase.isBlinds() {
			t.fail(errors.Errorf("nobody can post the %s", t.phase))
			return
		}

		t.endPhase()
		return
	}

	t.activeSeat = next
	switch t.phase {
	case PhaseSmallBlind:
		t.prompt(PromptPostSmallBlind)
		return
	case PhaseBigBlind:
		t.prompt(PromptPostBigBlind)
		return
	}

	p := t.seats[next]
	othersAllIn := t.othersAllIn(next)
	if othersAllIn && p.currentBet >= t.biggestBet {
		// nobody is left to bet against
		t.endPhase()
		return
	}

	switch {
	case othersAllIn:
		t.prompt(PromptActFacingAllIn)
	case t.biggestBet > 0:
		t.prompt(PromptActFacingBet)
	default:
		t.prompt(PromptActNoBet)
	}
}

func (t *Table) prompt(kind PromptKind) {
	t.generation++

	p := t.seats[t.activeSeat]
	t.emit(Prompt{Seat: t.activeSeat, PlayerID: p.ID, Kind: kind})

	if t.options.ActionTimeout > 0 {
		t.schedule(TaskActionTimeout, t.activeSeat, t.options.ActionTimeout)
	}
}

// othersAllIn returns true if no other player in the hand has chips behind
func (t *Table) othersAllIn(seat int) bool {
	for i, p := range t.seats {
		if i != seat && p != nil && p.inHand && p.chipsInPlay > 0 {
			return false
		}
	}

	return true
}

func (t *Table) afterAction(seat int) {
	if seat == t.lastSeatToAct {
		t.endPhase()
		return
	}

	t.actionToNextPlayer()
}

func (t *Table) afterCall(seat int) {
	if seat == t.lastSeatToAct || t.othersAllIn(seat) {
		t.endPhase()
		return
	}

	t.actionToNextPlayer()
}

// reopenAction gives everyone else a chance to respond to a bet or raise from seat
func (t *Table) reopenAction(seat int) {
	last := t.seats.FindPrevious(seat, CanAct)
	if last == NoSeat || last == seat {
		t.endPhase()
		return
	}

	t.lastSeatToAct = last
	t.actionToNextPlayer()
}

func (t *Table) fold(seat int) {
	p := t.seats[seat]
	p.fold()
	t.pot.RemovePlayer(seat)
	t.logf("%s folds", p.name)

	if t.seats.Count(InHand) < 2 {
		t.foldOut()
		return
	}

	t.afterAction(seat)
}

// sitOut takes a player out of future hands and folds them out of this one
func (t *Table) sitOut(seat int) {
	p := t.seats[seat]
	wasInHand := p.inHand
	wasActive, wasLast := seat == t.activeSeat, seat == t.lastSeatToAct

	p.sittingIn = false
	if wasInHand {
		p.fold()
		t.pot.RemovePlayer(seat)
	}
	t.logf("%s sits out", p.name)
	t.moveDealerFrom(seat)

	t.departed(seat, wasInHand, wasActive, wasLast)
}

// departed keeps the hand going after a player left it without acting
func (t *Table) departed(seat int, wasInHand, wasActive, wasLast bool) {
	if !t.phase.handInProgress() {
		if t.gameIsOn && t.seats.Count(SittingIn) < 2 {
			t.stopGame()
		}
		return
	}

	if !wasInHand {
		return
	}

	if t.seats.Count(InHand) < 2 {
		t.foldOut()
		return
	}

	if wasActive {
		if wasLast {
			t.endPhase()
		} else {
			t.actionToNextPlayer()
		}
		return
	}

	if wasLast {
		t.lastSeatToAct = t.seats.FindPrevious(seat, CanAct)
	}
}

func (t *Table) endPhase() {
	switch t.phase {
	case PhasePreflop, PhaseFlop, PhaseTurn:
		t.initNextPhase()
	case PhaseRiver:
		t.showdown()
	default:
		t.fail(errors.Errorf("cannot end the %s phase", t.phase))
	}
}

func (t *Table) initNextPhase() {
	t.pot.AddTableBets(t.potSeats())
	t.biggestBet = 0

	switch t.phase {
	case PhasePreflop:
		t.phase = PhaseFlop
		t.board = append(t.board, t.deck.Deal(3)...)
	case PhaseFlop:
		t.phase = PhaseTurn
		t.board = append(t.board, t.deck.Deal(1)...)
	case PhaseTurn:
		t.phase = PhaseRiver
		t.board = append(t.board, t.deck.Deal(1)...)
	}
	t.logf("%s: %s", t.phase, symbols(t.board))

	if t.seats.Count(CanAct) < 2 {
		t.activeSeat = NoSeat
		t.lastSeatToAct = NoSeat
		t.endPhase()
		return
	}

	t.activeSeat = t.seats.FindNext(t.dealerSeat, CanAct)
	t.lastSeatToAct = t.seats.FindPrevious(t.activeSeat, CanAct)
	t.prompt(PromptActNoBet)
}

func (t *Table) showdown() {
	t.pot.AddTableBets(t.potSeats())
	t.phase = PhaseShowdown
	t.activeSeat = NoSeat
	t.lastSeatToAct = NoSeat
	t.biggestBet = 0

	first := t.seats.FindNext(t.dealerSeat, InHand)
	best := -1
	seat := first
	for i, n := 0, t.seats.Count(InHand); i < n; i++ {
		p := t.seats[seat]
		hand, err := handeval.Evaluate(append(p.HoleCards(), t.board...))
		if err != nil {
			t.fail(errors.Wrapf(err, "could not evaluate seat %d", seat))
			return
		}

		p.evaluatedHand = &hand
		if hand.Rating >= best {
			best = hand.Rating
			p.revealed = true
			t.logf("%s shows %s, %s", p.name, symbols(p.holeCards), hand.Name())
		}

		seat = t.seats.FindNext(seat, InHand)
	}

	for _, msg := range t.pot.DistributeToWinners(t.potSeats(), first) {
		t.logf("%s", msg)
	}

	t.generation++
	t.schedule(TaskNextHand, NoSeat, t.options.ShowdownDelay)
}

// foldOut gives the pot to the last player standing
func (t *Table) foldOut() {
	t.pot.AddTableBets(t.potSeats())

	winner, ok := t.pot.SoleContender()
	if p := t.Player(winner); !ok || p == nil || !p.inHand {
		winner = t.seats.FindNext(NoSeat, InHand)
	}

	if t.pot.Total() > 0 {
		for _, msg := range t.pot.GiveToWinner(t.potSeats(), winner) {
			t.logf("%s", msg)
		}
	} else {
		t.pot.Reset()
	}

	t.endRound()
}

// endRound deals the next hand or stops the game if there are not enough players
func (t *Table) endRound() {
	t.activeSeat = NoSeat
	t.lastSeatToAct = NoSeat
	t.biggestBet = 0

	if t.seats.Count(SittingIn) < 2 {
		t.stopGame()
		return
	}

	t.startHand()
}

func (t *Table) stopGame() {
	t.generation++
	t.phase = PhaseIdle
	t.gameIsOn = false
	t.headsUp = false
	t.activeSeat = NoSeat
	t.lastSeatToAct = NoSeat
	t.biggestBet = 0
	t.board = nil
	t.pot.Reset()

	for _, p := range t.seats {
		if p != nil {
			// uncollected bets go back to their owners
			p.chipsInPlay += p.currentBet
			p.clearHand()
		}
	}

	t.logf("waiting for players")
	t.emit(GameStopped{State: t.PublicState()})
}

func symbols(cards []deck.Card) string {
	s := ""
	for i, card := range cards {
		if i > 0 {
			s += " "
		}
		s += card.Symbol()
	}

	return s
}
