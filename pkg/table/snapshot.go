package table

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/pot"
)

// PublicState is what everyone at the table is allowed to see
type PublicState struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Seats      int         `json:"seatsCount"`
	SmallBlind int         `json:"smallBlind"`
	BigBlind   int         `json:"bigBlind"`
	MinBuyIn   int         `json:"minBuyIn"`
	MaxBuyIn   int         `json:"maxBuyIn"`
	Phase      Phase       `json:"phase"`
	HandNumber int         `json:"handNumber"`
	ActiveSeat *int        `json:"activeSeat"`
	DealerSeat *int        `json:"dealerSeat"`
	BiggestBet int         `json:"biggestBet"`
	Board      []deck.Card `json:"board"`
	Pot        pot.Buckets `json:"pot"`
	GameIsOn   bool        `json:"gameIsOn"`
	HeadsUp    bool        `json:"headsUp"`

	PlayersSeatedCount    int `json:"playersSeatedCount"`
	PlayersSittingInCount int `json:"playersSittingInCount"`
	PlayersInHandCount    int `json:"playersInHandCount"`

	SeatStates []*SeatState `json:"seats"`
	Log        []LogMessage `json:"log"`
}

// SeatState is the public view of a seated player
type SeatState struct {
	PlayerID    int64       `json:"playerId"`
	Name        string      `json:"name"`
	ChipsInPlay int         `json:"chipsInPlay"`
	Bet         int         `json:"bet"`
	SittingIn   bool        `json:"sittingIn"`
	InHand      bool        `json:"inHand"`
	HasCards    bool        `json:"hasCards"`
	Cards       []deck.Card `json:"cards,omitempty"`
	Hand        string      `json:"hand,omitempty"`
}

// PublicState returns a copy of the public state
func (t *Table) PublicState() PublicState {
	board := make([]deck.Card, len(t.board))
	copy(board, t.board)

	log := make([]LogMessage, len(t.log))
	copy(log, t.log)

	state := PublicState{
		ID:         t.id,
		Name:       t.name,
		Seats:      t.options.Seats,
		SmallBlind: t.options.SmallBlind,
		BigBlind:   t.options.BigBlind,
		MinBuyIn:   t.options.MinBuyIn,
		MaxBuyIn:   t.options.MaxBuyIn,
		Phase:      t.phase,
		HandNumber: t.handNumber,
		ActiveSeat: seatPointer(t.activeSeat),
		DealerSeat: seatPointer(t.dealerSeat),
		BiggestBet: t.biggestBet,
		Board:      board,
		Pot:        t.pot.Buckets(),
		GameIsOn:   t.gameIsOn,
		HeadsUp:    t.headsUp,

		PlayersSeatedCount:    t.seats.Count(Occupied),
		PlayersSittingInCount: t.seats.Count(SittingIn),
		PlayersInHandCount:    t.seats.Count(InHand),

		SeatStates: make([]*SeatState, len(t.seats)),
		Log:        log,
	}

	for seat, p := range t.seats {
		if p == nil {
			continue
		}

		s := &SeatState{
			PlayerID:    p.ID,
			Name:        p.name,
			ChipsInPlay: p.chipsInPlay,
			Bet:         p.currentBet,
			SittingIn:   p.sittingIn,
			InHand:      p.inHand,
			HasCards:    len(p.holeCards) > 0,
		}

		if p.revealed {
			s.Cards = p.HoleCards()
			s.Hand = p.HandName()
		}

		state.SeatStates[seat] = s
	}

	return state
}

// HoleCardsOf returns the private cards of a player, used to catch up a reconnecting client
func (t *Table) HoleCardsOf(playerID int64) (int, []deck.Card) {
	seat := t.SeatOf(playerID)
	if seat == NoSeat {
		return NoSeat, nil
	}

	return seat, t.seats[seat].HoleCards()
}

func seatPointer(seat int) *int {
	if seat == NoSeat {
		return nil
	}

	return &seat
}
