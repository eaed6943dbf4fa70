package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ring(seats int, players map[int]*Player) SeatRing {
	r := make(SeatRing, seats)
	for seat, p := range players {
		r[seat] = p
	}

	return r
}

func TestSeatRing_FindNext(t *testing.T) {
	a := assert.New(t)

	in := &Player{inHand: true, sittingIn: true, chipsInPlay: 10}
	out := &Player{sittingIn: true, chipsInPlay: 10}
	allIn := &Player{inHand: true, sittingIn: true}

	r := ring(6, map[int]*Player{1: in, 3: out, 4: allIn, 5: in})

	a.Equal(1, r.FindNext(NoSeat))
	a.Equal(3, r.FindNext(1))
	a.Equal(5, r.FindNext(1, CanAct))
	a.Equal(1, r.FindNext(5, CanAct), "wraps around")
	a.Equal(4, r.FindNext(1, InHand, func(p *Player) bool { return p.chipsInPlay == 0 }))
	a.Equal(3, r.FindNext(4, func(p *Player) bool { return !p.inHand }), "wraps past the last seat")
	a.Equal(NoSeat, r.FindNext(0, func(p *Player) bool { return false }))

	// the offset itself is checked last
	only := ring(4, map[int]*Player{2: in})
	a.Equal(2, only.FindNext(2, CanAct))
	a.Equal(2, only.FindPrevious(2, CanAct))
}

func TestSeatRing_FindPrevious(t *testing.T) {
	a := assert.New(t)

	in := &Player{inHand: true, sittingIn: true, chipsInPlay: 10}
	out := &Player{sittingIn: true, chipsInPlay: 10}

	r := ring(6, map[int]*Player{0: in, 2: out, 4: in})

	a.Equal(4, r.FindPrevious(NoSeat))
	a.Equal(2, r.FindPrevious(4))
	a.Equal(0, r.FindPrevious(4, InHand))
	a.Equal(4, r.FindPrevious(0, InHand), "wraps around")
	a.Equal(NoSeat, r.FindPrevious(3, InHand, func(p *Player) bool { return p.chipsInPlay > 10 }))
}

func TestSeatRing_VisitsEachSeatOnce(t *testing.T) {
	a := assert.New(t)

	p := &Player{inHand: true, sittingIn: true, chipsInPlay: 10}
	r := ring(10, map[int]*Player{1: p, 2: p, 5: p, 9: p})

	for _, find := range []func(int, ...Predicate) int{r.FindNext, r.FindPrevious} {
		seen := make(map[int]int)
		seat := find(NoSeat, InHand)
		for i := 0; i < r.Count(InHand); i++ {
			seen[seat]++
			seat = find(seat, InHand)
		}

		a.Equal(map[int]int{1: 1, 2: 1, 5: 1, 9: 1}, seen)
	}

	a.Equal(4, r.Count(Occupied))
	a.Equal(0, ring(3, nil).Count(Occupied))
	a.Equal(NoSeat, ring(3, nil).FindNext(NoSeat))
}
