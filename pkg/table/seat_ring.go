package table

// NoSeat is returned by searches that find nothing, and marks an unset seat
const NoSeat = -1

// Predicate tests an occupied seat
type Predicate func(p *Player) bool

// Predicates for SeatRing searches
var (
	Occupied  Predicate = func(p *Player) bool { return true }
	SittingIn Predicate = func(p *Player) bool { return p.sittingIn }
	InHand    Predicate = func(p *Player) bool { return p.inHand }
	HasChips  Predicate = func(p *Player) bool { return p.chipsInPlay > 0 }
	CanAct    Predicate = func(p *Player) bool { return p.inHand && p.chipsInPlay > 0 }
)

// SeatRing walks a fixed array of seats in a circle, empty seats are nil
type SeatRing []*Player

// FindNext returns the first seat after offset whose player matches every predicate
// Every seat is checked once and offset itself is checked last. An offset of NoSeat starts at seat 0.
func (r SeatRing) FindNext(offset int, predicates ...Predicate) int {
	n := len(r)
	start := offset
	if start < 0 || start >= n {
		start = n - 1
	}

	for i := 1; i <= n; i++ {
		seat := (start + i) % n
		if r.matches(seat, predicates) {
			return seat
		}
	}

	return NoSeat
}

// FindPrevious is FindNext walking the other way. An offset of NoSeat starts at the last seat.
func (r SeatRing) FindPrevious(offset int, predicates ...Predicate) int {
	n := len(r)
	start := offset
	if start < 0 || start >= n {
		start = 0
	}

	for i := 1; i <= n; i++ {
		seat := ((start-i)%n + n) % n
		if r.matches(seat, predicates) {
			return seat
		}
	}

	return NoSeat
}

// Count returns how many seats match every predicate
func (r SeatRing) Count(predicates ...Predicate) int {
	count := 0
	for seat := range r {
		if r.matches(seat, predicates) {
			count++
		}
	}

	return count
}

func (r SeatRing) matches(seat int, predicates []Predicate) bool {
	p := r[seat]
	if p == nil {
		return false
	}

	for _, predicate := range predicates {
		if !predicate(p) {
			return false
		}
	}

	return true
}
