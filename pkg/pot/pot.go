package pot

import (
	"fmt"
	"sort"
)

// Seat is how the pot sees a seated player
// The index of a Seat in the slices passed to the pot is its seat number; empty seats are nil
type Seat interface {
	// Bet is the amount wagered in the current betting round
	Bet() int
	// TakeBet moves amount out of the current bet and into the pot
	TakeBet(amount int)
	// AllIn returns true if the player has nothing left behind
	AllIn() bool
	// Rating is the strength of the evaluated hand, only read at showdown
	Rating() int
	// Award adds chips won to the player's stack
	Award(amount int)
	Name() string
	HandName() string
}

type bucket struct {
	amount       int
	contributors map[int]bool
	// capped is true once a contributor is all-in for exactly this layer
	capped bool
}

func newBucket() *bucket {
	return &bucket{contributors: make(map[int]bool)}
}

// Pot collects the bets of a hand into a main pot and side pots
type Pot struct {
	buckets []*bucket
	folded  map[int]bool
	// deadBets are the current bets of players that left mid-hand, by the seat they left
	deadBets map[int]int
}

// New returns an empty pot
func New() *Pot {
	p := &Pot{}
	p.Reset()
	return p
}

// Reset empties the pot for a new hand
func (p *Pot) Reset() {
	p.buckets = []*bucket{newBucket()}
	p.folded = make(map[int]bool)
	p.deadBets = make(map[int]int)
}

// openBucket returns the bucket that takes new wagers
func (p *Pot) openBucket() *bucket {
	last := p.buckets[len(p.buckets)-1]
	if !last.capped {
		return last
	}

	b := newBucket()
	p.buckets = append(p.buckets, b)
	return b
}

// wager is one bet being layered into the buckets
type wager struct {
	seat  int
	live  bool
	allIn bool
	bet   int
}

// wagers gathers the bets on the table and the bets left behind by departed players
func (p *Pot) wagers(seats []Seat) []wager {
	wagers := make([]wager, 0, len(seats)+len(p.deadBets))
	for i, s := range seats {
		if s == nil || s.Bet() <= 0 {
			continue
		}

		wagers = append(wagers, wager{seat: i, live: !p.folded[i], allIn: s.AllIn(), bet: s.Bet()})
		s.TakeBet(s.Bet())
	}

	deadSeats := make([]int, 0, len(p.deadBets))
	for seat := range p.deadBets {
		deadSeats = append(deadSeats, seat)
	}
	sort.Ints(deadSeats)

	for _, seat := range deadSeats {
		wagers = append(wagers, wager{seat: seat, bet: p.deadBets[seat]})
	}
	p.deadBets = make(map[int]int)

	return wagers
}

// AddTableBets moves every current bet into the pot
// Each pass takes the smallest live bet as the layer size. A layer that leaves a contributor all-in caps
// its bucket, so whatever is left over is only contested by the players that covered it. Folded and
// departed bets feed each layer up to its size, like any other bet, but never contest it.
func (p *Pot) AddTableBets(seats []Seat) {
	wagers := p.wagers(seats)

	for {
		level := 0
		hasBets := false
		for _, w := range wagers {
			if w.bet <= 0 {
				continue
			}

			hasBets = true
			if w.live && (level == 0 || w.bet < level) {
				level = w.bet
			}
		}

		if !hasBets {
			break
		}

		// Only folded or departed chips are left, more than any live player matched. They cannot open a
		// side pot of their own, so they join the last bucket, even a capped one: it is the pot held by
		// the players that covered the most.
		if level == 0 {
			last := p.buckets[len(p.buckets)-1]
			for i := range wagers {
				last.amount += wagers[i].bet
				wagers[i].bet = 0
			}
			break
		}

		b := p.openBucket()
		for i := range wagers {
			w := &wagers[i]
			if w.bet <= 0 {
				continue
			}

			take := min(w.bet, level)
			w.bet -= take
			b.amount += take

			if !w.live {
				continue
			}

			b.contributors[w.seat] = true
			if w.bet == 0 && w.allIn {
				b.capped = true
			}
		}
	}
}

// AddDeadMoney keeps the current bet of a player that left the seat mid-hand
// It is layered with the next call to AddTableBets exactly like a folded bet.
func (p *Pot) AddDeadMoney(seat, amount int) {
	if amount <= 0 {
		return
	}

	p.folded[seat] = true
	p.deadBets[seat] += amount
}

// RemovePlayer strips the seat from every bucket and from any bucket formed later in the hand
// Chips already wagered stay in the pot
func (p *Pot) RemovePlayer(seat int) {
	p.folded[seat] = true
	for _, b := range p.buckets {
		delete(b.contributors, seat)
	}
}

// SoleContender returns the only seat still contesting the pot, if there is exactly one
func (p *Pot) SoleContender() (int, bool) {
	seats := p.contributors()
	if len(seats) != 1 {
		return 0, false
	}

	return seats[0], true
}

// contributors returns every non-folded seat in any bucket, sorted
func (p *Pot) contributors() []int {
	found := make(map[int]bool)
	for _, b := range p.buckets {
		for seat := range b.contributors {
			if !p.folded[seat] {
				found[seat] = true
			}
		}
	}

	seats := make([]int, 0, len(found))
	for seat := range found {
		seats = append(seats, seat)
	}
	sort.Ints(seats)

	return seats
}

// GiveToWinner awards every bucket to seat without evaluating hands
func (p *Pot) GiveToWinner(seats []Seat, seat int) []string {
	total := p.Total()
	defer p.Reset()

	if seat < 0 || seat >= len(seats) || seats[seat] == nil {
		return []string{fmt.Sprintf("no winner found for the pot (%d)", total)}
	}

	seats[seat].Award(total)
	return []string{fmt.Sprintf("%s wins the pot (%d)", seats[seat].Name(), total)}
}

// DistributeToWinners pays every bucket, innermost side pot first, to its best contending hand(s)
// Ties split evenly and remaining chips go one at a time to the tied seats closest to firstToAct.
// A bucket nobody can contest rolls down into the bucket below it.
func (p *Pot) DistributeToWinners(seats []Seat, firstToAct int) []string {
	defer p.Reset()

	messages := make([]string, 0, len(p.buckets))
	carry := p.deadTotal()

	for i := len(p.buckets) - 1; i >= 0; i-- {
		b := p.buckets[i]
		amount := b.amount + carry
		carry = 0
		if amount == 0 {
			continue
		}

		contenders := p.contendersOf(seats, b.contributors)
		if len(contenders) == 0 {
			if i > 0 {
				carry = amount
				continue
			}

			// nobody left in the main pot, let anyone still in the hand have it
			all := make(map[int]bool)
			for _, seat := range p.contributors() {
				all[seat] = true
			}
			contenders = p.contendersOf(seats, all)
			if len(contenders) == 0 {
				messages = append(messages, fmt.Sprintf("no winner found for the pot (%d)", amount))
				continue
			}
		}

		winners := bestHands(seats, contenders)
		orderFrom(winners, firstToAct, len(seats))

		label := potLabel(i, len(p.buckets))
		share := amount / len(winners)
		remainder := amount % len(winners)
		for j, seat := range winners {
			winnings := share
			if j < remainder {
				winnings++
			}

			seats[seat].Award(winnings)
			if len(winners) == 1 {
				messages = append(messages, fmt.Sprintf("%s wins %s (%d) with %s", seats[seat].Name(), label, winnings, seats[seat].HandName()))
			} else {
				messages = append(messages, fmt.Sprintf("%s ties for %s (%d) with %s", seats[seat].Name(), label, winnings, seats[seat].HandName()))
			}
		}
	}

	return messages
}

func (p *Pot) contendersOf(seats []Seat, contributors map[int]bool) []int {
	contenders := make([]int, 0, len(contributors))
	for seat := range contributors {
		if p.folded[seat] || seat < 0 || seat >= len(seats) || seats[seat] == nil {
			continue
		}

		contenders = append(contenders, seat)
	}
	sort.Ints(contenders)

	return contenders
}

// bestHands returns the seats sharing the highest rating
func bestHands(seats []Seat, contenders []int) []int {
	best := -1
	var winners []int
	for _, seat := range contenders {
		rating := seats[seat].Rating()
		switch {
		case rating > best:
			best = rating
			winners = []int{seat}
		case rating == best:
			winners = append(winners, seat)
		}
	}

	return winners
}

// orderFrom sorts seats by their distance walking the table from start
func orderFrom(seats []int, start, seatsCount int) {
	if seatsCount == 0 {
		return
	}

	distance := func(seat int) int {
		return ((seat-start)%seatsCount + seatsCount) % seatsCount
	}

	sort.Slice(seats, func(i, j int) bool {
		return distance(seats[i]) < distance(seats[j])
	})
}

func potLabel(index, count int) string {
	switch {
	case count == 1:
		return "the pot"
	case index == 0:
		return "the main pot"
	}

	return fmt.Sprintf("side pot %d", index)
}

// Total returns the combined total of all buckets
func (p *Pot) Total() int {
	total := p.deadTotal()
	for _, b := range p.buckets {
		total += b.amount
	}

	return total
}

func (p *Pot) deadTotal() int {
	total := 0
	for _, amount := range p.deadBets {
		total += amount
	}

	return total
}

// Buckets returns a copy of the buckets, main pot first
func (p *Pot) Buckets() Buckets {
	buckets := make(Buckets, 0, len(p.buckets))
	for _, b := range p.buckets {
		contributors := make([]int, 0, len(b.contributors))
		for seat := range b.contributors {
			contributors = append(contributors, seat)
		}
		sort.Ints(contributors)

		buckets = append(buckets, Bucket{
			Amount:       b.amount,
			Contributors: contributors,
		})
	}

	return buckets
}
