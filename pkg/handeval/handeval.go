package handeval

import (
	"errors"
	"fmt"
	"holdem-server/pkg/deck"
	"sort"
)

// HandSize is the number of cards a showdown hand is evaluated from
const HandSize = 7

// ErrInvalidHand is returned when the cards cannot be evaluated
var ErrInvalidHand = errors.New("a hand must have exactly seven distinct cards")

// Hand is the best five-card hand that can be made from seven cards
type Hand struct {
	Category Category `json:"category"`
	// Cards are ordered high to low the way they are compared (a wheel is 5-4-3-2-A)
	Cards  [5]deck.Card `json:"cards"`
	Rating int          `json:"rating"`
}

// Royal returns true for an ace high straight flush
func (h Hand) Royal() bool {
	return h.Category == StraightFlush && h.Cards[0].Rank == deck.Ace
}

// Name returns a human readable description, i.e., "full house, kings full of aces"
func (h Hand) Name() string {
	top := h.Cards[0].Rank
	switch h.Category {
	case StraightFlush:
		if h.Royal() {
			return "royal flush"
		}
		return "straight flush to " + top.Name()
	case FourOfAKind:
		return "four of a kind, " + top.Plural()
	case FullHouse:
		return fmt.Sprintf("full house, %s full of %s", top.Plural(), h.Cards[3].Rank.Plural())
	case Flush:
		return fmt.Sprintf("flush, %s high", top.Name())
	case Straight:
		return "straight to " + top.Name()
	case ThreeOfAKind:
		return "three of a kind, " + top.Plural()
	case TwoPair:
		return fmt.Sprintf("two pair, %s and %s", top.Plural(), h.Cards[2].Rank.Plural())
	case OnePair:
		return "pair of " + top.Plural()
	}

	return top.Name() + " high"
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 on an exact tie
func Compare(a, b Hand) int {
	switch {
	case a.Rating > b.Rating:
		return 1
	case a.Rating < b.Rating:
		return -1
	}

	return 0
}

// Evaluate returns the best five-card hand from exactly seven distinct cards
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, ErrInvalidHand
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, card := range cards {
		if card.Rank < 2 || card.Rank > deck.Ace || card.Suit < deck.Clubs || card.Suit > deck.Spades || seen[card] {
			return Hand{}, ErrInvalidHand
		}
		seen[card] = true
	}

	a := newAnalyzer(cards)
	category, best := a.bestHand()

	hand := Hand{Category: category}
	copy(hand.Cards[:], best)
	hand.Rating = calculateRating(category, best)

	return hand, nil
}

// analyzer holds the groupings of a sorted hand
type analyzer struct {
	cards  []deck.Card
	bySuit map[deck.Suit][]deck.Card
	quads  []deck.Rank
	trips  []deck.Rank
	pairs  []deck.Rank
}

func newAnalyzer(cards []deck.Card) *analyzer {
	// clone to prevent modifying original
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rank == sorted[j].Rank {
			return sorted[i].Suit > sorted[j].Suit
		}
		return sorted[i].Rank > sorted[j].Rank
	})

	a := &analyzer{
		cards:  sorted,
		bySuit: make(map[deck.Suit][]deck.Card),
	}

	numOfRank := 0
	for i, card := range sorted {
		a.bySuit[card.Suit] = append(a.bySuit[card.Suit], card)

		numOfRank++
		isLastOfRank := i+1 == len(sorted) || sorted[i+1].Rank != card.Rank
		if !isLastOfRank {
			continue
		}

		switch numOfRank {
		case 4:
			a.quads = append(a.quads, card.Rank)
		case 3:
			a.trips = append(a.trips, card.Rank)
		case 2:
			a.pairs = append(a.pairs, card.Rank)
		}
		numOfRank = 0
	}

	return a
}

// bestHand checks each category from the strongest down
func (a *analyzer) bestHand() (Category, []deck.Card) {
	if cards := a.straightFlush(); cards != nil {
		return StraightFlush, cards
	}

	if len(a.quads) > 0 {
		quads := a.ofRank(a.quads[0], 4)
		return FourOfAKind, append(quads, a.kickers(1, a.quads[0])...)
	}

	if cards := a.fullHouse(); cards != nil {
		return FullHouse, cards
	}

	if cards := a.flush(); cards != nil {
		return Flush, cards
	}

	if cards := findStraight(a.cards); cards != nil {
		return Straight, cards
	}

	if len(a.trips) > 0 {
		trips := a.ofRank(a.trips[0], 3)
		return ThreeOfAKind, append(trips, a.kickers(2, a.trips[0])...)
	}

	if len(a.pairs) >= 2 {
		// pairs are found high to low, so a third pair is never used
		high, low := a.pairs[0], a.pairs[1]
		cards := append(a.ofRank(high, 2), a.ofRank(low, 2)...)
		return TwoPair, append(cards, a.kickers(1, high, low)...)
	}

	if len(a.pairs) == 1 {
		pair := a.ofRank(a.pairs[0], 2)
		return OnePair, append(pair, a.kickers(3, a.pairs[0])...)
	}

	return HighCard, a.kickers(5)
}

func (a *analyzer) straightFlush() []deck.Card {
	for _, suit := range deck.Suits {
		if suited := a.bySuit[suit]; len(suited) >= 5 {
			if cards := findStraight(suited); cards != nil {
				return cards
			}
		}
	}

	return nil
}

// fullHouse uses the best trips plus the best of a pair or a second set of trips
func (a *analyzer) fullHouse() []deck.Card {
	if len(a.trips) == 0 {
		return nil
	}

	var pairRank deck.Rank
	if len(a.pairs) > 0 {
		pairRank = a.pairs[0]
	}

	if len(a.trips) >= 2 && a.trips[1] > pairRank {
		pairRank = a.trips[1]
	}

	if pairRank == 0 {
		return nil
	}

	return append(a.ofRank(a.trips[0], 3), a.ofRank(pairRank, 2)...)
}

func (a *analyzer) flush() []deck.Card {
	for _, suit := range deck.Suits {
		if suited := a.bySuit[suit]; len(suited) >= 5 {
			cards := make([]deck.Card, 5)
			copy(cards, suited)
			return cards
		}
	}

	return nil
}

// ofRank returns up to n cards of the rank
func (a *analyzer) ofRank(rank deck.Rank, n int) []deck.Card {
	cards := make([]deck.Card, 0, n)
	for _, card := range a.cards {
		if card.Rank == rank {
			cards = append(cards, card)
			if len(cards) == n {
				break
			}
		}
	}

	return cards
}

// kickers returns the n highest cards that are not of the excluded ranks
func (a *analyzer) kickers(n int, exclude ...deck.Rank) []deck.Card {
	cards := make([]deck.Card, 0, n)

cardLoop:
	for _, card := range a.cards {
		if len(cards) == n {
			break
		}

		for _, rank := range exclude {
			if card.Rank == rank {
				continue cardLoop
			}
		}

		cards = append(cards, card)
	}

	return cards
}

// findStraight returns the highest five card run in cards (sorted high to low)
// A wheel is returned as 5-4-3-2-A
func findStraight(cards []deck.Card) []deck.Card {
	streak := make([]deck.Card, 0, 5)
	for _, card := range cards {
		if len(streak) > 0 {
			last := streak[len(streak)-1].Rank
			if card.Rank == last {
				continue
			}

			if card.Rank != last-1 {
				streak = streak[:0]
			}
		}

		streak = append(streak, card)
		if len(streak) == 5 {
			return streak
		}
	}

	// an ace can finish a 5-4-3-2 run
	if len(streak) == 4 && streak[0].Rank == 5 && cards[0].Rank == deck.Ace {
		return append(streak, cards[0])
	}

	return nil
}

// calculateRating packs the category and the five ranks into base 15
// A wheel's ace counts as one so it ranks below a six high straight
func calculateRating(category Category, cards []deck.Card) int {
	rating := int(category)
	for i, card := range cards {
		rank := card.Rank
		if rank == deck.Ace && i == len(cards)-1 && (category == Straight || category == StraightFlush) {
			rank = deck.LowAce
		}

		rating = rating*15 + int(rank)
	}

	return rating
}
