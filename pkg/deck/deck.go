package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"holdem-server/internal/rng"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Deck is a standard 52 card deck with a deal cursor
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   rng.Generator
}

// New returns a new deck of cards in suit then rank order
// Important! this deck is unshuffled. You must call Shuffle() before dealing a hand
func New(generator rng.Generator) *Deck {
	if generator == nil {
		generator = rng.Crypto{}
	}

	d := &Deck{rng: generator}

	i := 0
	for _, suit := range Suits {
		for rank := Rank(2); rank <= Ace; rank++ {
			d.cards[i] = Card{Rank: rank, Suit: suit}
			i++
		}
	}

	return d
}

// Shuffle resets the cursor and shuffles all 52 cards (Fisher–Yates)
func (d *Deck) Shuffle() {
	d.next = 0
	for j := len(d.cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal returns the next n cards
// If the deck runs out, fewer than n cards are returned
func (d *Deck) Deal(n int) []Card {
	if n <= 0 {
		return []Card{}
	}

	end := d.next + n
	if end > len(d.cards) {
		end = len(d.cards)
	}

	cards := make([]Card, end-d.next)
	copy(cards, d.cards[d.next:end])
	d.next = end

	return cards
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Cards returns a copy of the full deck in its current order
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards[:])
	return cards
}

// HashCode returns a SHA1 hash code of the deck order.
// Logged at the start of every hand so a deal can be audited afterwards
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
