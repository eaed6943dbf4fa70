package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rank is the rank of a card, 2 through 14 (ace high)
type Rank int

// face cards
const (
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14

	// LowAce is the value an ace takes in a five-high straight
	LowAce Rank = 1
)

// Suit represents a card suit
type Suit int

// suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in deck order
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

const rankChars = "23456789TJQKA"
const suitChars = "cdhs"

// Card is an individual playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the compact form of a card, i.e., As, Td, 2c
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Symbol returns the card with a suit symbol, i.e., A♠
func (c Card) Symbol() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return c.Rank.String() + suit
}

// String returns a single character for the rank
func (r Rank) String() string {
	if r == LowAce {
		return "A"
	}

	if r < 2 || r > Ace {
		return "?"
	}

	return string(rankChars[r-2])
}

// Name returns the english name of the rank, i.e., "king"
func (r Rank) Name() string {
	switch r {
	case 2:
		return "deuce"
	case 3:
		return "three"
	case 4:
		return "four"
	case 5:
		return "five"
	case 6:
		return "six"
	case 7:
		return "seven"
	case 8:
		return "eight"
	case 9:
		return "nine"
	case Ten:
		return "ten"
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Ace, LowAce:
		return "ace"
	}

	return "unknown"
}

// Plural returns the plural english name of the rank, i.e., "sixes"
func (r Rank) Plural() string {
	if r == 6 {
		return "sixes"
	}

	return r.Name() + "s"
}

// String returns a single lower-case character for the suit
func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}

	return string(suitChars[s])
}

// MarshalJSON encodes the card in its compact form
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its compact form
func (c *Card) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	card, err := ParseCard(s)
	if err != nil {
		return err
	}

	*c = card
	return nil
}

// ParseCard returns a Card from the string.
// The string must be <rank><suit>, where rank is one of 23456789TJQKA (or 10) and suit one of cdhs
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	rankPart, suitPart := strings.ToUpper(s[:len(s)-1]), strings.ToLower(s[len(s)-1:])
	if rankPart == "10" {
		rankPart = "T"
	}

	rankIdx := strings.Index(rankChars, rankPart)
	suitIdx := strings.Index(suitChars, suitPart)
	if len(rankPart) != 1 || rankIdx < 0 || suitIdx < 0 {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	return Card{Rank: Rank(rankIdx + 2), Suit: Suit(suitIdx)}, nil
}

// MustParseCards parses a comma separated list of cards and panics on failure
// Intended for tests and fixtures, i.e., "As,Ks,Qs"
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}

	return cards
}

// ParseCards parses a comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	if strings.TrimSpace(s) == "" {
		return []Card{}, nil
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		card, err := ParseCard(part)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// CardsToString will convert a slice of cards to a string in the format of As,Kd,2c
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}
