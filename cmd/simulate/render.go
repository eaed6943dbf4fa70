package main

import (
	"fmt"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/table"
	"strconv"
	"strings"

	"github.com/paulhankin/poker"
	"github.com/pterm/pterm"
)

// renderShowdown prints the board and every revealed hand
func renderShowdown(state table.PublicState) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	var players []pterm.Panel
	for _, seat := range state.SeatStates {
		if seat == nil || len(seat.Cards) == 0 {
			continue
		}

		info := pterm.Sprintfln("%s\nChips: %d\n%s", pterm.BgGreen.Sprint(cardSymbols(seat.Cards)), seat.ChipsInPlay, seat.Hand)
		if description, err := describe(append(append([]deck.Card{}, seat.Cards...), state.Board...)); err == nil {
			info += pterm.Gray(description)
		}

		players = append(players, pterm.Panel{Data: pbox.WithTitle(pterm.LightCyan(seat.Name)).WithTitleTopLeft().Sprint(info)})
	}

	board := pterm.Panel{Data: pbox.
		WithTitle(pterm.LightYellow(fmt.Sprintf("|HAND #%d|", state.HandNumber))).
		WithTitleTopCenter().
		Sprint(pterm.BgGreen.Sprint(" " + cardSymbols(state.Board) + " "))}

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{board},
		players,
	}).Render()
}

// renderStandings prints the chip counts once the simulation is over
func renderStandings(state table.PublicState) {
	data := [][]string{{"Seat", "Player", "Chips", "Sitting in"}}
	for i, seat := range state.SeatStates {
		if seat == nil {
			continue
		}

		sittingIn := pterm.LightGreen("yes")
		if !seat.SittingIn {
			sittingIn = pterm.LightRed("no")
		}

		data = append(data, []string{strconv.Itoa(i), seat.Name, strconv.Itoa(seat.ChipsInPlay), sittingIn})
	}

	pterm.DefaultSection.Printfln("Standings after %d hands", state.HandNumber)
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// describe names seven cards with an evaluator independent of the table's
func describe(cards []deck.Card) (string, error) {
	if len(cards) != 7 {
		return "", fmt.Errorf("expected 7 cards, got %d", len(cards))
	}

	hand := make([]poker.Card, 0, len(cards))
	for _, card := range cards {
		rank := int(card.Rank)
		if card.Rank == deck.Ace {
			rank = 1
		}

		c, err := poker.MakeCard(poker.Suit(card.Suit), poker.Rank(rank))
		if err != nil {
			return "", err
		}
		hand = append(hand, c)
	}

	return poker.Describe(hand)
}

func cardSymbols(cards []deck.Card) string {
	symbols := make([]string, len(cards))
	for i, card := range cards {
		symbols[i] = card.Symbol()
	}

	return strings.Join(symbols, " ")
}
