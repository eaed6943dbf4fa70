package main

import (
	"io"
	"log/slog"
	"testing"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func totalChips(state table.PublicState) int {
	total := 0
	for _, seat := range state.SeatStates {
		if seat != nil {
			total += seat.ChipsInPlay + seat.Bet
		}
	}

	return total
}

func TestSimulation_ConservesChips(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		sim, err := newSimulation(simulationConfig{players: 6, hands: 25, seed: seed, chips: 100}, testLogger())
		require.NoError(t, err)
		require.NoError(t, sim.run())

		state := sim.table.PublicState()
		assert.Equal(t, 600, totalChips(state)+state.Pot.Total(), "seed %d", seed)
		assert.True(t, sim.done, "seed %d", seed)
		if sim.table.GameIsOn() {
			assert.Equal(t, 26, state.HandNumber, "seed %d", seed)
		}
	}
}

func TestSimulation_IsReproducible(t *testing.T) {
	play := func() table.PublicState {
		sim, err := newSimulation(simulationConfig{players: 3, hands: 10, seed: 42, chips: 50}, testLogger())
		require.NoError(t, err)
		require.NoError(t, sim.run())
		return sim.table.PublicState()
	}

	first, second := play(), play()
	for i := range first.SeatStates {
		if first.SeatStates[i] == nil || second.SeatStates[i] == nil {
			assert.Equal(t, first.SeatStates[i], second.SeatStates[i])
			continue
		}
		assert.Equal(t, first.SeatStates[i].Name, second.SeatStates[i].Name)
		assert.Equal(t, first.SeatStates[i].ChipsInPlay, second.SeatStates[i].ChipsInPlay)
	}
}

func TestNewSimulation_Errors(t *testing.T) {
	_, err := newSimulation(simulationConfig{players: 1, hands: 1, chips: 100}, testLogger())
	assert.EqualError(t, err, "players must be between 2 and 10")

	_, err = newSimulation(simulationConfig{players: 4, hands: 0, chips: 100}, testLogger())
	assert.EqualError(t, err, "hands must be > 0")

	_, err = newSimulation(simulationConfig{players: 4, hands: 1, chips: 0}, testLogger())
	assert.EqualError(t, err, "invalid simulation: minimum buy-in must be > 0")
}

func TestDescribe(t *testing.T) {
	description, err := describe(deck.MustParseCards("As,Ks,Qs,Js,Ts,2c,3d"))
	require.NoError(t, err)
	assert.NotEmpty(t, description)

	_, err = describe(deck.MustParseCards("As,Ks"))
	assert.Error(t, err)
}
