package main

import (
	"fmt"
	"holdem-server/internal/rng"
	"holdem-server/internal/util"
	"holdem-server/pkg/table"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type simulationConfig struct {
	players int
	hands   int
	seed    int64
	chips   int
}

// simulation drives a table with bots, handling effects the way a dealer would
type simulation struct {
	table  *table.Table
	rng    rng.Generator
	logger *slog.Logger
	config simulationConfig

	render       bool
	rendered     int
	done         bool
	handsStarted int
}

func newSimulation(cfg simulationConfig, logger *slog.Logger) (*simulation, error) {
	if cfg.players < 2 || cfg.players > table.MaxSeats {
		return nil, fmt.Errorf("players must be between 2 and %d", table.MaxSeats)
	}

	if cfg.hands <= 0 {
		return nil, errors.New("hands must be > 0")
	}

	var generator rng.Generator = rng.Crypto{}
	if cfg.seed != 0 {
		generator = rng.NewSeeded(cfg.seed)
	}

	opts := table.DefaultOptions()
	opts.Seats = cfg.players
	opts.MinBuyIn = cfg.chips
	opts.MaxBuyIn = cfg.chips
	opts.ShowdownDelay = 0
	opts.ActionTimeout = 0

	// the table's own logs only matter when something breaks
	tableLogger := logrus.New()
	tableLogger.SetOutput(io.Discard)

	tbl, err := table.New("simulation", "Simulation", opts, tableLogger, generator)
	if err != nil {
		return nil, errors.Wrap(err, "invalid simulation")
	}

	return &simulation{
		table:  tbl,
		rng:    generator,
		logger: logger,
		config: cfg,
	}, nil
}

// run seats every bot and plays until enough hands have been dealt or the game stops
func (s *simulation) run() error {
	var queue []table.Effect
	for seat := 0; seat < s.config.players; seat++ {
		effects, err := s.table.Join(seat, int64(seat+1), util.GetRandomName(s.rng), s.config.chips)
		if err != nil {
			return errors.Wrapf(err, "could not seat bot %d", seat)
		}

		queue = append(queue, effects...)
	}

	for len(queue) > 0 && !s.done {
		effect := queue[0]
		queue = queue[1:]

		more, err := s.handle(effect)
		if err != nil {
			return err
		}

		queue = append(queue, more...)
	}

	return nil
}

func (s *simulation) handle(effect table.Effect) ([]table.Effect, error) {
	switch e := effect.(type) {
	case table.Log:
		for _, msg := range e.Messages {
			s.logger.Info(msg.Message)
		}
	case table.HoleCards:
		s.logger.Debug("dealt hole cards", "seat", e.Seat, "cards", fmt.Sprint(e.Cards))
	case table.Snapshot:
		s.observe(e.State)
	case table.GameStopped:
		s.logger.Info("game stopped, not enough players have chips")
		s.done = true
	case table.Prompt:
		return s.act(e)
	case table.Schedule:
		// nobody waits in a simulation
		return s.table.RunTask(e.Task)
	}

	return nil, nil
}

// observe renders showdowns and stops once the last requested hand is over
func (s *simulation) observe(state table.PublicState) {
	if state.Phase == table.PhaseShowdown && s.rendered != state.HandNumber {
		s.rendered = state.HandNumber
		if s.render {
			renderShowdown(state)
		}
	}

	if state.HandNumber > s.handsStarted {
		s.handsStarted = state.HandNumber
		if s.handsStarted > s.config.hands {
			s.done = true
		}
	}
}

// act picks a random legal action for the bot that was prompted
func (s *simulation) act(p table.Prompt) ([]table.Effect, error) {
	if p.Seat != s.table.ActiveSeat() {
		return nil, nil
	}

	switch p.Kind {
	case table.PromptPostSmallBlind, table.PromptPostBigBlind:
		return s.table.PostBlind(p.Seat, true)
	}

	legal := s.table.Legal(p.Seat)
	action := s.choose(legal)
	s.logger.Debug("bot decided", "seat", p.Seat, "prompt", p.Kind.String(), "action", string(action))

	effects, err := s.perform(p.Seat, action)
	if err == nil {
		return effects, nil
	}

	var ue table.UserError
	if !errors.As(err, &ue) {
		return nil, err
	}

	// a sized bet the table refused falls back to the passive option
	s.logger.Debug("bot fell back", "seat", p.Seat, "error", err.Error())
	if hasAction(legal, table.ActionCheck) {
		return s.table.Check(p.Seat)
	}

	return s.table.Call(p.Seat)
}

func (s *simulation) choose(legal []table.Action) table.Action {
	roll := s.rng.Intn(100)

	if hasAction(legal, table.ActionCheck) {
		switch {
		case roll < 75:
			return table.ActionCheck
		case hasAction(legal, table.ActionBet):
			return table.ActionBet
		case hasAction(legal, table.ActionRaise):
			return table.ActionRaise
		}
		return table.ActionCheck
	}

	switch {
	case roll < 15:
		return table.ActionFold
	case roll < 80 || !hasAction(legal, table.ActionRaise):
		return table.ActionCall
	}

	return table.ActionRaise
}

func (s *simulation) perform(seat int, action table.Action) ([]table.Effect, error) {
	bigBlind := s.table.Options().BigBlind

	switch action {
	case table.ActionCheck:
		return s.table.Check(seat)
	case table.ActionFold:
		return s.table.Fold(seat)
	case table.ActionCall:
		return s.table.Call(seat)
	case table.ActionBet:
		return s.table.Bet(seat, bigBlind*(1+s.rng.Intn(4)))
	case table.ActionRaise:
		biggestBet := s.table.PublicState().BiggestBet
		return s.table.Raise(seat, biggestBet*2+s.rng.Intn(bigBlind*2))
	}

	return nil, fmt.Errorf("bots do not %s", action)
}

func hasAction(actions []table.Action, action table.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}

	return false
}
