package table

import (
	"errors"
	"time"
)

// MaxSeats is the most seats a table can have
const MaxSeats = 10

// Options configures a table
type Options struct {
	Seats      int
	SmallBlind int
	BigBlind   int
	MinBuyIn   int
	MaxBuyIn   int

	// ShowdownDelay is how long the result of a showdown stays up before the next hand
	ShowdownDelay time.Duration
	// ActionTimeout is how long a prompted player has to act, zero waits forever
	ActionTimeout time.Duration
}

// DefaultOptions returns the default options for a table
func DefaultOptions() Options {
	return Options{
		Seats:         10,
		SmallBlind:    1,
		BigBlind:      2,
		MinBuyIn:      40,
		MaxBuyIn:      200,
		ShowdownDelay: 2 * time.Second,
	}
}

func validateOptions(opts Options) error {
	if opts.Seats < 2 || opts.Seats > MaxSeats {
		return errors.New("seats must be between 2 and 10")
	}

	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.SmallBlind > opts.BigBlind {
		return errors.New("small blind must not be more than the big blind")
	}

	if opts.MinBuyIn <= 0 {
		return errors.New("minimum buy-in must be > 0")
	}

	if opts.MinBuyIn > opts.MaxBuyIn {
		return errors.New("minimum buy-in must not be more than the maximum buy-in")
	}

	if opts.ShowdownDelay < 0 || opts.ActionTimeout < 0 {
		return errors.New("delays must not be negative")
	}

	return nil
}
