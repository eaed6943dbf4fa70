package table

import "errors"

// UserError is an error caused by a player asking for something they cannot do
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// Errors returned when a command is not legal at this point of the hand
var (
	ErrNotYourTurn       = UserError("it is not your turn")
	ErrNotSeated         = UserError("you are not seated at this table")
	ErrSeatTaken         = UserError("that seat is taken")
	ErrSeatOutOfRange    = UserError("that seat does not exist")
	ErrAlreadySeated     = UserError("you are already seated at this table")
	ErrAlreadySittingIn  = UserError("you are already sitting in")
	ErrAlreadySittingOut = UserError("you are already sitting out")
	ErrNoChips           = UserError("you have no chips to play with")
	ErrNoBlindToPost     = UserError("there is no blind to post")
	ErrNotBettingRound   = UserError("there is no betting round in progress")
	ErrCannotCheck       = UserError("you cannot check facing a bet")
	ErrNothingToCall     = UserError("there is no bet to call")
	ErrCannotBet         = UserError("there is already a bet, you must raise")
	ErrCannotRaise       = UserError("there is no bet to raise")
	ErrNoOneToRaise      = UserError("everyone else is all-in, you can only call or fold")
	ErrInvalidAmount     = UserError("the amount must be a positive whole number")
	ErrRaiseNotAboveBet  = UserError("a raise must be above the current bet unless you are all-in")
	ErrRaiseBelowYourBet = UserError("a raise must be above what you have already bet")
)

// errNoDealer is the invariant violation raised when a hand cannot find a dealer
var errNoDealer = errors.New("no sitting in seat is available for the dealer button")
