package room

import (
	"context"
	"fmt"
	"holdem-server/pkg/table"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrDealerClosed is returned once the dealer has ended its shift
var ErrDealerClosed = errors.New("the table is closed")

// errInternal is what a client sees when its command panicked
var errInternal = errors.New("an internal error occurred, the hand was cancelled")

// Dealer runs a single table
// Every command and scheduled task runs on the dealer's run loop, so the table is never shared between goroutines.
type Dealer struct {
	table   *table.Table
	ledger  Ledger
	logger  logrus.FieldLogger
	clients map[*Client]bool
	lock    sync.RWMutex

	// lastPrompt is resent to a player who reconnects while it is their turn
	lastPrompt *table.Prompt

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
func NewDealer(tbl *table.Table, ledger Ledger, logger logrus.FieldLogger) *Dealer {
	return &Dealer{
		table:         tbl,
		ledger:        ledger,
		logger:        logger,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// TableID returns the ID of the table the dealer runs
func (d *Dealer) TableID() string {
	return d.table.ID()
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop, pending tasks are dropped
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop, false is returned if the dealer has closed
func (d *Dealer) exec(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// AddClient adds a client and catches it up with the table
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.exec(func() {
		client.Send(&Response{Key: "tableSnapshot", Data: d.table.PublicState()})
		d.sendBankroll(client.player.ID)

		seat, cards := d.table.HoleCardsOf(client.player.ID)
		if seat == table.NoSeat {
			return
		}

		if len(cards) > 0 {
			client.Send(&Response{Key: "dealHoleCards", Data: holeCardsData{Seat: seat, Cards: cards}})
		}

		if p := d.lastPrompt; p != nil && p.PlayerID == client.player.ID && p.Seat == d.table.ActiveSeat() {
			client.Send(newPromptResponse(*p))
		}
	})
}

// RemoveClient removes a client
// A seated player whose last connection goes away leaves the table.
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.lock.Lock()
	delete(d.clients, client)
	stillConnected := false
	for c := range d.clients {
		if c.player.ID == client.player.ID {
			stillConnected = true
			break
		}
	}
	d.lock.Unlock()

	if stillConnected {
		return
	}

	d.exec(func() {
		seat := d.table.SeatOf(client.player.ID)
		if seat == table.NoSeat {
			return
		}

		d.logger.WithField("client", client.String()).Info("seated player disconnected, leaving the table")
		d.perform(nil, "", func() ([]table.Effect, error) {
			return d.table.Leave(seat)
		})
	})
}

// Snapshot returns the public state of the table
func (d *Dealer) Snapshot(ctx context.Context) (table.PublicState, error) {
	result := make(chan table.PublicState, 1)
	if !d.exec(func() {
		result <- d.table.PublicState()
	}) {
		return table.PublicState{}, ErrDealerClosed
	}

	select {
	case state := <-result:
		return state, nil
	case <-ctx.Done():
		return table.PublicState{}, ctx.Err()
	case <-d.close:
		return table.PublicState{}, ErrDealerClosed
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	action, err := table.ActionFromString(msg.Action)
	if err != nil {
		d.logger.WithField("msg", msg).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	if !d.exec(func() {
		d.perform(c, msg.Context, func() ([]table.Effect, error) {
			return d.command(c, action, msg.AdditionalData)
		})
	}) {
		c.Send(newErrorResponse(msg.Context, ErrDealerClosed))
	}
}

// command runs a player's command against the table
// NOTE: must only be called from the run loop
func (d *Dealer) command(c *Client, action table.Action, data AdditionalData) ([]table.Effect, error) {
	playerID := c.player.ID
	if action == table.ActionJoin {
		return d.join(c, data)
	}

	seat := d.table.SeatOf(playerID)
	if seat == table.NoSeat {
		return nil, table.ErrNotSeated
	}

	switch action {
	case table.ActionLeave:
		return d.table.Leave(seat)
	case table.ActionSitIn:
		return d.table.SitIn(seat)
	case table.ActionSitOut:
		return d.table.SitOut(seat)
	case table.ActionPostBlind:
		accepted, ok := data.GetBool("accepted")
		if !ok {
			return nil, table.UserError("accepted must be true or false")
		}
		return d.table.PostBlind(seat, accepted)
	case table.ActionCheck:
		return d.table.Check(seat)
	case table.ActionFold:
		return d.table.Fold(seat)
	case table.ActionCall:
		return d.table.Call(seat)
	case table.ActionBet, table.ActionRaise:
		amount, err := parseAmount(data, "amount")
		if err != nil {
			return nil, err
		}

		if action == table.ActionBet {
			return d.table.Bet(seat, amount)
		}
		return d.table.Raise(seat, amount)
	}

	return nil, table.UserError(fmt.Sprintf("unknown action: %s", action))
}

// join takes the buy-in from the bankroll, and gives it back if the table refuses the player
func (d *Dealer) join(c *Client, data AdditionalData) ([]table.Effect, error) {
	seat, ok := data.GetInt("seat")
	if !ok {
		return nil, table.UserError("seat must be a number")
	}

	buyIn, err := parseAmount(data, "buyIn")
	if err != nil {
		return nil, err
	}

	playerID := c.player.ID
	if err := d.ledger.Withdraw(playerID, buyIn); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, table.UserError("your bankroll is too small for that buy-in")
		}
		return nil, err
	}

	effects, err := d.table.Join(seat, playerID, c.player.Name, buyIn)
	if err != nil {
		if depositErr := d.ledger.Deposit(playerID, buyIn); depositErr != nil {
			d.logger.WithError(depositErr).WithField("playerID", playerID).Error("could not return a refused buy-in")
		}
		return nil, err
	}

	d.sendBankroll(playerID)
	return effects, nil
}

func parseAmount(data AdditionalData, key string) (int, error) {
	value, ok := data.GetFloat(key)
	if !ok {
		return 0, table.UserError(key + " must be a number")
	}

	return table.ParseAmount(value)
}

// perform runs fn, answers the client, and carries out the effects
// A panic inside fn cancels the hand instead of taking down the run loop.
// NOTE: must only be called from the run loop
func (d *Dealer) perform(c *Client, ctx string, fn func() ([]table.Effect, error)) {
	effects, err := d.safely(fn)
	if c != nil {
		if err != nil {
			c.Send(newErrorResponse(ctx, err))
		} else {
			c.Send(OK(ctx))
		}
	}

	var ue table.UserError
	if err != nil && !errors.As(err, &ue) {
		d.logger.WithError(err).Error("could not perform command")
	}

	d.dispatch(effects)
}

func (d *Dealer) safely(fn func() ([]table.Effect, error)) (effects []table.Effect, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Error("recovered from a panic in the run loop")
			effects = d.table.Abort(errors.Errorf("panic: %v", r))
			err = errInternal
		}
	}()

	return fn()
}

// dispatch carries out what the table asked for
// NOTE: must only be called from the run loop
func (d *Dealer) dispatch(effects []table.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case table.Snapshot:
			d.broadcast(&Response{Key: "tableSnapshot", Data: e.State})
		case table.HoleCards:
			d.sendToPlayer(e.PlayerID, &Response{Key: "dealHoleCards", Data: holeCardsData{Seat: e.Seat, Cards: e.Cards}})
		case table.Prompt:
			prompt := e
			d.lastPrompt = &prompt
			d.sendToPlayer(e.PlayerID, newPromptResponse(e))
		case table.GameStopped:
			d.lastPrompt = nil
			d.broadcast(&Response{Key: "gameStopped", Data: e.State})
		case table.Log:
			d.broadcast(&Response{Key: "log", Data: e.Messages})
		case table.CashOut:
			if err := d.ledger.Deposit(e.PlayerID, e.Chips); err != nil {
				d.logger.WithError(err).WithField("playerID", e.PlayerID).Error("could not return chips to the bankroll")
				continue
			}
			d.sendBankroll(e.PlayerID)
		case table.Schedule:
			d.schedule(e.Task)
		default:
			d.logger.WithField("effect", fmt.Sprintf("%T", effect)).Warn("unknown effect")
		}
	}
}

// schedule runs the task on the run loop once its time has passed
func (d *Dealer) schedule(task table.Task) {
	time.AfterFunc(task.After, func() {
		d.exec(func() {
			d.perform(nil, "", func() ([]table.Effect, error) {
				return d.table.RunTask(task)
			})
		})
	})
}

func (d *Dealer) broadcast(msg *Response) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

func (d *Dealer) sendToPlayer(playerID int64, msg *Response) {
	for _, client := range d.Clients() {
		if client.player.ID == playerID {
			client.Send(msg)
		}
	}
}

func (d *Dealer) sendBankroll(playerID int64) {
	balance, err := d.ledger.Balance(playerID)
	if err != nil {
		d.logger.WithError(err).WithField("playerID", playerID).Error("could not get bankroll")
		return
	}

	d.sendToPlayer(playerID, &Response{Key: "bankroll", Data: balance})
}
