package room

import (
	"holdem-server/pkg/table"

	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching players to tables
type PitBoss struct {
	dealers    map[string]*Dealer
	order      []string
	ledger     Ledger
	logger     logrus.FieldLogger
	connect    chan *Client
	disconnect chan *Client
	close      chan bool
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(ledger Ledger, logger logrus.FieldLogger) *PitBoss {
	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		ledger:     ledger,
		logger:     logger,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
	}
}

// AddTable gives the table a dealer
// Tables must be added before StartShift.
func (p *PitBoss) AddTable(tbl *table.Table) *Dealer {
	logger := p.logger.WithFields(logrus.Fields{
		"table": tbl.ID(),
		"name":  tbl.Name(),
	})

	dealer := NewDealer(tbl, p.ledger, logger)
	p.dealers[tbl.ID()] = dealer
	p.order = append(p.order, tbl.ID())
	return dealer
}

// Dealer returns the dealer of the table
func (p *PitBoss) Dealer(tableID string) (*Dealer, bool) {
	dealer, ok := p.dealers[tableID]
	return dealer, ok
}

// TableSummary describes a table in the lobby
type TableSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seats      int    `json:"seats"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
	MinBuyIn   int    `json:"minBuyIn"`
	MaxBuyIn   int    `json:"maxBuyIn"`
}

// Tables returns the tables in the order they were added
func (p *PitBoss) Tables() []TableSummary {
	summaries := make([]TableSummary, 0, len(p.order))
	for _, id := range p.order {
		tbl := p.dealers[id].table
		opts := tbl.Options()
		summaries = append(summaries, TableSummary{
			ID:         tbl.ID(),
			Name:       tbl.Name(),
			Seats:      opts.Seats,
			SmallBlind: opts.SmallBlind,
			BigBlind:   opts.BigBlind,
			MinBuyIn:   opts.MinBuyIn,
			MaxBuyIn:   opts.MaxBuyIn,
		})
	}

	return summaries
}

// Ledger returns the bankroll ledger shared by every table
func (p *PitBoss) Ledger() Ledger {
	return p.ledger
}

// StartShift starts every dealer and the PitBoss run loop
func (p *PitBoss) StartShift() {
	for _, dealer := range p.dealers {
		dealer.StartShift()
	}

	go p.runLoop()
}

// EndShift stops the PitBoss and every dealer
func (p *PitBoss) EndShift() {
	close(p.close)

	for _, id := range p.order {
		p.dealers[id].EndShift()
	}
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.tableID]
			if !found {
				p.logger.WithField("table", client.tableID).Error("table not found")
				continue
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.tableID]
			if !found {
				p.logger.WithField("table", client.tableID).Error("table not found")
				continue
			}

			dealer.RemoveClient(client)
		case <-p.close:
			return
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
