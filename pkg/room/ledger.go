package room

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrInsufficientFunds is returned when a withdrawal is larger than the balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger keeps the bankroll of every player
// Chips move to a table on join and back on leave.
type Ledger interface {
	// Open creates an account and returns its ID and starting balance
	Open() (playerID int64, balance int)
	Balance(playerID int64) (int, error)
	Withdraw(playerID int64, amount int) error
	Deposit(playerID int64, amount int) error
}

// MemoryLedger is a Ledger that lives for the life of the process
type MemoryLedger struct {
	mu               sync.Mutex
	balances         map[int64]int
	startingBankroll int
	lastID           int64
}

// NewMemoryLedger returns a ledger that gives new accounts startingBankroll
func NewMemoryLedger(startingBankroll int) *MemoryLedger {
	return &MemoryLedger{
		balances:         make(map[int64]int),
		startingBankroll: startingBankroll,
	}
}

// Open implements Ledger
func (m *MemoryLedger) Open() (int64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	m.balances[m.lastID] = m.startingBankroll
	return m.lastID, m.startingBankroll
}

// account returns the balance, accounts unknown to the ledger (i.e., from before a restart) start fresh
// NOTE: the lock must be held
func (m *MemoryLedger) account(playerID int64) int {
	balance, ok := m.balances[playerID]
	if !ok {
		balance = m.startingBankroll
		m.balances[playerID] = balance
		if playerID > m.lastID {
			m.lastID = playerID
		}
	}

	return balance
}

// Balance implements Ledger
func (m *MemoryLedger) Balance(playerID int64) (int, error) {
	if playerID <= 0 {
		return 0, errors.Errorf("invalid player ID: %d", playerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.account(playerID), nil
}

// Withdraw implements Ledger
func (m *MemoryLedger) Withdraw(playerID int64, amount int) error {
	if amount <= 0 {
		return errors.Errorf("invalid withdrawal: %d", amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	balance := m.account(playerID)
	if balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "cannot take %d from a balance of %d", amount, balance)
	}

	m.balances[playerID] = balance - amount
	return nil
}

// Deposit implements Ledger
func (m *MemoryLedger) Deposit(playerID int64, amount int) error {
	if amount < 0 {
		return errors.Errorf("invalid deposit: %d", amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[playerID] = m.account(playerID) + amount
	return nil
}
