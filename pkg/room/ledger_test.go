package room

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLedger(t *testing.T) {
	a := assert.New(t)

	ledger := NewMemoryLedger(500)
	id, balance := ledger.Open()
	a.Equal(int64(1), id)
	a.Equal(500, balance)

	id, _ = ledger.Open()
	a.Equal(int64(2), id)

	a.NoError(ledger.Withdraw(1, 200))
	a.NoError(ledger.Deposit(1, 50))
	balance, err := ledger.Balance(1)
	a.NoError(err)
	a.Equal(350, balance)

	err = ledger.Withdraw(1, 351)
	a.True(errors.Is(err, ErrInsufficientFunds))
	a.EqualError(err, "cannot take 351 from a balance of 350: insufficient funds")

	a.Error(ledger.Withdraw(1, 0))
	a.Error(ledger.Deposit(1, -1))
	_, err = ledger.Balance(0)
	a.Error(err)
}

func TestMemoryLedger_UnknownAccount(t *testing.T) {
	a := assert.New(t)

	ledger := NewMemoryLedger(500)

	// an account from a token issued before a restart starts over
	balance, err := ledger.Balance(40)
	a.NoError(err)
	a.Equal(500, balance)

	id, _ := ledger.Open()
	a.Equal(int64(41), id)
}
