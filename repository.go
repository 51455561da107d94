package teller

//go:generate mockgen -source repository.go -destination mocks/repository.go -package mocks

import (
	"github.com/shopspring/decimal"
)

// Repository is the session's working copy of account records. There is no
// persistence back to the seed source; a fresh copy is loaded at each login
// and discarded at logout.
type Repository interface {
	// Lookup matches on both number and holder name, the ownership check
	// used by every transaction.
	Lookup(number int, holder string) (*Account, error)
	// LookupByNumber matches on number only; transfer destinations need no
	// ownership check.
	LookupByNumber(number int) (*Account, error)
	Insert(acct Account) error
	Remove(number int, holder string) error
	AdjustBalance(number int, holder string, delta decimal.Decimal) (decimal.Decimal, error)
	SetStatus(number int, holder string, status Status) error
	TogglePlan(number int, holder string) (Plan, error)
	// Transfer debits (fromNumber, holder) and credits toNumber as one
	// atomic step; on any failure neither balance changes.
	Transfer(fromNumber int, holder string, toNumber int, amount decimal.Decimal) error
	// NextNumber returns max existing account number + 1.
	NextNumber() int
}
