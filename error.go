package teller

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in, please login first")
	ErrAlreadyLoggedIn = errors.New("already logged in, please logout first")
	// ErrPrivilegeRequired is returned when a standard session attempts
	// one of the admin-only transactions.
	ErrPrivilegeRequired = errors.New("privileged transaction, admin access required")

	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInsufficientSourceFunds = errors.New("insufficient funds in source account")
	ErrSourceNotFound          = errors.New("source account not found or not owned by account holder")
	ErrDestinationNotFound     = errors.New("destination account not found")

	ErrNegativeBalance = errors.New("account balance cannot be negative")
	ErrBalanceTooLarge = errors.New("account balance cannot exceed $99,999.99")
)

type ErrAccountNotFound struct {
	Number int
	Holder string
}

func (e ErrAccountNotFound) Error() string {
	return fmt.Sprintf("account %05d not found for holder %q", e.Number, e.Holder)
}

type ErrDuplicateAccount struct {
	Number int
}

func (e ErrDuplicateAccount) Error() string {
	return fmt.Sprintf("account number %05d already exists", e.Number)
}

type ErrExceedsLimit struct {
	Kind  TxnKind
	Limit decimal.Decimal
}

func (e ErrExceedsLimit) Error() string {
	return fmt.Sprintf("exceeds session %s limit of %s", e.Kind, e.Limit.StringFixed(2))
}

type ErrInvalidName struct {
	Reason string
}

func (e ErrInvalidName) Error() string {
	return "invalid account holder name: " + e.Reason
}

type ErrInvalidAmount struct {
	Input string
}

func (e ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount %q", e.Input)
}

type ErrUnknownCommand struct {
	Name string
}

func (e ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown transaction %q", e.Name)
}
