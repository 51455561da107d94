package teller

import (
	"github.com/shopspring/decimal"
)

// Status marks whether an account may be operated on by the back end.
// The front end records status changes but does not enforce them; see
// the disable transaction.
type Status int

const (
	StatusActive Status = iota
	StatusDisabled
)

func (s Status) String() string {
	if s == StatusDisabled {
		return "D"
	}
	return "A"
}

// Plan is the account's payment plan, toggled by the changeplan
// transaction.
type Plan int

const (
	StudentPlan Plan = iota
	NonStudentPlan
)

func (p Plan) String() string {
	if p == NonStudentPlan {
		return "NP"
	}
	return "SP"
}

// Account is one record in the session's working snapshot. Number uniquely
// identifies the record; (Number, Holder) is the authorization key every
// transaction uses to prove ownership.
type Account struct {
	Number  int
	Holder  string
	Status  Status
	Balance decimal.Decimal
	Plan    Plan
}
