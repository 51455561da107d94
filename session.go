package teller

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Privilege is the session's access level. PrivilegeNone means
// unauthenticated; every transaction other than login requires more.
type Privilege int

const (
	PrivilegeNone Privilege = iota
	PrivilegeStandard
	PrivilegeAdmin
)

func (p Privilege) String() string {
	switch p {
	case PrivilegeStandard:
		return "standard"
	case PrivilegeAdmin:
		return "admin"
	}
	return "none"
}

// AdminHolder is the identity recorded for admin sessions.
const AdminHolder = "ADMIN"

// Limits caps the amount of a single financial transaction for the
// session. Unlimited sessions (admin) skip the check entirely; deposits
// are never capped.
type Limits struct {
	Withdrawal decimal.Decimal
	Transfer   decimal.Decimal
	Paybill    decimal.Decimal
	Unlimited  bool
}

// StandardLimits are the fixed caps applied to standard sessions at login.
func StandardLimits() Limits {
	return Limits{
		Withdrawal: decimal.NewFromInt(500),
		Transfer:   decimal.NewFromInt(1000),
		Paybill:    decimal.NewFromInt(2000),
	}
}

func AdminLimits() Limits {
	return Limits{Unlimited: true}
}

// For returns the cap for a transaction kind. The second return is false
// when no cap applies.
func (l Limits) For(kind TxnKind) (decimal.Decimal, bool) {
	if l.Unlimited {
		return decimal.Zero, false
	}
	switch kind {
	case TxnWithdrawal:
		return l.Withdrawal, true
	case TxnTransfer:
		return l.Transfer, true
	case TxnPaybill:
		return l.Paybill, true
	}
	return decimal.Zero, false
}

// Session is the unit of lifetime from login to logout. It owns the
// transaction ledger and the account snapshot; both are rebuilt at login
// and the rest of the state is zeroed at logout.
type Session struct {
	Privilege Privilege
	Holder    string
	ID        snowflake.ID
	Limits    Limits
	Ledger    *Ledger
	Accounts  Repository
}

func NewSession() *Session {
	return &Session{
		Ledger:   NewLedger(),
		Accounts: NewMemoryRepository(),
	}
}

// Begin installs the authenticated identity and gives the session a fresh
// ledger and account snapshot.
func (s *Session) Begin(priv Privilege, holder string, id snowflake.ID, limits Limits, accts Repository) {
	s.Privilege = priv
	s.Holder = holder
	s.ID = id
	s.Limits = limits
	s.Ledger = NewLedger()
	s.Accounts = accts
}

// Reset returns the session to the unauthenticated state. The ledger and
// snapshot are left in place for inspection; the next Begin replaces them.
func (s *Session) Reset() {
	s.Privilege = PrivilegeNone
	s.Holder = ""
	s.ID = 0
	s.Limits = Limits{}
}
