package teller

//go:generate mockgen -source service.go -destination mocks/service.go -package mocks

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service is the transaction engine, one method per transaction type. Each
// handler acquires its own parameters through the session's Prompter,
// validates them, applies the account mutation and appends the validated
// record to the session ledger. Logout returns no record; login returns a
// marker record that is not appended.
type Service interface {
	Login() (*Entry, error)
	Logout() error
	Withdrawal() (*Entry, error)
	Transfer() (*Entry, error)
	Paybill() (*Entry, error)
	Deposit() (*Entry, error)
	Create() (*Entry, error)
	Delete() (*Entry, error)
	Disable() (*Entry, error)
	ChangePlan() (*Entry, error)
}

// Prompter supplies one line of user input for a labelled prompt.
type Prompter interface {
	Prompt(label string) (string, error)
}

type ServiceOpts struct {
	// AccountsFile is the seed account list loaded at login. A missing
	// file yields an empty snapshot with a warning, not an error.
	AccountsFile string
	// LogDir receives the timestamp-named transaction log at logout.
	LogDir string
	// PDFStatement additionally writes a PDF statement next to the log.
	PDFStatement bool
	// Out receives user-visible prompts and messages. Defaults to stdout.
	Out io.Writer
}

// maximum balance accepted by the create transaction
var maxCreateBalance = decimal.RequireFromString("99999.99")

var payeeCompanies = []struct {
	Code string
	Name string
}{
	{"EC", "The Bright Light Electric Company"},
	{"CQ", "Credit Card Company Q"},
	{"FI", "Fast Internet, Inc."},
}

func NewService(sess *Session, prompter Prompter, opts ServiceOpts, log *zerolog.Logger) (*serviceImpl, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.LogDir == "" {
		opts.LogDir = "."
	}
	return &serviceImpl{
		sess:     sess,
		prompter: prompter,
		opts:     opts,
		out:      out,
		node:     node,
		log:      log,
	}, nil
}

type serviceImpl struct {
	sess     *Session
	prompter Prompter
	opts     ServiceOpts
	out      io.Writer
	node     *snowflake.Node
	log      *zerolog.Logger
}

var (
	_ Service = (*serviceImpl)(nil)
)

func (s *serviceImpl) Login() (*Entry, error) {
	if s.sess.Privilege != PrivilegeNone {
		return nil, ErrAlreadyLoggedIn
	}
	s.header("Login")

	var (
		priv   Privilege
		holder string
	)
	for priv == PrivilegeNone {
		typ, err := s.prompter.Prompt("Enter session type (standard/admin)")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(strings.TrimSpace(typ)) {
		case "standard":
			name, err := s.prompter.Prompt("Enter account holder name")
			if err != nil {
				return nil, err
			}
			name = strings.TrimSpace(name)
			if verr := validateHolderName(name); verr != nil {
				return nil, verr
			}
			priv, holder = PrivilegeStandard, name
		case "admin":
			priv, holder = PrivilegeAdmin, AdminHolder
		default:
			s.say("ERROR: Invalid session type. Please enter 'standard' or 'admin'")
		}
	}

	limits := StandardLimits()
	if priv == PrivilegeAdmin {
		limits = AdminLimits()
	}

	s.say("Loading bank accounts...")
	accts, err := LoadAccounts(s.opts.AccountsFile, s.log)
	if err != nil {
		return nil, err
	}
	s.say("Bank accounts loaded successfully")

	id := s.node.Generate()
	s.sess.Begin(priv, holder, id, limits, accts)
	s.log.Info().
		Stringer("session_id", id).
		Stringer("privilege", priv).
		Str("holder", holder).
		Msg("session started")

	if priv == PrivilegeAdmin {
		s.say("Logged in as ADMIN user")
	} else {
		s.say("Logged in as STANDARD user: " + holder)
	}

	// control marker for the caller only; login is not written to the log
	e := NewEntry(TxnLogin, holder, 0, decimal.Zero, "00")
	return &e, nil
}

func (s *serviceImpl) Logout() error {
	s.header("Logout")

	s.sess.Ledger.Append(Entry{
		Kind:   TxnLogout,
		Name:   "END_OF_SESSION",
		Amount: decimal.Zero,
		Misc:   "00",
	})

	s.say("Writing transaction log...")
	path, err := s.sess.Ledger.WriteFile(s.opts.LogDir)
	if err != nil {
		s.say("ERROR: Failed to write transaction log")
		s.log.Err(err).Msg("transaction log flush failed")
	} else {
		s.say("Transaction log written successfully")
		if s.opts.PDFStatement {
			s.writeStatement(strings.TrimSuffix(path, ".txt") + ".pdf")
		}
		s.say("Logged out user: " + s.sess.Holder)
	}

	// session resets regardless of flush outcome
	s.log.Info().Stringer("session_id", s.sess.ID).Msg("session ended")
	s.sess.Reset()
	return nil
}

func (s *serviceImpl) Withdrawal() (*Entry, error) {
	s.header("Withdrawal")

	holder, err := s.accountHolder()
	if err != nil {
		return nil, err
	}
	number, err := s.promptAccountNumber("Enter account number")
	if err != nil {
		return nil, err
	}
	amount, err := s.promptAmount("Enter withdrawal amount")
	if err != nil {
		return nil, err
	}

	if lim, capped := s.sess.Limits.For(TxnWithdrawal); capped && amount.GreaterThan(lim) {
		return nil, ErrExceedsLimit{Kind: TxnWithdrawal, Limit: lim}
	}
	acct, err := s.sess.Accounts.Lookup(number, holder)
	if err != nil {
		return nil, err
	}
	if acct.Balance.Sub(amount).IsNegative() {
		return nil, ErrInsufficientFunds
	}
	if _, err = s.sess.Accounts.AdjustBalance(number, holder, amount.Neg()); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnWithdrawal, holder, number, amount, "00")), nil
}

func (s *serviceImpl) Transfer() (*Entry, error) {
	s.header("Transfer")

	holder, err := s.accountHolder()
	if err != nil {
		return nil, err
	}
	from, err := s.promptAccountNumber("Enter account number to transfer FROM")
	if err != nil {
		return nil, err
	}
	to, err := s.promptAccountNumber("Enter account number to transfer TO")
	if err != nil {
		return nil, err
	}
	amount, err := s.promptAmount("Enter transfer amount")
	if err != nil {
		return nil, err
	}

	if lim, capped := s.sess.Limits.For(TxnTransfer); capped && amount.GreaterThan(lim) {
		return nil, ErrExceedsLimit{Kind: TxnTransfer, Limit: lim}
	}
	src, err := s.sess.Accounts.Lookup(from, holder)
	if err != nil {
		return nil, ErrSourceNotFound
	}
	if _, err = s.sess.Accounts.LookupByNumber(to); err != nil {
		return nil, ErrDestinationNotFound
	}
	if src.Balance.Sub(amount).IsNegative() {
		return nil, ErrInsufficientSourceFunds
	}
	if err = s.sess.Accounts.Transfer(from, holder, to, amount); err != nil {
		return nil, err
	}

	// destination is the primary account; misc carries the source number
	return s.record(NewEntry(TxnTransfer, holder, to, amount, fmt.Sprintf("%05d", from))), nil
}

func (s *serviceImpl) Paybill() (*Entry, error) {
	s.header("Paybill")

	holder, err := s.accountHolder()
	if err != nil {
		return nil, err
	}
	number, err := s.promptAccountNumber("Enter account number")
	if err != nil {
		return nil, err
	}
	company, err := s.promptCompanyCode()
	if err != nil {
		return nil, err
	}
	amount, err := s.promptAmount("Enter payment amount")
	if err != nil {
		return nil, err
	}

	if lim, capped := s.sess.Limits.For(TxnPaybill); capped && amount.GreaterThan(lim) {
		return nil, ErrExceedsLimit{Kind: TxnPaybill, Limit: lim}
	}
	acct, err := s.sess.Accounts.Lookup(number, holder)
	if err != nil {
		return nil, err
	}
	if acct.Balance.Sub(amount).IsNegative() {
		return nil, ErrInsufficientFunds
	}
	if _, err = s.sess.Accounts.AdjustBalance(number, holder, amount.Neg()); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnPaybill, holder, number, amount, company)), nil
}

func (s *serviceImpl) Deposit() (*Entry, error) {
	s.header("Deposit")

	holder, err := s.accountHolder()
	if err != nil {
		return nil, err
	}
	number, err := s.promptAccountNumber("Enter account number")
	if err != nil {
		return nil, err
	}
	// deposits are uncapped; they add funds rather than remove them
	amount, err := s.promptAmount("Enter deposit amount")
	if err != nil {
		return nil, err
	}

	// funds are credited immediately and usable within the same session
	if _, err = s.sess.Accounts.AdjustBalance(number, holder, amount); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnDeposit, holder, number, amount, "00")), nil
}

func (s *serviceImpl) Create() (*Entry, error) {
	s.header("Create Account")

	name, err := s.prompter.Prompt("Enter account holder name")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if verr := validateHolderName(name); verr != nil {
		return nil, verr
	}

	raw, err := s.prompter.Prompt("Enter initial balance")
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, ErrInvalidAmount{Input: raw}
	}
	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	if balance.GreaterThan(maxCreateBalance) {
		return nil, ErrBalanceTooLarge
	}

	number := s.sess.Accounts.NextNumber()
	acct := Account{
		Number:  number,
		Holder:  name,
		Status:  StatusActive,
		Balance: balance,
		Plan:    StudentPlan,
	}
	if err = s.sess.Accounts.Insert(acct); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnCreate, name, number, balance, "00")), nil
}

func (s *serviceImpl) Delete() (*Entry, error) {
	s.header("Delete Account")

	name, number, err := s.promptTarget()
	if err != nil {
		return nil, err
	}
	if err = s.sess.Accounts.Remove(number, name); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnDelete, name, number, decimal.Zero, "00")), nil
}

func (s *serviceImpl) Disable() (*Entry, error) {
	s.header("Disable Account")

	name, number, err := s.promptTarget()
	if err != nil {
		return nil, err
	}
	// status is recorded only; the front end does not block transactions
	// on disabled accounts, the back end does
	if err = s.sess.Accounts.SetStatus(number, name, StatusDisabled); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnDisable, name, number, decimal.Zero, "00")), nil
}

func (s *serviceImpl) ChangePlan() (*Entry, error) {
	s.header("Change Plan")

	name, number, err := s.promptTarget()
	if err != nil {
		return nil, err
	}
	if _, err = s.sess.Accounts.TogglePlan(number, name); err != nil {
		return nil, err
	}

	return s.record(NewEntry(TxnChangePlan, name, number, decimal.Zero, "00")), nil
}

// accountHolder resolves the holder a financial transaction acts on.
// Admins operate on arbitrary accounts and are prompted; standard users
// always act as themselves.
func (s *serviceImpl) accountHolder() (string, error) {
	if s.sess.Privilege == PrivilegeAdmin {
		name, err := s.prompter.Prompt("Enter account holder name")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(name), nil
	}
	return s.sess.Holder, nil
}

// promptTarget collects the (holder, number) pair for the admin-only
// account management transactions.
func (s *serviceImpl) promptTarget() (string, int, error) {
	name, err := s.prompter.Prompt("Enter account holder name")
	if err != nil {
		return "", 0, err
	}
	number, err := s.promptAccountNumber("Enter account number")
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(name), number, nil
}

func (s *serviceImpl) promptAccountNumber(label string) (int, error) {
	for {
		raw, err := s.prompter.Prompt(label)
		if err != nil {
			return 0, err
		}
		number, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			s.say("ERROR: Invalid account number. Please enter a valid number.")
			continue
		}
		if number < 0 {
			s.say("ERROR: Account number cannot be negative")
			continue
		}
		return number, nil
	}
}

func (s *serviceImpl) promptAmount(label string) (decimal.Decimal, error) {
	for {
		raw, err := s.prompter.Prompt(label)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			s.say("ERROR: Invalid amount. Please enter a valid number.")
			continue
		}
		if !amount.IsPositive() {
			s.say("ERROR: Amount must be greater than $0.00")
			continue
		}
		return amount, nil
	}
}

func (s *serviceImpl) promptCompanyCode() (string, error) {
	s.say("Valid companies:")
	for _, c := range payeeCompanies {
		s.say(fmt.Sprintf("  %s - %s", c.Code, c.Name))
	}
	for {
		raw, err := s.prompter.Prompt("Enter company code (EC/CQ/FI)")
		if err != nil {
			return "", err
		}
		code := strings.ToUpper(strings.TrimSpace(raw))
		for _, c := range payeeCompanies {
			if c.Code == code {
				return code, nil
			}
		}
		s.say("ERROR: Invalid company code. Please enter EC, CQ, or FI.")
	}
}

// record appends the validated entry to the session ledger and returns it
// to the caller.
func (s *serviceImpl) record(e Entry) *Entry {
	s.sess.Ledger.Append(e)
	s.log.Info().
		Stringer("session_id", s.sess.ID).
		Str("code", e.Kind.Code()).
		Int("account", e.Number).
		Str("amount", e.Amount.StringFixed(2)).
		Msg("transaction recorded")
	return &e
}

func (s *serviceImpl) writeStatement(path string) {
	f, err := os.Create(path)
	if err != nil {
		s.log.Err(err).Str("path", path).Msg("statement create failed")
		return
	}
	defer f.Close()
	if err = s.sess.Ledger.WriteStatement(f); err != nil {
		s.log.Err(err).Str("path", path).Msg("statement render failed")
	}
}

func (s *serviceImpl) say(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *serviceImpl) header(name string) {
	fmt.Fprintf(s.out, "\n%s Transaction\n%s\n", name, strings.Repeat("-", 40))
}

func validateHolderName(name string) error {
	if name == "" {
		return ErrInvalidName{Reason: "account holder name cannot be empty"}
	}
	if len(name) > 20 {
		return ErrInvalidName{Reason: "account holder name cannot exceed 20 characters"}
	}
	return nil
}
