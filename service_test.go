package teller_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerbank/teller"
)

// script feeds canned answers to the engine's prompts, one per call.
type script struct {
	inputs []string
	next   int
}

func (s *script) Prompt(string) (string, error) {
	if s.next >= len(s.inputs) {
		return "", fmt.Errorf("no more inputs provided in test")
	}
	v := s.inputs[s.next]
	s.next++
	return v, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleAccounts() []teller.Account {
	return []teller.Account{
		{Number: 1, Holder: "John Doe", Status: teller.StatusActive, Balance: dec("1000.00")},
		{Number: 2, Holder: "Jane Smith", Status: teller.StatusActive, Balance: dec("2500.00")},
		{Number: 3, Holder: "Bob Johnson", Status: teller.StatusActive, Balance: dec("750.00")},
		{Number: 4, Holder: "Alice Williams", Status: teller.StatusDisabled, Balance: dec("100.00")},
		{Number: 5, Holder: "Charlie Brown", Status: teller.StatusActive, Balance: dec("5000.00")},
	}
}

type engine struct {
	svc  teller.Service
	sess *teller.Session
	repo *teller.MemoryRepository
	dir  string
}

func newEngine(t *testing.T, priv teller.Privilege, inputs ...string) *engine {
	t.Helper()
	return newEngineOpts(t, priv, teller.ServiceOpts{
		AccountsFile: filepath.Join("testdata", "current_accounts.txt"),
	}, inputs...)
}

func newEngineOpts(t *testing.T, priv teller.Privilege, opts teller.ServiceOpts, inputs ...string) *engine {
	t.Helper()
	sess := teller.NewSession()
	repo := teller.NewMemoryRepository(sampleAccounts()...)
	switch priv {
	case teller.PrivilegeStandard:
		sess.Begin(teller.PrivilegeStandard, "John Doe", 0, teller.StandardLimits(), repo)
	case teller.PrivilegeAdmin:
		sess.Begin(teller.PrivilegeAdmin, teller.AdminHolder, 0, teller.AdminLimits(), repo)
	}
	if opts.LogDir == "" {
		opts.LogDir = t.TempDir()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	log := zerolog.Nop()
	svc, err := teller.NewService(sess, &script{inputs: inputs}, opts, &log)
	require.NoError(t, err)
	chained := teller.NewGateMiddleware()(teller.NewAuthMiddleware(sess)(svc))
	return &engine{svc: chained, sess: sess, repo: repo, dir: opts.LogDir}
}

func balanceOf(t *testing.T, repo *teller.MemoryRepository, number int) decimal.Decimal {
	t.Helper()
	acct, err := repo.LookupByNumber(number)
	require.NoError(t, err)
	return acct.Balance
}

func TestSessionPreconditions(t *testing.T) {
	t.Run("every transaction except login requires a session", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeNone)
		router := teller.NewRouter(e.svc)
		for _, cmd := range []string{
			"logout", "withdrawal", "transfer", "paybill", "deposit",
			"create", "delete", "disable", "changeplan",
		} {
			entry, err := router.Exec(cmd)
			as.Nil(entry, cmd)
			as.ErrorIs(err, teller.ErrNotLoggedIn, cmd)
		}
		as.Zero(e.sess.Ledger.Len())
	})

	t.Run("admin-only transactions reject a standard session", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard)
		router := teller.NewRouter(e.svc)
		for _, cmd := range []string{"create", "delete", "disable", "changeplan"} {
			entry, err := router.Exec(cmd)
			as.Nil(entry, cmd)
			as.ErrorIs(err, teller.ErrPrivilegeRequired, cmd)
		}
		as.Zero(e.sess.Ledger.Len())
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1000.00")))
	})
}

func TestLogin(t *testing.T) {
	t.Run("second login is rejected regardless of requested type", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "admin")
		entry, err := e.svc.Login()
		as.Nil(entry)
		as.ErrorIs(err, teller.ErrAlreadyLoggedIn)
	})

	t.Run("standard login sets identity, limits and snapshot", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		e := newEngine(tt, teller.PrivilegeNone, "standard", "John Doe")
		entry, err := e.svc.Login()
		reqrd.NoError(err)
		reqrd.NotNil(entry)
		as.Equal(teller.TxnLogin, entry.Kind)
		as.Equal("10", entry.Kind.Code())
		as.Equal(teller.PrivilegeStandard, e.sess.Privilege)
		as.Equal("John Doe", e.sess.Holder)
		lim, capped := e.sess.Limits.For(teller.TxnWithdrawal)
		as.True(capped)
		as.True(lim.Equal(dec("500.00")))
		// the login marker is a control record, never appended
		as.Zero(e.sess.Ledger.Len())
		// snapshot loaded from the seed fixture
		acct, err := e.sess.Accounts.Lookup(1, "John Doe")
		reqrd.NoError(err)
		as.True(acct.Balance.Equal(dec("1000.00")))
	})

	t.Run("unknown session types re-prompt until valid", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeNone, "guest", "", "admin")
		entry, err := e.svc.Login()
		require.NoError(tt, err)
		require.NotNil(tt, entry)
		as.Equal(teller.PrivilegeAdmin, e.sess.Privilege)
		as.Equal(teller.AdminHolder, e.sess.Holder)
		_, capped := e.sess.Limits.For(teller.TxnTransfer)
		as.False(capped)
	})

	t.Run("invalid holder name aborts and leaves the session unauthenticated", func(tt *testing.T) {
		as := assert.New(tt)
		for _, name := range []string{"", strings.Repeat("x", 21)} {
			e := newEngine(tt, teller.PrivilegeNone, "standard", name)
			entry, err := e.svc.Login()
			as.Nil(entry)
			as.ErrorAs(err, &teller.ErrInvalidName{})
			as.Equal(teller.PrivilegeNone, e.sess.Privilege)
		}
	})

	t.Run("missing accounts file yields an empty snapshot", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngineOpts(tt, teller.PrivilegeNone, teller.ServiceOpts{
			AccountsFile: filepath.Join("testdata", "no_such_accounts.txt"),
		}, "standard", "John Doe")
		_, err := e.svc.Login()
		require.NoError(tt, err)
		_, err = e.sess.Accounts.LookupByNumber(1)
		as.ErrorAs(err, &teller.ErrAccountNotFound{})
	})
}

func TestWithdrawal(t *testing.T) {
	t.Run("amount equal to the limit is accepted", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "500.00")
		entry, err := e.svc.Withdrawal()
		require.NoError(tt, err)
		as.Equal("01 John Doe             00001 00500.00 00", entry.Encode())
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("500.00")))
		as.Equal(1, e.sess.Ledger.Len())
	})

	t.Run("amount over the limit is rejected without mutation", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "500.01")
		entry, err := e.svc.Withdrawal()
		as.Nil(entry)
		as.ErrorAs(err, &teller.ErrExceedsLimit{})
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1000.00")))
		as.Zero(e.sess.Ledger.Len())
	})

	t.Run("withdrawing past the balance is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "Charlie Brown", "5", "5000.01")
		entry, err := e.svc.Withdrawal()
		as.Nil(entry)
		as.ErrorIs(err, teller.ErrInsufficientFunds)
		as.True(balanceOf(tt, e.repo, 5).Equal(dec("5000.00")))
		as.Zero(e.sess.Ledger.Len())
	})

	t.Run("withdrawing the exact balance leaves zero", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "Charlie Brown", "5", "5000.00")
		_, err := e.svc.Withdrawal()
		require.NoError(tt, err)
		as.True(balanceOf(tt, e.repo, 5).IsZero())
	})

	t.Run("malformed numbers and amounts re-prompt", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard,
			"abc", "-2", "1", // account number retries
			"xx", "-5", "0", "250.00", // amount retries
		)
		entry, err := e.svc.Withdrawal()
		require.NoError(tt, err)
		as.True(entry.Amount.Equal(dec("250.00")))
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("750.00")))
	})

	t.Run("unknown account is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "99", "100.00")
		entry, err := e.svc.Withdrawal()
		as.Nil(entry)
		as.ErrorAs(err, &teller.ErrAccountNotFound{})
	})
}

func TestTransfer(t *testing.T) {
	t.Run("moves funds and logs destination with source in misc", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "2", "100.00")
		entry, err := e.svc.Transfer()
		require.NoError(tt, err)
		as.Equal(teller.TxnTransfer, entry.Kind)
		as.Equal(2, entry.Number)
		as.Equal("00001", entry.Misc)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("900.00")))
		as.True(balanceOf(tt, e.repo, 2).Equal(dec("2600.00")))
	})

	t.Run("source not owned by holder is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "2", "1", "100.00")
		entry, err := e.svc.Transfer()
		as.Nil(entry)
		as.ErrorIs(err, teller.ErrSourceNotFound)
		as.True(balanceOf(tt, e.repo, 2).Equal(dec("2500.00")))
	})

	t.Run("missing destination is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "999", "100.00")
		entry, err := e.svc.Transfer()
		as.Nil(entry)
		as.ErrorIs(err, teller.ErrDestinationNotFound)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1000.00")))
	})

	t.Run("insufficient source funds leaves both balances alone", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "Bob Johnson", "3", "2", "800.00")
		entry, err := e.svc.Transfer()
		as.Nil(entry)
		as.ErrorIs(err, teller.ErrInsufficientSourceFunds)
		as.True(balanceOf(tt, e.repo, 3).Equal(dec("750.00")))
		as.True(balanceOf(tt, e.repo, 2).Equal(dec("2500.00")))
	})

	t.Run("same source and destination nets to zero", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "1", "100.00")
		entry, err := e.svc.Transfer()
		require.NoError(tt, err)
		as.NotNil(entry)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1000.00")))
	})

	t.Run("limit boundary", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "2", "1000.01")
		_, err := e.svc.Transfer()
		as.ErrorAs(err, &teller.ErrExceedsLimit{})

		e = newEngine(tt, teller.PrivilegeStandard, "1", "2", "1000.00")
		_, err = e.svc.Transfer()
		require.NoError(tt, err)
		as.True(balanceOf(tt, e.repo, 1).IsZero())
	})
}

func TestPaybill(t *testing.T) {
	t.Run("valid company is accepted and recorded in misc", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "EC", "200.00")
		entry, err := e.svc.Paybill()
		require.NoError(tt, err)
		as.Equal("EC", entry.Misc)
		as.Equal("03 John Doe             00001 00200.00 EC", entry.Encode())
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("800.00")))
	})

	t.Run("company codes are normalized and re-prompted", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "XX", "cq", "300.00")
		entry, err := e.svc.Paybill()
		require.NoError(tt, err)
		as.Equal("CQ", entry.Misc)
	})

	t.Run("limit boundary", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "FI", "2000.01")
		_, err := e.svc.Paybill()
		as.ErrorAs(err, &teller.ErrExceedsLimit{})
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1000.00")))

		e = newEngine(tt, teller.PrivilegeStandard, "1", "FI", "2000.00")
		_, err = e.repo.AdjustBalance(1, "John Doe", dec("4000.00"))
		require.NoError(tt, err)
		_, err = e.svc.Paybill()
		require.NoError(tt, err)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("3000.00")))
	})

	t.Run("insufficient funds is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "EC", "1000.01")
		entry, err := e.svc.Paybill()
		as.Nil(entry)
		as.ErrorIs(err, teller.ErrInsufficientFunds)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1000.00")))
	})
}

func TestDeposit(t *testing.T) {
	t.Run("deposits are uncapped and immediately usable", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard,
			"1", "10000.00", // deposit
			"1", "500.00", // withdrawal of the new funds
		)
		entry, err := e.svc.Deposit()
		require.NoError(tt, err)
		as.Equal(teller.TxnDeposit, entry.Kind)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("11000.00")))

		_, err = e.svc.Withdrawal()
		require.NoError(tt, err)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("10500.00")))
	})

	t.Run("zero and negative amounts re-prompt", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "0", "-5", "25.00")
		_, err := e.svc.Deposit()
		require.NoError(tt, err)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("1025.00")))
	})

	t.Run("unknown account is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "99", "50.00")
		entry, err := e.svc.Deposit()
		as.Nil(entry)
		as.ErrorAs(err, &teller.ErrAccountNotFound{})
	})
}

func TestCreate(t *testing.T) {
	t.Run("rejects a 21-char holder name", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, strings.Repeat("x", 21))
		entry, err := e.svc.Create()
		as.Nil(entry)
		as.ErrorAs(err, &teller.ErrInvalidName{})
		as.Equal(5, e.repo.Len())
	})

	t.Run("rejects balances out of range on first bad value", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "New Holder", "-1.00")
		_, err := e.svc.Create()
		as.ErrorIs(err, teller.ErrNegativeBalance)

		e = newEngine(tt, teller.PrivilegeAdmin, "New Holder", "100000.00")
		_, err = e.svc.Create()
		as.ErrorIs(err, teller.ErrBalanceTooLarge)

		e = newEngine(tt, teller.PrivilegeAdmin, "New Holder", "lots")
		_, err = e.svc.Create()
		as.ErrorAs(err, &teller.ErrInvalidAmount{})
		as.Equal(5, e.repo.Len())
	})

	t.Run("assigns max existing number plus one", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "New Holder", "1.00")
		entry, err := e.svc.Create()
		require.NoError(tt, err)
		as.Equal(6, entry.Number)
		as.Equal("05 New Holder           00006 00001.00 00", entry.Encode())
		acct, err := e.repo.Lookup(6, "New Holder")
		require.NoError(tt, err)
		as.Equal(teller.StatusActive, acct.Status)
		as.Equal(teller.StudentPlan, acct.Plan)
		as.True(acct.Balance.Equal(dec("1.00")))
	})

	t.Run("zero initial balance is allowed", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "Penniless", "0.00")
		entry, err := e.svc.Create()
		require.NoError(tt, err)
		as.True(entry.Amount.IsZero())
	})
}

func TestDelete(t *testing.T) {
	t.Run("removed account fails every subsequent lookup", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin,
			"John Doe", "1", // delete
			"John Doe", "1", "10.00", // withdrawal
			"John Doe", "1", "10.00", // deposit
			"John Doe", "1", "2", "10.00", // transfer
		)
		entry, err := e.svc.Delete()
		require.NoError(tt, err)
		as.Equal(teller.TxnDelete, entry.Kind)
		as.True(entry.Amount.IsZero())

		_, err = e.svc.Withdrawal()
		as.ErrorAs(err, &teller.ErrAccountNotFound{})
		_, err = e.svc.Deposit()
		as.ErrorAs(err, &teller.ErrAccountNotFound{})
		_, err = e.svc.Transfer()
		as.ErrorIs(err, teller.ErrSourceNotFound)
	})

	t.Run("number and holder must match exactly", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin, "John Doe", "2")
		entry, err := e.svc.Delete()
		as.Nil(entry)
		as.ErrorAs(err, &teller.ErrAccountNotFound{})
		as.Equal(5, e.repo.Len())
	})
}

func TestDisable(t *testing.T) {
	t.Run("marks the record only, without blocking transactions", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin,
			"John Doe", "1",
			"John Doe", "1", "100.00",
		)
		entry, err := e.svc.Disable()
		require.NoError(tt, err)
		as.Equal(teller.TxnDisable, entry.Kind)
		acct, err := e.repo.LookupByNumber(1)
		require.NoError(tt, err)
		as.Equal(teller.StatusDisabled, acct.Status)

		// enforcement is deferred to the back end
		_, err = e.svc.Withdrawal()
		require.NoError(tt, err)
		as.True(balanceOf(tt, e.repo, 1).Equal(dec("900.00")))
	})
}

func TestChangePlan(t *testing.T) {
	t.Run("toggles between the two plans", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeAdmin,
			"John Doe", "1",
			"John Doe", "1",
		)
		entry, err := e.svc.ChangePlan()
		require.NoError(tt, err)
		as.Equal(teller.TxnChangePlan, entry.Kind)
		acct, err := e.repo.LookupByNumber(1)
		require.NoError(tt, err)
		as.Equal(teller.NonStudentPlan, acct.Plan)

		_, err = e.svc.ChangePlan()
		require.NoError(tt, err)
		acct, err = e.repo.LookupByNumber(1)
		require.NoError(tt, err)
		as.Equal(teller.StudentPlan, acct.Plan)
	})
}

func TestSessionFlow(t *testing.T) {
	t.Run("login, withdrawal, logout flushes exactly the session log", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		e := newEngine(tt, teller.PrivilegeNone,
			"standard", "John Doe",
			"1", "250.00",
		)
		router := teller.NewRouter(e.svc)

		entry, err := router.Exec(" LOGIN ")
		reqrd.NoError(err)
		reqrd.NotNil(entry)

		entry, err = router.Exec("withdrawal")
		reqrd.NoError(err)
		as.Equal("01 John Doe             00001 00250.00 00", entry.Encode())
		acct, err := e.sess.Accounts.LookupByNumber(1)
		reqrd.NoError(err)
		as.True(acct.Balance.Equal(dec("750.00")))

		entry, err = router.Exec("logout")
		reqrd.NoError(err)
		as.Nil(entry)
		as.Equal(teller.PrivilegeNone, e.sess.Privilege)
		as.Empty(e.sess.Holder)

		files, err := os.ReadDir(e.dir)
		reqrd.NoError(err)
		reqrd.Len(files, 1)
		raw, err := os.ReadFile(filepath.Join(e.dir, files[0].Name()))
		reqrd.NoError(err)
		lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
		reqrd.Len(lines, 2)
		as.Equal("01 John Doe             00001 00250.00 00", lines[0])
		as.Equal("00       END_OF_SESSION 00000 00000.00 00", lines[1])
	})

	t.Run("flush failure still resets the session", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngineOpts(tt, teller.PrivilegeStandard, teller.ServiceOpts{
			AccountsFile: filepath.Join("testdata", "current_accounts.txt"),
			LogDir:       filepath.Join(tt.TempDir(), "no", "such", "dir"),
		})
		err := e.svc.Logout()
		as.NoError(err)
		as.Equal(teller.PrivilegeNone, e.sess.Privilege)
	})

	t.Run("unknown commands error without ending the session", func(tt *testing.T) {
		as := assert.New(tt)
		e := newEngine(tt, teller.PrivilegeStandard, "1", "100.00")
		router := teller.NewRouter(e.svc)
		entry, err := router.Exec("balance")
		as.Nil(entry)
		as.ErrorAs(err, &teller.ErrUnknownCommand{})

		_, err = router.Exec("withdrawal")
		as.NoError(err)
	})

	t.Run("pdf statement is written alongside the log when enabled", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		e := newEngineOpts(tt, teller.PrivilegeStandard, teller.ServiceOpts{
			AccountsFile: filepath.Join("testdata", "current_accounts.txt"),
			PDFStatement: true,
		}, "1", "100.00")
		_, err := e.svc.Withdrawal()
		reqrd.NoError(err)
		reqrd.NoError(e.svc.Logout())

		pdfs, err := filepath.Glob(filepath.Join(e.dir, "*.pdf"))
		reqrd.NoError(err)
		reqrd.Len(pdfs, 1)
		raw, err := os.ReadFile(pdfs[0])
		reqrd.NoError(err)
		as.True(strings.HasPrefix(string(raw), "%PDF"))
	})
}
