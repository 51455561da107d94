package teller

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// TxnKind is the closed set of transaction types. Wire codes exist only at
// the encoding boundary; everything else works with the enum.
type TxnKind int

const (
	TxnLogout TxnKind = iota
	TxnWithdrawal
	TxnTransfer
	TxnPaybill
	TxnDeposit
	TxnCreate
	TxnDelete
	TxnDisable
	TxnChangePlan
	TxnLogin
)

// Code returns the 2-digit code used in the transaction log file.
func (k TxnKind) Code() string {
	switch k {
	case TxnLogout:
		return "00"
	case TxnWithdrawal:
		return "01"
	case TxnTransfer:
		return "02"
	case TxnPaybill:
		return "03"
	case TxnDeposit:
		return "04"
	case TxnCreate:
		return "05"
	case TxnDelete:
		return "06"
	case TxnDisable:
		return "07"
	case TxnChangePlan:
		return "08"
	case TxnLogin:
		return "10"
	}
	return "??"
}

func (k TxnKind) String() string {
	switch k {
	case TxnLogout:
		return "logout"
	case TxnWithdrawal:
		return "withdrawal"
	case TxnTransfer:
		return "transfer"
	case TxnPaybill:
		return "paybill"
	case TxnDeposit:
		return "deposit"
	case TxnCreate:
		return "create"
	case TxnDelete:
		return "delete"
	case TxnDisable:
		return "disable"
	case TxnChangePlan:
		return "changeplan"
	case TxnLogin:
		return "login"
	}
	return "unknown"
}

// Entry is one validated transaction record. Financial entries built via
// NewEntry carry the name left-justified to 20 chars and the misc field cut
// to 2; the logout sentinel keeps its raw name and is right-aligned by the
// encoder instead. Misc holds the paybill company code, the zero-padded
// source account for transfers, otherwise "00".
type Entry struct {
	Kind   TxnKind
	Name   string
	Number int
	Amount decimal.Decimal
	Misc   string
}

// NewEntry normalizes the holder name and misc field to their log widths.
// The full misc value is kept on the record when it is wider than the
// 2-char file field (transfer source numbers); Encode truncates.
func NewEntry(kind TxnKind, name string, number int, amount decimal.Decimal, misc string) Entry {
	if len(name) > 20 {
		name = name[:20]
	}
	name = name + strings.Repeat(" ", 20-len(name))
	if misc == "" {
		misc = "00"
	}
	return Entry{
		Kind:   kind,
		Name:   name,
		Number: number,
		Amount: amount,
		Misc:   misc,
	}
}

// Encode renders the fixed-width log line: CODE(2) NAME(20) NUMBER(5)
// AMOUNT(8) MISC(2), fields right-aligned, amount zero-padded DDDDD.DD.
func (e Entry) Encode() string {
	misc := e.Misc
	if len(misc) > 2 {
		misc = misc[:2]
	}
	return fmt.Sprintf("%2s %20s %05d %08s %2s",
		e.Kind.Code(), e.Name, e.Number, e.Amount.StringFixed(2), misc)
}

// Ledger is the session's append-only transaction log. Entries are never
// mutated after append; the whole log is flushed once at logout.
type Ledger struct {
	entries []Entry
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
}

func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// WriteFile flushes the log, one encoded line per entry, to a
// timestamp-named file in dir and returns the path. Naming is second
// granularity; two logouts within the same second collide. Known
// limitation, kept because the name is part of the external interface.
func (l *Ledger) WriteFile(dir string) (string, error) {
	stamp := time.Now().Format("01-02-2006 15-04-05")
	path := filepath.Join(dir, stamp+".txt")

	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.Encode())
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteStatement renders a human-readable PDF of the session's log.
func (l *Ledger) WriteStatement(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Session Transaction Statement")
	pdf.Ln(12)

	pdf.SetFont("Courier", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%-12s %-20s %-7s %10s %-5s", "TRANSACTION", "HOLDER", "ACCOUNT", "AMOUNT", "MISC"))
	pdf.Ln(7)
	pdf.SetFont("Courier", "", 10)
	for _, e := range l.entries {
		line := fmt.Sprintf("%-12s %-20s %05d   %10s %-5s",
			e.Kind.String(), strings.TrimRight(e.Name, " "), e.Number, e.Amount.StringFixed(2), e.Misc)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	return pdf.Output(w)
}
