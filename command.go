package teller

import (
	"strings"
)

// Command is the closed set of console command names. Dispatch goes through
// the enum rather than strings so an unrecognized name is an error at the
// parse boundary, never a crash.
type Command int

const (
	CmdLogin Command = iota
	CmdLogout
	CmdWithdrawal
	CmdTransfer
	CmdPaybill
	CmdDeposit
	CmdCreate
	CmdDelete
	CmdDisable
	CmdChangePlan
)

// ParseCommand matches a raw input line to a command, case-insensitively
// after trimming.
func ParseCommand(raw string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "login":
		return CmdLogin, nil
	case "logout":
		return CmdLogout, nil
	case "withdrawal":
		return CmdWithdrawal, nil
	case "transfer":
		return CmdTransfer, nil
	case "paybill":
		return CmdPaybill, nil
	case "deposit":
		return CmdDeposit, nil
	case "create":
		return CmdCreate, nil
	case "delete":
		return CmdDelete, nil
	case "disable":
		return CmdDisable, nil
	case "changeplan":
		return CmdChangePlan, nil
	}
	return 0, ErrUnknownCommand{Name: strings.TrimSpace(raw)}
}

// Router turns one command line at a time into a Service call and returns
// the validated record, or nil plus an error. Errors never terminate the
// session; the caller reports them and keeps reading.
type Router struct {
	svc Service
}

func NewRouter(svc Service) *Router {
	return &Router{svc: svc}
}

func (r *Router) Exec(line string) (*Entry, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return nil, err
	}
	switch cmd {
	case CmdLogin:
		return r.svc.Login()
	case CmdLogout:
		return nil, r.svc.Logout()
	case CmdWithdrawal:
		return r.svc.Withdrawal()
	case CmdTransfer:
		return r.svc.Transfer()
	case CmdPaybill:
		return r.svc.Paybill()
	case CmdDeposit:
		return r.svc.Deposit()
	case CmdCreate:
		return r.svc.Create()
	case CmdDelete:
		return r.svc.Delete()
	case CmdDisable:
		return r.svc.Disable()
	case CmdChangePlan:
		return r.svc.ChangePlan()
	}
	return nil, ErrUnknownCommand{Name: line}
}
