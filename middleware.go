package teller

import (
	"context"

	"golang.org/x/sync/semaphore"
)

type Middleware func(Service) Service

// authMiddleware enforces the session-state preconditions shared by every
// transaction: all non-login transactions require an authenticated session,
// and the four account-management transactions require admin privilege.
// Checks run before the wrapped handler prompts for anything.
type authMiddleware struct {
	next Service
	sess *Session
}

var (
	_ Service = (*authMiddleware)(nil)
)

func NewAuthMiddleware(sess *Session) Middleware {
	return func(next Service) Service {
		return &authMiddleware{
			next: next,
			sess: sess,
		}
	}
}

func (a *authMiddleware) requireLogin() error {
	if a.sess.Privilege == PrivilegeNone {
		return ErrNotLoggedIn
	}
	return nil
}

func (a *authMiddleware) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if a.sess.Privilege != PrivilegeAdmin {
		return ErrPrivilegeRequired
	}
	return nil
}

func (a *authMiddleware) Login() (*Entry, error) {
	return a.next.Login()
}

func (a *authMiddleware) Logout() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	return a.next.Logout()
}

func (a *authMiddleware) Withdrawal() (*Entry, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	return a.next.Withdrawal()
}

func (a *authMiddleware) Transfer() (*Entry, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	return a.next.Transfer()
}

func (a *authMiddleware) Paybill() (*Entry, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	return a.next.Paybill()
}

func (a *authMiddleware) Deposit() (*Entry, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	return a.next.Deposit()
}

func (a *authMiddleware) Create() (*Entry, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.next.Create()
}

func (a *authMiddleware) Delete() (*Entry, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.next.Delete()
}

func (a *authMiddleware) Disable() (*Entry, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.next.Disable()
}

func (a *authMiddleware) ChangePlan() (*Entry, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	return a.next.ChangePlan()
}

// gateMiddleware serializes transactions through a weighted semaphore so
// that validate-and-mutate is a single atomic step. One session means one
// caller today; the gate keeps a future multi-session extension from
// reintroducing lost updates.
type gateMiddleware struct {
	next Service
	sem  *semaphore.Weighted
}

var (
	_ Service = (*gateMiddleware)(nil)
)

func NewGateMiddleware() Middleware {
	return func(next Service) Service {
		return &gateMiddleware{
			next: next,
			sem:  semaphore.NewWeighted(1),
		}
	}
}

func (g *gateMiddleware) Login() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Login()
}

func (g *gateMiddleware) Logout() error {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return g.next.Logout()
}

func (g *gateMiddleware) Withdrawal() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Withdrawal()
}

func (g *gateMiddleware) Transfer() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Transfer()
}

func (g *gateMiddleware) Paybill() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Paybill()
}

func (g *gateMiddleware) Deposit() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Deposit()
}

func (g *gateMiddleware) Create() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Create()
}

func (g *gateMiddleware) Delete() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Delete()
}

func (g *gateMiddleware) Disable() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Disable()
}

func (g *gateMiddleware) ChangePlan() (*Entry, error) {
	if err := g.sem.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.ChangePlan()
}
