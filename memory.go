package teller

import (
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryRepository holds the session's account snapshot in memory behind a
// single mutex. Only one command is in flight per session today; the lock
// keeps each check-then-mutate step atomic so a multi-session extension
// does not reintroduce lost updates.
type MemoryRepository struct {
	mu    sync.Mutex
	accts map[int]*Account
}

var (
	_ Repository = (*MemoryRepository)(nil)
)

func NewMemoryRepository(accts ...Account) *MemoryRepository {
	m := &MemoryRepository{
		accts: make(map[int]*Account, len(accts)),
	}
	for _, a := range accts {
		cp := a
		m.accts[a.Number] = &cp
	}
	return m
}

// find returns the live record for (number, holder). Callers must hold mu.
func (m *MemoryRepository) find(number int, holder string) (*Account, error) {
	a, ok := m.accts[number]
	if !ok || a.Holder != holder {
		return nil, ErrAccountNotFound{Number: number, Holder: holder}
	}
	return a, nil
}

func (m *MemoryRepository) Lookup(number int, holder string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.find(number, holder)
	if err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepository) LookupByNumber(number int) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accts[number]
	if !ok {
		return nil, ErrAccountNotFound{Number: number}
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepository) Insert(acct Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accts[acct.Number]; ok {
		return ErrDuplicateAccount{Number: acct.Number}
	}
	cp := acct
	m.accts[acct.Number] = &cp
	return nil
}

func (m *MemoryRepository) Remove(number int, holder string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.find(number, holder); err != nil {
		return err
	}
	delete(m.accts, number)
	return nil
}

func (m *MemoryRepository) AdjustBalance(number int, holder string, delta decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.find(number, holder)
	if err != nil {
		return decimal.Zero, err
	}
	next := a.Balance.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}
	a.Balance = next
	return next, nil
}

func (m *MemoryRepository) SetStatus(number int, holder string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.find(number, holder)
	if err != nil {
		return err
	}
	a.Status = status
	return nil
}

func (m *MemoryRepository) TogglePlan(number int, holder string) (Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.find(number, holder)
	if err != nil {
		return StudentPlan, err
	}
	if a.Plan == StudentPlan {
		a.Plan = NonStudentPlan
	} else {
		a.Plan = StudentPlan
	}
	return a.Plan, nil
}

// Transfer performs the debit and credit in one critical section. The
// existence and funds checks are re-verified under the lock so the pair
// either happens together or not at all. from == to is permitted and nets
// to zero.
func (m *MemoryRepository) Transfer(fromNumber int, holder string, toNumber int, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, err := m.find(fromNumber, holder)
	if err != nil {
		return ErrSourceNotFound
	}
	dst, ok := m.accts[toNumber]
	if !ok {
		return ErrDestinationNotFound
	}
	if src.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientSourceFunds
	}
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)
	return nil
}

func (m *MemoryRepository) NextNumber() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for n := range m.accts {
		if n > max {
			max = n
		}
	}
	return max + 1
}

// Len reports the number of records in the snapshot.
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accts)
}
