package teller

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// seed account line layout: NUMBER(5) NAME(20) STATUS(1) BALANCE(8)
const (
	seedLineLen     = 34
	seedEOFSentinel = "00000 END_OF_FILE"
)

// LoadAccounts reads the fixed-width seed account file into a fresh
// in-memory snapshot. A missing file is not an error; the session starts
// with an empty account set and a warning. Malformed lines are skipped
// with a warning. The "00000 END_OF_FILE" sentinel line terminates the
// file. The seed format carries no plan field; loaded accounts default to
// StudentPlan.
func LoadAccounts(path string, log *zerolog.Logger) (*MemoryRepository, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("accounts file missing, starting with an empty account set")
		return NewMemoryRepository(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	repo := NewMemoryRepository()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, seedEOFSentinel) {
			break
		}
		acct, perr := parseAccountLine(line)
		if perr != nil {
			log.Warn().Err(perr).Str("line", line).Msg("skipping malformed account line")
			continue
		}
		if ierr := repo.Insert(acct); ierr != nil {
			log.Warn().Err(ierr).Int("number", acct.Number).Msg("skipping duplicate account line")
		}
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	return repo, nil
}

func parseAccountLine(line string) (Account, error) {
	if len(line) < seedLineLen {
		return Account{}, fmt.Errorf("line shorter than %d chars", seedLineLen)
	}
	number, err := strconv.Atoi(line[0:5])
	if err != nil {
		return Account{}, fmt.Errorf("account number: %w", err)
	}
	holder := strings.TrimRight(line[5:25], " ")

	var status Status
	switch line[25] {
	case 'A':
		status = StatusActive
	case 'D':
		status = StatusDisabled
	default:
		return Account{}, fmt.Errorf("unknown status %q", line[25])
	}

	balance, err := decimal.NewFromString(line[26:34])
	if err != nil {
		return Account{}, fmt.Errorf("balance: %w", err)
	}
	if balance.IsNegative() {
		return Account{}, fmt.Errorf("negative balance %s", balance)
	}

	return Account{
		Number:  number,
		Holder:  holder,
		Status:  status,
		Balance: balance,
		Plan:    StudentPlan,
	}, nil
}
