// Package registry holds the full in-memory collection of accounts and
// persists it as one CSV snapshot. Loading is best-effort: a malformed
// row is skipped with a diagnostic and never sinks the whole load.
// Saving is all-or-nothing via write-to-temp-then-rename.
package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"pennywise/internal/model"
)

var header = []string{"username", "password", "amount", "budget", "total_spent", "loans", "recurring", "kind"}

// Registry is the ordered collection of accounts, unique by
// case-insensitive username. It is the unit of persistence.
type Registry struct {
	accounts []*model.Account
}

// Accounts returns the accounts in registration order.
func (r *Registry) Accounts() []*model.Account {
	return r.accounts
}

// Len returns the number of accounts.
func (r *Registry) Len() int {
	return len(r.accounts)
}

// Find performs a case-insensitive username lookup. It returns nil when
// no account matches.
func (r *Registry) Find(username string) *model.Account {
	want := strings.ToLower(username)
	for _, a := range r.accounts {
		if a.Username == want {
			return a
		}
	}
	return nil
}

// Register validates and appends a new account. Usernames and passwords
// must be non-empty, the opening balance non-negative, and the username
// unused (case-insensitively).
func (r *Registry) Register(username, password string, opening decimal.Decimal, kind model.AccountKind) (*model.Account, model.Result) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, model.Reject(model.ReasonEmptyCredentials, "username and password cannot be empty")
	}
	if opening.IsNegative() {
		return nil, model.Reject(model.ReasonNegativeOpening, "opening balance cannot be negative")
	}
	if r.Find(username) != nil {
		return nil, model.Reject(model.ReasonDuplicateUsername, fmt.Sprintf("username %q already exists", strings.ToLower(username)))
	}

	a := model.NewAccount(username, password, opening, kind)
	r.accounts = append(r.accounts, a)
	return a, model.Succeed(fmt.Sprintf("account %q created", a.Username))
}

// Authenticate finds the account and checks its credentials. It never
// reveals whether the username or the password was the wrong half.
func (r *Registry) Authenticate(username, password string) (*model.Account, model.Result) {
	a := r.Find(username)
	if a == nil || !a.CredentialsValid(password) {
		return nil, model.Reject(model.ReasonBadCredentials, "invalid username or password")
	}
	return a, model.Succeed("logged in")
}

// Load reads a snapshot file. A missing file yields an empty registry.
// Rows with the wrong column count, non-numeric fields or a malformed
// recurring encoding are skipped individually.
func Load(path string) (*Registry, error) {
	r := &Registry{}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("no account snapshot found, starting empty", "path", path)
			return r, nil
		}
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			// The reader resumes at the next line, so one mangled row
			// never costs the rest of the snapshot.
			slog.Warn("skipping unparseable snapshot row", "row", i+1, "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		a, err := parseRow(row)
		if err != nil {
			slog.Warn("skipping malformed snapshot row", "row", i+1, "error", err)
			continue
		}
		if r.Find(a.Username) != nil {
			slog.Warn("skipping duplicate username in snapshot", "row", i+1, "username", a.Username)
			continue
		}
		r.accounts = append(r.accounts, a)
	}
	return r, nil
}

// Save serializes every account as one row and atomically replaces the
// snapshot file, so a crash mid-write cannot corrupt the previous good
// copy.
func Save(r *Registry, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	for _, a := range r.accounts {
		row := []string{
			a.Username,
			a.Password,
			a.Balance.String(),
			a.Budget.String(),
			a.TotalSpent.String(),
			a.Loans.String(),
			model.EncodeRecurring(a.Recurring),
			string(a.Kind),
		}
		if err := w.Write(row); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// parseRow decodes one snapshot row. Older snapshots have 7 columns and
// no kind; those load as standard accounts.
func parseRow(row []string) (*model.Account, error) {
	if len(row) != 7 && len(row) != 8 {
		return nil, fmt.Errorf("want 7 or 8 columns, got %d", len(row))
	}

	balance, err := decimal.NewFromString(row[2])
	if err != nil {
		return nil, fmt.Errorf("bad balance %q: %w", row[2], err)
	}
	budget, err := decimal.NewFromString(row[3])
	if err != nil {
		return nil, fmt.Errorf("bad budget %q: %w", row[3], err)
	}
	totalSpent, err := decimal.NewFromString(row[4])
	if err != nil {
		return nil, fmt.Errorf("bad total_spent %q: %w", row[4], err)
	}
	loans, err := decimal.NewFromString(row[5])
	if err != nil {
		return nil, fmt.Errorf("bad loans %q: %w", row[5], err)
	}
	recurring, err := model.DecodeRecurring(row[6])
	if err != nil {
		return nil, fmt.Errorf("bad recurring encoding: %w", err)
	}

	kind := model.KindStandard
	if len(row) == 8 {
		kind = model.ParseAccountKind(row[7])
	}

	a := model.NewAccount(row[0], row[1], balance, kind)
	a.Budget = budget
	a.TotalSpent = totalSpent
	a.Loans = loans
	a.Recurring = recurring
	return a, nil
}
