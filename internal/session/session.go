// Package session wires the registry, journal and ledger into one
// explicit application-state object. Each CLI invocation opens a
// session, authenticates, runs one operation and saves the snapshot;
// there is no global mutable state and no background processing.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"pennywise/internal/config"
	"pennywise/internal/journal"
	"pennywise/internal/ledger"
	"pennywise/internal/model"
	"pennywise/internal/registry"
)

// Session holds the loaded application state for one invocation.
type Session struct {
	Registry *registry.Registry
	Journal  *journal.Journal
	Ledger   *ledger.Ledger
	// Account is the authenticated account, nil before Login.
	Account *model.Account

	DataDir      string
	snapshotPath string
}

// Open resolves the data directory, loads the account snapshot and
// binds the journal.
func Open() (*Session, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	snapshotPath := config.SnapshotPath(dataDir)

	reg, err := registry.Load(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	slog.Debug("loaded account snapshot", "path", snapshotPath, "accounts", reg.Len())

	jnl := journal.New(config.JournalPath(dataDir))
	return &Session{
		Registry:     reg,
		Journal:      jnl,
		Ledger:       ledger.New(jnl),
		DataDir:      dataDir,
		snapshotPath: snapshotPath,
	}, nil
}

// Login authenticates the account, replays its overdue recurring
// charges as of now, and persists the snapshot when the replay changed
// anything. A failed authentication returns a rejection result with no
// state touched.
func (s *Session) Login(username, password string, now time.Time) (model.Result, error) {
	account, res := s.Registry.Authenticate(username, password)
	if res.Rejected() {
		return res, nil
	}
	s.Account = account

	summary, err := s.Ledger.ReplayRecurring(account, now)
	if err != nil {
		// In-memory state already moved; persist what we have and
		// surface the journal failure.
		if serr := s.Save(); serr != nil {
			err = fmt.Errorf("%w (snapshot save also failed: %v)", err, serr)
		}
		return res, err
	}
	if summary.Total() > 0 {
		slog.Info("caught up recurring expenses",
			"username", account.Username,
			"charged", summary.Charged,
			"failed", summary.Failed)
		if err := s.Save(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Save persists the registry snapshot. Callers invoke it after every
// mutating operation; a failure leaves in-memory state ahead of disk,
// which is reported, not rolled back.
func (s *Session) Save() error {
	return registry.Save(s.Registry, s.snapshotPath)
}
