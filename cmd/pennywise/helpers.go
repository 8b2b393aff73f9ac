package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"pennywise/internal/cli"
	"pennywise/internal/model"
	"pennywise/internal/session"
)

// openSession loads application state without authenticating. Used by
// register, which has no account yet.
func openSession() (*session.Session, error) {
	return session.Open()
}

// loginSession opens a session and authenticates the --user account,
// prompting for the password (PENNYWISE_PASSWORD skips the prompt).
// Login replays overdue recurring charges and persists the snapshot
// before the command's own operation runs.
func loginSession() (*session.Session, error) {
	s, err := session.Open()
	if err != nil {
		return nil, err
	}

	username := viper.GetString("user")
	if username == "" {
		return nil, fmt.Errorf("no account specified: use --user or set PENNYWISE_USER")
	}

	password := viper.GetString("password")
	if password == "" {
		password, err = cli.ReadPassword("Password:")
		if err != nil {
			return nil, err
		}
	}

	res, err := s.Login(username, password, time.Now())
	if res.Rejected() {
		return nil, fmt.Errorf("%s", res.Message)
	}
	if err != nil {
		// Recurring charges were applied in memory but could not all be
		// journaled; keep going so the user's operation still runs.
		slog.Warn("recurring catch-up hit a storage error", "error", err)
	}
	return s, nil
}

// finishMutation prints the operation result and persists the snapshot
// whenever state changed, warnings included. Rejections persist
// nothing. A journal-append failure surfaces after the save: in-memory
// state is already ahead of the log and is never rolled back.
func finishMutation(s *session.Session, res model.Result, journalErr error) error {
	fmt.Println(cli.FormatResult(res))
	if res.Mutated() {
		if err := s.Save(); err != nil {
			return fmt.Errorf("operation applied but snapshot save failed: %w", err)
		}
	}
	if journalErr != nil {
		return fmt.Errorf("operation applied but journal append failed: %w", journalErr)
	}
	return nil
}

// parseAmount parses a positive-or-negative decimal CLI argument.
// Business rules on sign live in the ledger, not here.
func parseAmount(arg string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", arg, err)
	}
	return amount, nil
}
