// Package journal implements the append-only transaction log. Every
// monetary event across all users lands here as one immutable CSV row;
// reporting, charting and forecasting read it back on demand.
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/model"
)

var header = []string{"username", "timestamp", "amount", "type", "category"}

// Journal appends and reads transaction records at a fixed CSV path.
// Appends assume a single process; there is no concurrent-writer
// protection.
type Journal struct {
	path string
}

// New returns a journal bound to the given file path. The file is not
// created until the first append.
func New(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal's backing file path.
func (j *Journal) Path() string {
	return j.path
}

// Append writes a single record, creating the file with a header row if
// it does not exist yet.
func (j *Journal) Append(rec model.TransactionRecord) error {
	return j.AppendAll([]model.TransactionRecord{rec})
}

// AppendAll writes a batch of records in order as one scoped append.
// Replay uses this so all occurrences of a catch-up land together.
func (j *Journal) AppendAll(recs []model.TransactionRecord) error {
	if len(recs) == 0 {
		return nil
	}

	writeHeader := false
	if _, err := os.Stat(j.path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close journal", "path", j.path, "error", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write journal header: %w", err)
		}
	}
	for _, rec := range recs {
		row := []string{
			rec.Username,
			rec.Timestamp.Format(model.TimeLayout),
			rec.Amount.String(),
			string(rec.Type),
			rec.Category,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to append journal row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush journal: %w", err)
	}
	return nil
}

// ReadUser returns all records for one user, in file (chronological
// append) order. Rows that fail to parse are skipped with a diagnostic;
// a read is best-effort and never fails wholesale on bad data.
func (j *Journal) ReadUser(username string) ([]model.TransactionRecord, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	want := strings.ToLower(username)
	var recs []model.TransactionRecord
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			// The reader resumes at the next line, so one mangled row
			// never costs the rest of the log.
			slog.Warn("skipping unparseable journal row", "row", i+1, "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read journal: %w", err)
		}
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			slog.Warn("skipping malformed journal row", "row", i+1, "error", err)
			continue
		}
		if rec.Username == want {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// ExportUser writes a per-user filtered copy of the journal, header
// included, to destPath. It reports how many records were exported.
func (j *Journal) ExportUser(username, destPath string) (int, error) {
	recs, err := j.ReadUser(username)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write export header: %w", err)
	}
	for _, rec := range recs {
		row := []string{
			rec.Username,
			rec.Timestamp.Format(model.TimeLayout),
			rec.Amount.String(),
			string(rec.Type),
			rec.Category,
		}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush export: %w", err)
	}
	return len(recs), nil
}

func parseRow(row []string) (model.TransactionRecord, error) {
	if len(row) != 5 {
		return model.TransactionRecord{}, fmt.Errorf("want 5 columns, got %d", len(row))
	}
	ts, err := time.Parse(model.TimeLayout, row[1])
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("bad timestamp %q: %w", row[1], err)
	}
	amount, err := decimal.NewFromString(row[2])
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("bad amount %q: %w", row[2], err)
	}
	return model.TransactionRecord{
		Username:  strings.ToLower(row[0]),
		Timestamp: ts,
		Amount:    amount,
		Type:      model.TxType(row[3]),
		Category:  row[4],
	}, nil
}
