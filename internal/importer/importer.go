// Package importer reads a delimited contact file row by row, runs
// each row through the validation pipeline, persists the survivors and
// routes every rejected row to the error log. One bad row never aborts
// the batch; only an unreadable table does.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"contact-importer/internal/contact"
	"contact-importer/internal/logging"
	"contact-importer/internal/store"
)

// ContextCheckInterval is how often (in rows) to check for context
// cancellation during a run.
var ContextCheckInterval = 100

// ColumnMapping maps a logical field name to the header of the source
// column that carries it. Missing or blank entries fall back to the
// logical field name itself.
type ColumnMapping map[string]string

// headerFor resolves the source header for a logical field.
func (m ColumnMapping) headerFor(field string) string {
	if h := strings.TrimSpace(m[field]); h != "" {
		return h
	}
	return field
}

// Result summarizes one finished import run.
type Result struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// Importer runs import batches against a record store and error log.
type Importer struct {
	store    store.ContactStore
	errlog   store.ErrorLog
	encoding string
}

// New creates an Importer. encoding names the source character set
// (IANA name); empty selects DefaultEncoding.
func New(st store.ContactStore, el store.ErrorLog, encoding string) *Importer {
	return &Importer{store: st, errlog: el, encoding: encoding}
}

// Run imports all rows of r for the given owner. The returned error is
// non-nil only for batch-fatal conditions: an undecodable table, a
// missing header row, or context cancellation. Per-row failures are
// written to the error log and counted in Result.Failed.
func (imp *Importer) Run(ctx context.Context, r io.Reader, mapping ColumnMapping, ownerID uuid.UUID) (*Result, error) {
	log := logging.FromContext(ctx).With("owner_id", ownerID.String())

	decoded, err := newDecodingReader(r, imp.encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}

	headerIdx := makeHeaderIndex(records[0])
	result := &Result{}

	for i, row := range records[1:] {
		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, fmt.Errorf("import cancelled at row %d: %w", i+2, err)
			}
		}

		if isEmptyRow(row) {
			continue
		}
		result.Total++

		raw := extractRow(row, headerIdx, mapping, ownerID)

		if rowHasEncodingError(row) {
			imp.reject(ctx, log, result, raw, "invalid character encoding")
			continue
		}

		build := contact.Build(raw, ownerID)
		if !build.Valid {
			imp.reject(ctx, log, result, raw, build.Errors.Join())
			continue
		}

		if err := imp.store.CreateContact(ctx, build.Contact); err != nil {
			// Commit-time rejections (uniqueness, not-null) are routed
			// exactly like validation failures.
			var fieldErrs contact.FieldErrors
			msg := err.Error()
			if errors.As(err, &fieldErrs) {
				msg = fieldErrs.Join()
			}
			imp.reject(ctx, log, result, raw, msg)
			continue
		}
		result.Created++
	}

	log.Info("import finished",
		"total", result.Total,
		"created", result.Created,
		"failed", result.Failed,
	)
	return result, nil
}

// reject writes one error-log entry and counts the failure. The log
// sink is fire-and-forget: a sink failure is logged but never stops
// the batch.
func (imp *Importer) reject(ctx context.Context, log *slog.Logger, result *Result, raw contact.RawRecord, message string) {
	result.Failed++
	if err := imp.errlog.Append(ctx, raw, message); err != nil {
		log.Warn("error log append failed", "error", err)
	}
}

// extractRow pulls the mapped columns out of one CSV row into a flat
// field mapping and attaches the owning user's identifier.
func extractRow(row []string, headerIdx map[string]int, mapping ColumnMapping, ownerID uuid.UUID) contact.RawRecord {
	raw := make(contact.RawRecord, len(contact.Fields)+1)
	for _, field := range contact.Fields {
		header := strings.ToLower(mapping.headerFor(field))
		if pos, ok := headerIdx[header]; ok && pos < len(row) {
			raw[field] = strings.TrimSpace(row[pos])
		} else {
			raw[field] = ""
		}
	}
	raw["user_id"] = ownerID.String()
	return raw
}

// makeHeaderIndex maps lowercased header names to column positions.
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
