package importer

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"contact-importer/internal/logging"
)

// Default run bounds, overridable per Service.
const (
	defaultTimeout   = 10 * time.Minute
	defaultRetention = 30 * time.Minute
)

// Phase indicates where an import currently is.
type Phase string

const (
	PhaseProcessing Phase = "processing"
	PhaseComplete   Phase = "complete"
	PhaseFailed     Phase = "failed"
)

// Status is a point-in-time snapshot of one import.
type Status struct {
	ImportID string  `json:"import_id"`
	Phase    Phase   `json:"status"`
	Result   *Result `json:"result,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Service dispatches import runs out-of-band. Start returns an ID
// immediately; the run proceeds in its own goroutine with its own
// timeout context, so the triggering caller never blocks on it.
// Imports from different users run in independent goroutines.
type Service struct {
	importer *Importer

	// Timeout bounds one run; Retention is how long a finished import
	// stays queryable. Set before the first Start.
	Timeout   time.Duration
	Retention time.Duration

	mu      sync.RWMutex
	imports map[string]*activeImport
}

type activeImport struct {
	id      string
	ownerID uuid.UUID

	mu     sync.Mutex
	phase  Phase
	result *Result
	errMsg string

	done chan struct{}
}

// NewService creates a Service around the given importer.
func NewService(imp *Importer) *Service {
	return &Service{
		importer:  imp,
		Timeout:   defaultTimeout,
		Retention: defaultRetention,
		imports:   make(map[string]*activeImport),
	}
}

// Start accepts a file's contents and kicks off the import in the
// background, returning the import ID for later status lookups.
func (s *Service) Start(fileData []byte, mapping ColumnMapping, ownerID uuid.UUID) string {
	run := &activeImport{
		id:      uuid.New().String(),
		ownerID: ownerID,
		phase:   PhaseProcessing,
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	s.imports[run.id] = run
	s.mu.Unlock()

	go s.process(run, fileData, mapping)

	return run.id
}

func (s *Service) process(run *activeImport, fileData []byte, mapping ColumnMapping) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer func() {
		cancel()
		close(run.done)
		s.cleanup(run.id, s.Retention)
	}()

	log := logging.FromContext(ctx).With("import_id", run.id)
	log.Info("import started", "owner_id", run.ownerID.String())

	result, err := s.importer.Run(ctx, bytes.NewReader(fileData), mapping, run.ownerID)

	run.mu.Lock()
	defer run.mu.Unlock()
	run.result = result
	if err != nil {
		run.phase = PhaseFailed
		run.errMsg = err.Error()
		log.Error("import failed", "error", err)
		return
	}
	run.phase = PhaseComplete
}

// Status returns the current state of an import without blocking.
func (s *Service) Status(importID string) (Status, error) {
	run, err := s.lookup(importID)
	if err != nil {
		return Status{}, err
	}
	return run.snapshot(), nil
}

// Result blocks until the import completes or ctx expires, then
// returns the final status.
func (s *Service) Result(ctx context.Context, importID string) (Status, error) {
	run, err := s.lookup(importID)
	if err != nil {
		return Status{}, err
	}
	select {
	case <-run.done:
		return run.snapshot(), nil
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}

func (s *Service) lookup(importID string) (*activeImport, error) {
	s.mu.RLock()
	run, ok := s.imports[importID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("import not found: %s", importID)
	}
	return run, nil
}

// cleanup drops a finished import from tracking after a delay.
func (s *Service) cleanup(importID string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.imports, importID)
		s.mu.Unlock()
	})
}

func (run *activeImport) snapshot() Status {
	run.mu.Lock()
	defer run.mu.Unlock()
	return Status{
		ImportID: run.id,
		Phase:    run.phase,
		Result:   run.result,
		Error:    run.errMsg,
	}
}
