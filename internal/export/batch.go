package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// BatchIDGenerator produces batch identifiers for export runs.
type BatchIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 batch IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, making batch
// IDs sortable by creation time across export runs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined batch IDs for testing.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal
// mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns IDs in order.
//
// Panics when all IDs have been consumed - fail fast on test
// misconfiguration.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// AuditExportResult records the outcome of exporting one audit within a
// batch.
type AuditExportResult struct {
	AuditID string `json:"audit_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchResult summarizes one export batch.
type BatchResult struct {
	BatchID    string              `json:"batch_id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Succeeded  int                 `json:"succeeded"`
	Failed     int                 `json:"failed"`
	Results    []AuditExportResult `json:"results"`
}

// Exporter transforms audits and writes them to the warehouse in
// batches.
type Exporter struct {
	warehouse *Warehouse
	gen       BatchIDGenerator
	clock     func() time.Time
	logger    *slog.Logger
}

// NewExporter creates an exporter over a warehouse. A nil generator
// defaults to UUIDv7 batch IDs; a nil clock defaults to time.Now; a nil
// logger discards nothing but logs to the default handler.
func NewExporter(w *Warehouse, gen BatchIDGenerator, clock func() time.Time, logger *slog.Logger) *Exporter {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{warehouse: w, gen: gen, clock: clock, logger: logger}
}

// ExportBatch transforms and replaces each audit in the warehouse.
//
// Per-audit failure isolation: one audit's error is captured into its
// result and the batch continues. The batch result lists every audit in
// input order. ExportBatch itself only fails on context cancellation.
func (e *Exporter) ExportBatch(ctx context.Context, audits []*audit.NormalizedAudit) (BatchResult, error) {
	batch := BatchResult{
		BatchID:   e.gen.Generate(),
		StartedAt: e.clock().UTC(),
		Results:   make([]AuditExportResult, 0, len(audits)),
	}

	e.logger.Info("export batch started",
		"batch_id", batch.BatchID,
		"audits", len(audits),
	)

	for _, a := range audits {
		if err := ctx.Err(); err != nil {
			return batch, fmt.Errorf("export batch %s: %w", batch.BatchID, err)
		}

		var auditID string
		if a != nil {
			auditID = a.AuditID
		}
		result := AuditExportResult{AuditID: auditID, Success: true}
		if err := e.exportOne(ctx, a); err != nil {
			result.Success = false
			result.Error = err.Error()
			batch.Failed++
			e.logger.Error("audit export failed",
				"batch_id", batch.BatchID,
				"audit_id", auditID,
				"error", err,
			)
		} else {
			batch.Succeeded++
		}
		batch.Results = append(batch.Results, result)
	}

	batch.FinishedAt = e.clock().UTC()
	e.logger.Info("export batch finished",
		"batch_id", batch.BatchID,
		"succeeded", batch.Succeeded,
		"failed", batch.Failed,
	)
	return batch, nil
}

func (e *Exporter) exportOne(ctx context.Context, a *audit.NormalizedAudit) error {
	if a == nil {
		return fmt.Errorf("nil audit")
	}
	if a.AuditID == "" {
		return fmt.Errorf("audit has no id")
	}
	rows := Transform(a, e.clock())
	return e.warehouse.Replace(ctx, rows)
}
