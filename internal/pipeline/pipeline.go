// Package pipeline drives the selection-to-statistics computation: each
// selection change runs completeness estimation, frequency aggregation,
// the Gutenberg-Richter fit, and report assembly as one synchronous pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
	"github.com/couchcryptid/quake-catalogue-service/internal/gutenberg"
	"github.com/couchcryptid/quake-catalogue-service/internal/observability"
)

// Pipeline owns the immutable full catalogue and computes statistics for
// event selections. It holds no other state between runs: every Compute
// call produces fresh values, and per-selection failures are returned as
// typed errors for the presentation layer to handle.
type Pipeline struct {
	catalogue *domain.Catalogue
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline over a loaded catalogue.
func New(cat *domain.Catalogue, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	metrics.CatalogueEvents.Set(float64(len(cat.Records)))
	metrics.CatalogueDropped.Set(float64(cat.Warnings))

	return &Pipeline{
		catalogue: cat,
		logger:    logger,
		metrics:   metrics,
	}
}

// Catalogue returns the full event set, in file order.
func (p *Pipeline) Catalogue() *domain.Catalogue {
	return p.catalogue
}

// CheckReadiness returns nil once the pipeline has completed at least one
// successful computation, or an error describing why the service is not
// yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no statistics computed yet")
	}
	return nil
}

// WarmUp runs the full-catalogue computation once at startup so the first
// request is served from a known-good state. A catalogue too small or too
// short-lived for a fit is not fatal; the service starts and reports the
// failure per selection instead.
func (p *Pipeline) WarmUp(ctx context.Context) {
	if _, err := p.Compute(ctx, p.catalogue.Records); err != nil {
		p.logger.Warn("full-catalogue statistics unavailable", "error", err)
		return
	}
	p.logger.Info("full-catalogue statistics computed", "events", len(p.catalogue.Records))
}

// ComputeIndices resolves a selection by catalogue index and computes its
// statistics. A nil or empty index list means the full catalogue,
// mirroring a map view with nothing selected. Out-of-range indexes are an
// error: the caller sent indexes for a catalogue this service never
// loaded.
func (p *Pipeline) ComputeIndices(ctx context.Context, indices []int) (domain.SelectionStatistics, error) {
	if len(indices) == 0 {
		return p.Compute(ctx, p.catalogue.Records)
	}

	selection := make([]domain.EventRecord, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(p.catalogue.Records) {
			return domain.SelectionStatistics{}, fmt.Errorf("index %d of %d events: %w", idx, len(p.catalogue.Records), domain.ErrSelectionOutOfRange)
		}
		selection[i] = p.catalogue.Records[idx]
	}
	return p.Compute(ctx, selection)
}

// Compute runs the four statistics stages over a selection and returns
// the bundled results. Failures are domain.ErrInsufficientData or
// domain.ErrInsufficientTimeSpan, wrapped with the failing stage.
func (p *Pipeline) Compute(_ context.Context, selection []domain.EventRecord) (domain.SelectionStatistics, error) {
	start := time.Now()

	mc, err := gutenberg.EstimateCompleteness(selection)
	if err != nil {
		return domain.SelectionStatistics{}, p.reject("completeness", selection, err)
	}

	curve, err := gutenberg.AnnualExceedance(selection)
	if err != nil {
		return domain.SelectionStatistics{}, p.reject("frequency", selection, err)
	}

	params, err := gutenberg.Fit(curve, mc, len(selection))
	if err != nil {
		return domain.SelectionStatistics{}, p.reject("fit", selection, err)
	}

	stats := domain.SelectionStatistics{
		Report:     gutenberg.NewReport(params),
		Parameters: params,
		Observed:   curve,
		Fitted:     gutenberg.ReconstructCurve(params, curve.Grid()),
		ComputedAt: domain.Now(),
	}

	p.metrics.SelectionsProcessed.Inc()
	p.metrics.SelectionSize.Observe(float64(len(selection)))
	p.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	if p.ready.CompareAndSwap(false, true) {
		p.metrics.ServiceReady.Set(1)
	}

	p.logger.Debug("selection statistics computed",
		"events", len(selection),
		"mc", params.CompletenessMagnitude,
		"a", params.A,
		"b", params.B,
	)
	return stats, nil
}

// reject logs and counts a per-selection failure, preserving the sentinel
// for errors.Is at the adapter boundary.
func (p *Pipeline) reject(stage string, selection []domain.EventRecord, err error) error {
	p.metrics.ComputeErrors.WithLabelValues(errorReason(err)).Inc()
	p.logger.Info("selection rejected",
		"stage", stage,
		"events", len(selection),
		"error", err,
	)
	return fmt.Errorf("%s: %w", stage, err)
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientTimeSpan):
		return "insufficient_time_span"
	case errors.Is(err, domain.ErrInsufficientData):
		return "insufficient_data"
	default:
		return "internal"
	}
}
