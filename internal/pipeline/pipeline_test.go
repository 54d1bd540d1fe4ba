package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
	"github.com/couchcryptid/quake-catalogue-service/internal/observability"
	"github.com/couchcryptid/quake-catalogue-service/internal/pipeline"
)

func event(mag float64, ts time.Time) domain.EventRecord {
	return domain.EventRecord{Time: ts, Magnitude: domain.RoundMagnitude(mag)}
}

// twoYearSelection spreads magnitudes [3,3,3,4,4,5] evenly across exactly
// two calendar years of span (first event in 2000, last in 2002).
func twoYearSelection() []domain.EventRecord {
	mags := []float64{3.0, 3.0, 3.0, 4.0, 4.0, 5.0}
	start := time.Date(2000, time.February, 1, 0, 0, 0, 0, time.UTC)

	evs := make([]domain.EventRecord, len(mags))
	for i, m := range mags {
		evs[i] = event(m, start.AddDate(0, i*6, 0))
	}
	return evs
}

func newPipeline(records []domain.EventRecord) *pipeline.Pipeline {
	cat := &domain.Catalogue{Records: records, LoadedAt: time.Now()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return pipeline.New(cat, logger, observability.NewMetricsForTesting())
}

func TestCompute_TwoYearScenario(t *testing.T) {
	p := newPipeline(twoYearSelection())

	stats, err := p.Compute(context.Background(), twoYearSelection())
	require.NoError(t, err)

	// Mc is the mode: three events at 3.0.
	assert.Equal(t, 3.0, stats.Parameters.CompletenessMagnitude)
	assert.Equal(t, 6, stats.Report.EventCount)

	// Grid runs 3.0..5.0 in 0.1 steps.
	require.Len(t, stats.Observed, 21)
	assert.Equal(t, 3.0, stats.Observed[0].Magnitude)
	assert.Equal(t, 5.0, stats.Observed[20].Magnitude)

	// Exceedance counts over the two-year span: six events at or above
	// 3.0, three at or above 4.0 (both 4.0s and the 5.0), one at 5.0.
	assert.Equal(t, 3.0, stats.Observed[0].Frequency)
	assert.Equal(t, 1.5, stats.Observed[10].Frequency)
	assert.Equal(t, 0.5, stats.Observed[20].Frequency)

	// Monotone non-increasing throughout.
	for i := 1; i < len(stats.Observed); i++ {
		assert.LessOrEqual(t, stats.Observed[i].Frequency, stats.Observed[i-1].Frequency)
	}

	// Decaying frequency implies a positive decay rate.
	assert.Positive(t, stats.Parameters.B)
	assert.Positive(t, stats.Report.B)

	// The fitted overlay covers the full observed grid.
	require.Len(t, stats.Fitted, len(stats.Observed))
	for i := range stats.Fitted {
		assert.Equal(t, stats.Observed[i].Magnitude, stats.Fitted[i].Magnitude)
		assert.Positive(t, stats.Fitted[i].Frequency)
	}
}

func TestCompute_EmptySelection(t *testing.T) {
	p := newPipeline(twoYearSelection())

	_, err := p.Compute(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestCompute_SingleYearSelection(t *testing.T) {
	p := newPipeline(twoYearSelection())
	sel := []domain.EventRecord{
		event(4.0, time.Date(2000, time.January, 5, 0, 0, 0, 0, time.UTC)),
		event(5.0, time.Date(2000, time.December, 5, 0, 0, 0, 0, time.UTC)),
	}

	_, err := p.Compute(context.Background(), sel)

	assert.ErrorIs(t, err, domain.ErrInsufficientTimeSpan)
}

func TestCompute_SingleEvent(t *testing.T) {
	p := newPipeline(twoYearSelection())
	sel := []domain.EventRecord{
		event(6.0, time.Date(2000, time.January, 5, 0, 0, 0, 0, time.UTC)),
	}

	_, err := p.Compute(context.Background(), sel)

	assert.ErrorIs(t, err, domain.ErrInsufficientTimeSpan)
}

func TestCompute_NoPointsAboveMc(t *testing.T) {
	p := newPipeline(twoYearSelection())
	// All events share one magnitude: the grid is a single point, nothing
	// lies strictly above the mode.
	sel := []domain.EventRecord{
		event(5.0, time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC)),
		event(5.0, time.Date(2001, time.March, 1, 0, 0, 0, 0, time.UTC)),
		event(5.0, time.Date(2003, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}

	_, err := p.Compute(context.Background(), sel)

	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestCompute_StampsComputedAt(t *testing.T) {
	frozen := time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	p := newPipeline(twoYearSelection())

	stats, err := p.Compute(context.Background(), twoYearSelection())

	require.NoError(t, err)
	assert.Equal(t, frozen, stats.ComputedAt)
}

func TestComputeIndices(t *testing.T) {
	records := twoYearSelection()
	p := newPipeline(records)

	t.Run("nil means full catalogue", func(t *testing.T) {
		stats, err := p.ComputeIndices(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, len(records), stats.Report.EventCount)
	})

	t.Run("subset by index", func(t *testing.T) {
		// Everything except one 3.0: the mode and the span survive.
		stats, err := p.ComputeIndices(context.Background(), []int{0, 1, 3, 4, 5})

		require.NoError(t, err)
		assert.Equal(t, 5, stats.Report.EventCount)
		assert.Equal(t, 3.0, stats.Parameters.CompletenessMagnitude)
	})

	t.Run("out of range index", func(t *testing.T) {
		_, err := p.ComputeIndices(context.Background(), []int{0, 99})

		assert.ErrorIs(t, err, domain.ErrSelectionOutOfRange)
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := p.ComputeIndices(context.Background(), []int{-1})

		assert.ErrorIs(t, err, domain.ErrSelectionOutOfRange)
	})
}

func TestCheckReadiness(t *testing.T) {
	p := newPipeline(twoYearSelection())

	require.Error(t, p.CheckReadiness(context.Background()))

	p.WarmUp(context.Background())

	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestWarmUp_FailureIsNotFatal(t *testing.T) {
	// A single-event catalogue cannot be fitted; the service still starts
	// and simply reports not-ready.
	p := newPipeline([]domain.EventRecord{
		event(5.0, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)),
	})

	p.WarmUp(context.Background())

	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestCompute_SelectionSupersedesPrior(t *testing.T) {
	// Successive computations share no state: a failing run leaves the
	// next result untouched.
	p := newPipeline(twoYearSelection())

	first, err := p.Compute(context.Background(), twoYearSelection())
	require.NoError(t, err)

	_, err = p.Compute(context.Background(), nil)
	require.Error(t, err)

	second, err := p.Compute(context.Background(), twoYearSelection())
	require.NoError(t, err)
	assert.Equal(t, first.Parameters, second.Parameters)
	assert.Equal(t, first.Observed, second.Observed)
}
