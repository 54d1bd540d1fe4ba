// Command validate runs integrity checks over a catalogue file: loadable
// header, acceptable drop rate, well-formed records, monotone exceedance
// curve, and a sane full-catalogue Gutenberg-Richter fit. It prints a
// phase-by-phase report and exits non-zero on failure.
//
// Usage:
//
//	go run ./cmd/validate -catalogue data/isc-gem-cat.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/couchcryptid/quake-catalogue-service/internal/catalogue"
	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
	"github.com/couchcryptid/quake-catalogue-service/internal/gutenberg"
	"github.com/couchcryptid/quake-catalogue-service/internal/observability"
	"github.com/couchcryptid/quake-catalogue-service/internal/pipeline"
)

// maxDropRate is the fraction of dropped rows above which a catalogue is
// considered unusable rather than merely noisy.
const maxDropRate = 0.1

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cataloguePath := flag.String("catalogue", "", "path to the catalogue file")
	headerSkip := flag.Int("header-skip", catalogue.DefaultHeaderSkip, "metadata lines before the header row")
	flag.Parse()

	if *cataloguePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*cataloguePath, *headerSkip); code != 0 {
		os.Exit(code)
	}
}

func run(path string, headerSkip int) int {
	fmt.Println("=== Catalogue Integrity Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cat, err := catalogue.Load(path, headerSkip, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load catalogue: %v\n", err)
		return 1
	}

	statsPhase, summary := checkStatistics(cat, logger)
	phases := []*phase{
		checkLoad(cat),
		checkRecords(cat),
		statsPhase,
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	if summary != "" {
		fmt.Println(summary)
	}
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed (%d events, %d rows dropped)\n",
		len(phases), len(cat.Records), cat.Warnings)
	return 0
}

func checkLoad(cat *domain.Catalogue) *phase {
	p := &phase{name: "load"}

	if len(cat.Records) == 0 {
		p.errorf("catalogue contains no usable events")
		return p
	}

	total := len(cat.Records) + cat.Warnings
	if rate := float64(cat.Warnings) / float64(total); rate > maxDropRate {
		p.errorf("drop rate %.1f%% exceeds %.0f%% (%d of %d rows)",
			rate*100, maxDropRate*100, cat.Warnings, total)
	}
	return p
}

func checkRecords(cat *domain.Catalogue) *phase {
	p := &phase{name: "records"}

	for i, rec := range cat.Records {
		if rec.Time.IsZero() {
			p.errorf("record %d: zero timestamp", i)
		}
		if math.IsNaN(rec.Magnitude) || math.IsInf(rec.Magnitude, 0) {
			p.errorf("record %d: non-finite magnitude", i)
		}
		if rec.Magnitude != domain.RoundMagnitude(rec.Magnitude) {
			p.errorf("record %d: magnitude %v not rounded to 0.1", i, rec.Magnitude)
		}
		if rec.Longitude < -180 || rec.Longitude > 180 || rec.Latitude < -90 || rec.Latitude > 90 {
			p.errorf("record %d: coordinates out of range (%v, %v)", i, rec.Longitude, rec.Latitude)
		}
		if math.IsNaN(rec.X) || math.IsInf(rec.X, 0) || math.IsNaN(rec.Y) || math.IsInf(rec.Y, 0) {
			p.errorf("record %d: non-finite projected coordinates", i)
		}
		if len(p.errors) >= 10 {
			p.errorf("further record errors suppressed")
			break
		}
	}
	return p
}

func checkStatistics(cat *domain.Catalogue, logger *slog.Logger) (*phase, string) {
	p := &phase{name: "statistics"}

	curve, err := gutenberg.AnnualExceedance(cat.Records)
	if err != nil {
		p.errorf("exceedance curve: %v", err)
		return p, ""
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Frequency > curve[i-1].Frequency {
			p.errorf("frequency increases at magnitude %.1f", curve[i].Magnitude)
		}
	}

	pl := pipeline.New(cat, logger, observability.NewMetrics())
	stats, err := pl.Compute(context.Background(), cat.Records)
	if err != nil {
		p.errorf("full-catalogue fit: %v", err)
		return p, ""
	}

	if stats.Parameters.B <= 0 {
		p.errorf("fitted b = %.3f, expected positive decay", stats.Parameters.B)
	}
	if stats.Parameters.B > 3 {
		p.errorf("fitted b = %.3f, implausibly steep for a real catalogue", stats.Parameters.B)
	}

	summary := fmt.Sprintf("full catalogue: Mc=%.1f a=%.2f b=%.2f events=%d",
		stats.Report.MagnitudeOfCompleteness, stats.Report.A, stats.Report.B, stats.Report.EventCount)
	return p, summary
}
