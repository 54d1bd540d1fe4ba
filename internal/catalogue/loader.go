// Package catalogue loads delimited ISC-GEM style earthquake catalogue
// files into the in-memory table the statistics pipeline runs on.
package catalogue

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
)

// DefaultHeaderSkip is the number of metadata preamble lines before the
// header row in ISC-GEM main catalogue releases.
const DefaultHeaderSkip = 61

// Load reads a catalogue file, skipping headerSkip metadata lines, and
// returns the parsed catalogue in file order.
//
// A header missing any required column fails with
// *domain.MalformedCatalogueError. Rows whose date, coordinates, depth, or
// magnitude do not parse are dropped and counted in Catalogue.Warnings;
// they are never silently coerced.
func Load(path string, headerSkip int, logger *slog.Logger) (*domain.Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	cat, err := load(f, path, headerSkip, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("catalogue loaded",
		"path", path,
		"events", len(cat.Records),
		"dropped_rows", cat.Warnings,
	)
	return cat, nil
}

func load(r io.Reader, path string, headerSkip int, logger *slog.Logger) (*domain.Catalogue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < headerSkip; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("catalogue %s: ended before %d-line preamble", path, headerSkip)
		}
	}

	cols, err := readHeader(scanner, path)
	if err != nil {
		return nil, err
	}

	cat := &domain.Catalogue{Path: path, LoadedAt: domain.Now()}
	line := headerSkip + 1
	for scanner.Scan() {
		line++
		row := scanner.Text()
		if strings.TrimSpace(row) == "" {
			continue
		}

		fields, err := splitRow(row)
		if err != nil {
			cat.Warnings++
			logger.Warn("dropping unparsable row", "line", line, "error", err)
			continue
		}

		rec, err := domain.ParseRow(cols, fields)
		if err != nil {
			cat.Warnings++
			logger.Warn("dropping unparsable row", "line", line, "error", err)
			continue
		}
		cat.Records = append(cat.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}

	return cat, nil
}

// readHeader consumes the header row and resolves required column indexes.
func readHeader(scanner *bufio.Scanner, path string) (map[string]int, error) {
	for scanner.Scan() {
		row := scanner.Text()
		if strings.TrimSpace(row) == "" {
			continue
		}

		fields, err := splitRow(row)
		if err != nil {
			return nil, fmt.Errorf("catalogue %s: parse header: %w", path, err)
		}

		cols := make(map[string]int, len(fields))
		for i, name := range fields {
			cols[domain.NormalizeColumn(name)] = i
		}

		var missing []string
		for _, name := range domain.RequiredColumns {
			if _, ok := cols[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, &domain.MalformedCatalogueError{Path: path, Missing: missing}
		}
		return cols, nil
	}

	return nil, &domain.MalformedCatalogueError{Path: path, Missing: domain.RequiredColumns}
}

// splitRow parses one comma-delimited line. csv.Reader handles quoting;
// field whitespace is left for the row parser to trim.
func splitRow(row string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(row))
	cr.TrimLeadingSpace = true
	return cr.Read()
}
