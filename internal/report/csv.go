// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{
	"recommendation_rank",
	"title",
	"box_office_rank",
	"sales",
	"genre",
	"age_group_mean_rating",
}

// WriteCSV writes the header and one row per recommendation. A missing
// mean rating is an empty cell.
func WriteCSV(w io.Writer, recs []models.Recommendation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range recs {
		r := &recs[i]
		mean := ""
		if r.Score != nil {
			mean = strconv.FormatFloat(*r.Score, 'f', -1, 64)
		}
		row := []string{
			strconv.Itoa(r.Position),
			r.Title,
			strconv.Itoa(r.Rank),
			strconv.FormatInt(r.Sales, 10),
			r.Genre,
			mean,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Position, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes recs to path, replacing any previous export. Missing
// parent directories are created. The file is written next to path and
// renamed into place.
func ExportCSV(path string, recs []models.Recommendation) (err error) {
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.ExportWrites.WithLabelValues(result).Inc()
	}()

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return fmt.Errorf("create export file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = WriteCSV(tmp, recs); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod export file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("move export into place: %w", err)
	}

	logging.Info().Str("path", path).Int("rows", len(recs)).Msg("Recommendations exported")
	return nil
}
