// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tomtom215/marquee/internal/models"
)

// WriteTable prints the ranked recommendations as aligned columns.
func WriteTable(w io.Writer, name string, recs []models.Recommendation) error {
	if _, err := fmt.Fprintf(w, "Recommended movies for %s:\n\n", name); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tBOX OFFICE RANK\tSALES\tGENRE\tAGE GROUP MEAN")
	for i := range recs {
		r := &recs[i]
		mean := "-"
		if r.Score != nil {
			mean = fmt.Sprintf("%.2f", *r.Score)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\n", r.Position, r.Title, r.Rank, r.Sales, r.Genre, mean)
	}
	return tw.Flush()
}

// WriteBoxOffice prints yesterday's unranked list: title, rank, sales and genre.
func WriteBoxOffice(w io.Writer, targetDate string, entries []models.BoxOfficeEntry) error {
	if _, err := fmt.Fprintf(w, "Daily box office for %s:\n\n", targetDate); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTITLE\tSALES\tGENRE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", e.Rank, e.Title, e.Sales, e.Genre)
	}
	return tw.Flush()
}
