// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"sort"

	"github.com/tomtom215/marquee/internal/models"
)

// Rank attaches the bucket mean for each entry's genre and orders the
// entries by (mean, sales) descending. Entries without a mean sort after all
// scored entries, by sales. Ties keep box office order. Positions run 1..n.
func Rank(entries []models.BoxOfficeEntry, means map[string]float64) []models.Recommendation {
	recs := make([]models.Recommendation, len(entries))
	for i, e := range entries {
		recs[i].BoxOfficeEntry = e
		dataset, ok := DatasetGenre(e.Genre)
		if !ok {
			continue
		}
		recs[i].DatasetGenre = dataset
		if mean, ok := means[dataset]; ok {
			m := mean
			recs[i].Score = &m
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return ranksBefore(&recs[i], &recs[j])
	})

	for i := range recs {
		recs[i].Position = i + 1
	}
	return recs
}

func ranksBefore(a, b *models.Recommendation) bool {
	switch {
	case a.Score != nil && b.Score == nil:
		return true
	case a.Score == nil && b.Score != nil:
		return false
	case a.Score != nil && *a.Score != *b.Score:
		return *a.Score > *b.Score
	default:
		return a.Sales > b.Sales
	}
}
