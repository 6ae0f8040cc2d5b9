// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/marquee/internal/models"
)

// DefaultBarWidth is the bar length, in cells, of the best genre.
const DefaultBarWidth = 40

const barCell = "█"

// WriteGenreChart draws one horizontal bar per genre in the given order,
// scaled so the highest mean fills width cells.
func WriteGenreChart(w io.Writer, name, bucket string, scores []models.GenreScore, width int) error {
	if width <= 0 {
		width = DefaultBarWidth
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Genres preferred by %s's age group (%s):\n\n", name, bucket)

	var maxMean float64
	labelWidth := 0
	for _, s := range scores {
		if s.Mean > maxMean {
			maxMean = s.Mean
		}
		if n := utf8.RuneCountInString(s.Genre); n > labelWidth {
			labelWidth = n
		}
	}

	for _, s := range scores {
		cells := 0
		if maxMean > 0 {
			cells = int(s.Mean/maxMean*float64(width) + 0.5)
		}
		pad := labelWidth - utf8.RuneCountInString(s.Genre)
		fmt.Fprintf(bw, "  %s%s  %s %.2f\n", s.Genre, strings.Repeat(" ", pad), strings.Repeat(barCell, cells), s.Mean)
	}
	return bw.Flush()
}
