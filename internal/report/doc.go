// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package report renders recommendation results for a terminal (genre bar
// chart, aligned tables) and exports them as CSV.
package report
