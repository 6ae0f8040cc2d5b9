// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the data structures shared across Marquee.

Model Categories:

 1. Dataset rows (MovieLens "::" files):
    - User: only Age is used for bucketing
    - Rating: one user's score for one movie
    - Movie: title plus the pipe-delimited genre list

 2. Box office:
    - BoxOfficeEntry: one title from yesterday's KOBIS daily list with its resolved genre

 3. Recommendation results:
    - GenreScore: mean rating of one genre inside an age bucket
    - Recommendation: a BoxOfficeEntry ranked for a bucket
    - RecommendationResult: everything one request produces

 4. API envelope:
    - APIResponse, Metadata, APIError

KOBIS wire formats live in the kobis subpackage.
*/
package models
