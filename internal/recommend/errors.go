// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "errors"

var (
	// ErrMissingInput means the name was blank or the age was zero.
	ErrMissingInput = errors.New("please fill in all fields")

	// ErrAgeOutOfRange means the age is outside the configured input bounds.
	ErrAgeOutOfRange = errors.New("age is outside the accepted range")

	// ErrNoBucket means the age falls in no decade bucket.
	ErrNoBucket = errors.New("no data for the entered age group")

	// ErrEmptyBucket means the bucket's users rated nothing in the dataset.
	ErrEmptyBucket = errors.New("no ratings recorded for the entered age group")

	// ErrNoBoxOffice means the box office fetch was aborted or returned nothing.
	ErrNoBoxOffice = errors.New("failed to fetch box office data")
)

// Outcome names err for the recommendations_total metric.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrAgeOutOfRange):
		return "age_out_of_range"
	case errors.Is(err, ErrNoBucket):
		return "no_bucket"
	case errors.Is(err, ErrEmptyBucket):
		return "empty_bucket"
	case errors.Is(err, ErrNoBoxOffice):
		return "no_box_office"
	default:
		return "error"
	}
}

// IsUserFacing reports whether err is one of the sentinel errors above.
func IsUserFacing(err error) bool {
	return Outcome(err) != "error" && err != nil
}
