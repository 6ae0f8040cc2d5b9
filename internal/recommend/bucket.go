// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "fmt"

// Bucket is the half-open age range [Min, Max).
type Bucket struct {
	Min int `json:"min_age"`
	Max int `json:"max_age"`
}

// Buckets are contiguous and non-overlapping.
var Buckets = []Bucket{
	{Min: 10, Max: 20},
	{Min: 20, Max: 30},
	{Min: 30, Max: 40},
	{Min: 40, Max: 50},
	{Min: 50, Max: 60},
}

// BucketFor returns the bucket containing age. ok is false below 10 and at
// or above 60.
func BucketFor(age int) (Bucket, bool) {
	for _, b := range Buckets {
		if b.Contains(age) {
			return b, true
		}
	}
	return Bucket{}, false
}

// Contains reports Min <= age < Max.
func (b Bucket) Contains(age int) bool {
	return age >= b.Min && age < b.Max
}

// Label is the decade name shown to viewers, e.g. "20s".
func (b Bucket) Label() string {
	return fmt.Sprintf("%ds", b.Min)
}

func (b Bucket) String() string {
	return fmt.Sprintf("[%d,%d)", b.Min, b.Max)
}
