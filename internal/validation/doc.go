// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package validation wraps go-playground/validator with a lazily built
singleton and API-friendly error types.

Request structs declare rules in `validate` tags:

	type Request struct {
	    Name string `json:"name" validate:"required,notblank,max=100"`
	    Age  int    `json:"age" validate:"required,min=1,max=120"`
	}

	if verr := validation.ValidateStruct(req); verr != nil {
	    apiErr := verr.ToAPIError() // Code "VALIDATION_ERROR"
	}

Field names in messages come from the json tag, so clients see "name is
required" rather than the Go field name. "notblank" rejects whitespace-only
strings.
*/
package validation
