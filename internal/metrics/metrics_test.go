// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad(250*time.Millisecond, 3883, 1000209, 5777)

	if got := testutil.ToFloat64(DatasetRowsLoaded.WithLabelValues("ratings")); got != 1000209 {
		t.Errorf("ratings rows = %v, want 1000209", got)
	}
	if got := testutil.ToFloat64(DatasetRowsLoaded.WithLabelValues("users")); got != 5777 {
		t.Errorf("users rows = %v, want 5777", got)
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "ratings"))

	RecordDBQuery("SELECT", "ratings", 5*time.Millisecond, nil)
	RecordDBQuery("SELECT", "ratings", 5*time.Millisecond, errors.New("binder error"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "ratings")); got != before+1 {
		t.Errorf("errors = %v, want %v", got, before+1)
	}
}

func TestRecordKOBISRequest(t *testing.T) {
	counter := KOBISRequestsTotal.WithLabelValues("daily_box_office", "ok")
	before := testutil.ToFloat64(counter)

	RecordKOBISRequest("daily_box_office", "ok", 80*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("kobis_requests_total = %v, want %v", got, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 40*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}
