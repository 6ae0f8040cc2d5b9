// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/report"
)

type stubBoxOffice struct {
	entries []models.BoxOfficeEntry
	err     error
}

func (s stubBoxOffice) DailyBoxOffice(context.Context) ([]models.BoxOfficeEntry, string, error) {
	return s.entries, "20261015", s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func apiDataset() *models.Dataset {
	return &models.Dataset{
		Movies: []models.Movie{
			{ID: 1, Title: "Sabrina (1995)", Genres: "Romance"},
			{ID: 2, Title: "Heat (1995)", Genres: "Action"},
		},
		Users: []models.User{{ID: 20, Age: 25}},
		Ratings: []models.Rating{
			{UserID: 20, MovieID: 1, Score: 5},
			{UserID: 20, MovieID: 2, Score: 3},
		},
	}
}

func todaysList() []models.BoxOfficeEntry {
	return []models.BoxOfficeEntry{
		{MovieCode: "1", Title: "Fast Cars", Rank: 1, Sales: 5000, Genre: "액션"},
		{MovieCode: "2", Title: "Love Story", Rank: 2, Sales: 3000, Genre: "멜로/로맨스"},
		{MovieCode: "3", Title: "Palace", Rank: 3, Sales: 9000, Genre: "사극"},
	}
}

func newTestServer(t *testing.T, box stubBoxOffice, cfg *config.Config) (*Handler, http.Handler) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.Security.RateLimitDisabled = true

	engine := recommend.NewEngine(recommend.DefaultConfig(), recommend.NewMemoryScorer(apiDataset()), box)
	h := NewHandler(engine, cfg, nil)
	h.SetReady(true)
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	return h, router.SetupChi()
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return env
}

func postRecommend(handler http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRecommendationsSuccess(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t, stubBoxOffice{entries: todaysList()}, nil)
	rec := postRecommend(handler, "/api/v1/recommendations", `{"name":"Mina","age":25}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
	env := decodeEnvelope(t, rec)
	var res models.RecommendationResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Bucket != "20s" || res.TargetDate != "20261015" {
		t.Errorf("result header = %+v", res)
	}
	want := []string{"Love Story", "Fast Cars", "Palace"}
	if len(res.Recommendations) != len(want) {
		t.Fatalf("got %d recommendations, want %d", len(res.Recommendations), len(want))
	}
	for i, title := range want {
		if res.Recommendations[i].Title != title || res.Recommendations[i].Position != i+1 {
			t.Errorf("recommendations[%d] = %+v, want %s at %d", i, res.Recommendations[i], title, i+1)
		}
	}
	if res.Recommendations[2].Score != nil {
		t.Errorf("unmapped genre got score %v", *res.Recommendations[2].Score)
	}
}

func TestRecommendationsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		box        stubBoxOffice
		body       string
		wantStatus int
		wantCode   string
		wantData   bool
	}{
		{"malformed body", stubBoxOffice{entries: todaysList()}, `{"name":`, http.StatusBadRequest, ErrCodeValidation, false},
		{"blank name", stubBoxOffice{entries: todaysList()}, `{"name":"   ","age":25}`, http.StatusBadRequest, ErrCodeValidation, false},
		{"missing age", stubBoxOffice{entries: todaysList()}, `{"name":"Mina"}`, http.StatusBadRequest, ErrCodeValidation, false},
		{"age below bounds", stubBoxOffice{entries: todaysList()}, `{"name":"Mina","age":12}`, http.StatusBadRequest, ErrCodeValidation, false},
		{"no bucket", stubBoxOffice{entries: todaysList()}, `{"name":"Mina","age":65}`, http.StatusUnprocessableEntity, ErrCodeNoAgeGroup, false},
		{"empty bucket", stubBoxOffice{entries: todaysList()}, `{"name":"Mina","age":42}`, http.StatusNotFound, ErrCodeEmptyAgeGroup, false},
		{"box office down", stubBoxOffice{err: errors.New("dial tcp: refused")}, `{"name":"Mina","age":25}`, http.StatusBadGateway, ErrCodeBoxOffice, true},
		{"box office empty", stubBoxOffice{}, `{"name":"Mina","age":25}`, http.StatusBadGateway, ErrCodeBoxOffice, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, handler := newTestServer(t, tt.box, nil)
			rec := postRecommend(handler, "/api/v1/recommendations", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env.Status != "error" || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Fatalf("envelope = %+v, want code %s", env, tt.wantCode)
			}
			hasData := len(env.Data) > 0 && string(env.Data) != "null"
			if hasData != tt.wantData {
				t.Errorf("data present = %v, want %v (%s)", hasData, tt.wantData, env.Data)
			}
		})
	}
}

func TestRecommendationsPartialResultCarriesChart(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t, stubBoxOffice{}, nil)
	rec := postRecommend(handler, "/api/v1/recommendations", `{"name":"Mina","age":25}`)

	env := decodeEnvelope(t, rec)
	var res models.RecommendationResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode partial result: %v", err)
	}
	if len(res.GenreScores) != 2 || res.GenreScores[0].Genre != "Romance" {
		t.Errorf("genre scores = %+v", res.GenreScores)
	}
	if len(res.Recommendations) != 0 {
		t.Errorf("recommendations = %+v, want none", res.Recommendations)
	}
}

func TestRecommendationsCSV(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t, stubBoxOffice{entries: todaysList()}, nil)
	rec := postRecommend(handler, "/api/v1/recommendations?format=csv", `{"name":"Mina","age":25}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "recommendations-20261015.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 4 || strings.Join(rows[0], ",") != strings.Join(report.CSVHeader, ",") {
		t.Fatalf("rows = %v", rows)
	}
	if rows[1][1] != "Love Story" || rows[3][5] != "" {
		t.Errorf("rows = %v", rows)
	}
}

func TestRecommendationsExport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "recommendations.csv")
	cfg := &config.Config{Export: config.ExportConfig{Enabled: true, Path: path}}
	_, handler := newTestServer(t, stubBoxOffice{entries: todaysList()}, cfg)

	rec := postRecommend(handler, "/api/v1/recommendations", `{"name":"Mina","age":25}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.Contains(string(data), "Love Story") {
		t.Errorf("export = %s", data)
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"valid", "?age=25", http.StatusOK},
		{"not a number", "?age=abc", http.StatusBadRequest},
		{"missing", "", http.StatusBadRequest},
		{"out of bounds", "?age=80", http.StatusBadRequest},
		{"no bucket", "?age=62", http.StatusUnprocessableEntity},
		{"empty bucket", "?age=33", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, handler := newTestServer(t, stubBoxOffice{}, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/genres"+tt.query, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp GenresResponse
			if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Bucket != "20s" || len(resp.GenreScores) != 2 || resp.GenreScores[0].Mean != 5 {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestBoxOffice(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t, stubBoxOffice{entries: todaysList()}, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boxoffice", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp BoxOfficeResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.TargetDate != "20261015" || len(resp.Entries) != 3 || resp.Entries[0].Title != "Fast Cars" {
		t.Errorf("response = %+v", resp)
	}

	_, down := newTestServer(t, stubBoxOffice{}, nil)
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boxoffice", nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("empty list status = %d, want 502", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h, handler := newTestServer(t, stubBoxOffice{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("live = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d", rec.Code)
	}

	h.SetReady(false)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("not ready = %d, want 503", rec.Code)
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	t.Parallel()

	engine := recommend.NewEngine(recommend.DefaultConfig(), recommend.NewMemoryScorer(apiDataset()), stubBoxOffice{})
	h := NewHandler(engine, &config.Config{}, stubPinger{err: errors.New("closed")})
	h.SetReady(true)

	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"database_connected":false`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t, stubBoxOffice{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if rec.Code != http.StatusNotFound || decodeEnvelope(t, rec).Error.Code != ErrCodeNotFound {
		t.Errorf("not found = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("method not allowed = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Errorf("metrics = %d", rec.Code)
	}
}

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute})
	h := mw.RateLimitByIP()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for range 2 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestAPISecurityHeadersHSTS(t *testing.T) {
	t.Parallel()

	h := APISecurityHeaders()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS behind https proxy")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options DENY")
	}
}
