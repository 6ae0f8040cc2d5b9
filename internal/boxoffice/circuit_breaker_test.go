// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package boxoffice

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models/kobis"
)

// scriptedAPI returns err for every call when set, otherwise fixed results.
type scriptedAPI struct {
	err   error
	calls int
}

func (s *scriptedAPI) DailyBoxOffice(context.Context, string) (*kobis.DailyBoxOfficeResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &kobis.DailyBoxOfficeResult{}, nil
}

func (s *scriptedAPI) MovieInfo(_ context.Context, code string) (*kobis.MovieInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &kobis.MovieInfo{MovieCode: code, Genres: []string{"드라마"}}, nil
}

func TestBreakerClientPassesThrough(t *testing.T) {
	t.Parallel()

	api := &scriptedAPI{}
	b := NewBreakerClient(api, &config.KOBISConfig{})

	info, err := b.MovieInfo(context.Background(), "42")
	if err != nil {
		t.Fatalf("MovieInfo() error = %v", err)
	}
	if info.MovieCode != "42" || info.PrimaryGenre() != "드라마" {
		t.Errorf("info = %+v", info)
	}
	if _, err := b.DailyBoxOffice(context.Background(), "20261015"); err != nil {
		t.Fatalf("DailyBoxOffice() error = %v", err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q", b.State())
	}
}

func TestBreakerClientOpens(t *testing.T) {
	t.Parallel()

	api := &scriptedAPI{err: ErrUnexpectedStatus}
	b := NewBreakerClient(api, &config.KOBISConfig{
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerTimeout:      time.Hour,
	})

	for i := 0; i < 3; i++ {
		if _, err := b.MovieInfo(context.Background(), "1"); !errors.Is(err, ErrUnexpectedStatus) {
			t.Fatalf("call %d error = %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.MovieInfo(context.Background(), "1")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want ErrOpenState", err)
	}
	if api.calls != 3 {
		t.Errorf("open breaker let a call through: calls = %d", api.calls)
	}
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	t.Parallel()

	api := &scriptedAPI{err: context.Canceled}
	b := NewBreakerClient(api, &config.KOBISConfig{BreakerMinRequests: 1, BreakerFailureRatio: 0.1})

	for i := 0; i < 5; i++ {
		_, _ = b.MovieInfo(context.Background(), "1")
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, cancellations should not trip the breaker", b.State())
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
		{gobreaker.State(99), -1, "unknown"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.f {
			t.Errorf("stateToFloat(%v) = %v", tt.state, got)
		}
		if got := stateToString(tt.state); got != tt.s {
			t.Errorf("stateToString(%v) = %v", tt.state, got)
		}
	}
}

func TestCastResult(t *testing.T) {
	t.Parallel()

	if _, err := castResult[kobis.MovieInfo]("not a pointer", nil); err == nil {
		t.Error("expected type error")
	}
	boom := errors.New("boom")
	if _, err := castResult[kobis.MovieInfo](nil, boom); !errors.Is(err, boom) {
		t.Errorf("error = %v", err)
	}
}
