// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package boxoffice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models/kobis"
)

// KOBIS endpoint paths, relative to KOBISConfig.URL.
const (
	DailyBoxOfficePath = "/kobisopenapi/webservice/rest/boxoffice/searchDailyBoxOfficeList.xml"
	MovieInfoPath      = "/kobisopenapi/webservice/rest/movie/searchMovieInfo.xml"
)

// maxErrorBodySize caps how much of a failed response is read into the error.
const maxErrorBodySize = 64 * 1024

// maxBodySize caps successful XML payloads.
const maxBodySize = 8 << 20

var (
	// ErrUnexpectedStatus is returned for any HTTP status other than 200.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrAPIFault is returned when KOBIS answers 200 with a faultInfo document.
	ErrAPIFault = errors.New("kobis api fault")
)

// API is the subset of KOBIS the fetcher needs. Client and BreakerClient
// both satisfy it.
type API interface {
	DailyBoxOffice(ctx context.Context, targetDate string) (*kobis.DailyBoxOfficeResult, error)
	MovieInfo(ctx context.Context, movieCode string) (*kobis.MovieInfo, error)
}

// Client calls the KOBIS open API. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient builds a client from cfg. A zero timeout falls back to 30s.
func NewClient(cfg *config.KOBISConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// DailyBoxOffice fetches the daily box office for targetDate (YYYYMMDD).
func (c *Client) DailyBoxOffice(ctx context.Context, targetDate string) (*kobis.DailyBoxOfficeResult, error) {
	params := url.Values{}
	params.Set("targetDt", targetDate)

	var result kobis.DailyBoxOfficeResult
	if err := c.makeRequest(ctx, "daily_box_office", DailyBoxOfficePath, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieInfo fetches the detail record for one movie code.
func (c *Client) MovieInfo(ctx context.Context, movieCode string) (*kobis.MovieInfo, error) {
	params := url.Values{}
	params.Set("movieCd", movieCode)

	var result kobis.MovieInfoResult
	if err := c.makeRequest(ctx, "movie_info", MovieInfoPath, params, &result); err != nil {
		return nil, err
	}
	return &result.MovieInfo, nil
}

// makeRequest issues a GET against path with the API key added, checks the
// status and decodes the XML body into result.
func (c *Client) makeRequest(ctx context.Context, endpoint, path string, params url.Values, result interface{}) (err error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.RecordKOBISRequest(endpoint, outcome, time.Since(start))
	}()

	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		outcome = "http_error"
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%w: %s request failed with status %d: %s", ErrUnexpectedStatus, endpoint, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if err := kobis.Decode(body, result); err != nil {
		var fault *kobis.FaultInfo
		if errors.As(err, &fault) {
			outcome = "fault"
			return fmt.Errorf("%w: %s: %w", ErrAPIFault, endpoint, fault)
		}
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	outcome = "ok"
	return nil
}
