// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package boxoffice

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
)

const dailyListXML = `<?xml version="1.0" encoding="UTF-8"?>
<boxOfficeResult>
  <boxofficeType>일별 박스오피스</boxofficeType>
  <showRange>20261015~20261015</showRange>
  <dailyBoxOfficeList>
    <dailyBoxOffice><rnum>1</rnum><rank>1</rank><movieCd>20260001</movieCd><movieNm>Night Chase</movieNm><salesAmt>900000</salesAmt></dailyBoxOffice>
    <dailyBoxOffice><rnum>2</rnum><rank>2</rank><movieCd>20260002</movieCd><movieNm>Spring Letters</movieNm><salesAmt>700000</salesAmt></dailyBoxOffice>
    <dailyBoxOffice><rnum>3</rnum><rank>3</rank><movieCd>20260003</movieCd><movieNm>Untitled Short</movieNm><salesAmt>1000</salesAmt></dailyBoxOffice>
  </dailyBoxOfficeList>
</boxOfficeResult>`

const faultXML = `<?xml version="1.0" encoding="UTF-8"?>
<faultInfo><message>유효하지않은 키값입니다.</message><errorCode>320010</errorCode></faultInfo>`

func movieInfoXML(code string, genres ...string) string {
	var b strings.Builder
	for _, g := range genres {
		fmt.Fprintf(&b, "<genre><genreNm>%s</genreNm></genre>", g)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<movieInfoResult><movieInfo><movieCd>%s</movieCd><movieNm>x</movieNm><genres>%s</genres></movieInfo><source>KOBIS</source></movieInfoResult>`, code, b.String())
}

// kobisStub serves the two KOBIS endpoints from in-memory fixtures.
type kobisStub struct {
	list        string
	listStatus  int
	details     map[string]string
	detailCode  int
	detailCalls atomic.Int32
	lastTarget  atomic.Value
	lastKey     atomic.Value
}

func newKOBISStub() *kobisStub {
	return &kobisStub{
		list: dailyListXML,
		details: map[string]string{
			"20260001": movieInfoXML("20260001", "액션", "범죄"),
			"20260002": movieInfoXML("20260002", "멜로/로맨스"),
			"20260003": movieInfoXML("20260003"),
		},
	}
}

func (s *kobisStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lastKey.Store(r.URL.Query().Get("key"))
	switch r.URL.Path {
	case DailyBoxOfficePath:
		s.lastTarget.Store(r.URL.Query().Get("targetDt"))
		if s.listStatus != 0 {
			w.WriteHeader(s.listStatus)
			return
		}
		_, _ = w.Write([]byte(s.list))
	case MovieInfoPath:
		s.detailCalls.Add(1)
		if s.detailCode != 0 {
			w.WriteHeader(s.detailCode)
			return
		}
		body, ok := s.details[r.URL.Query().Get("movieCd")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *kobisStub) start(t *testing.T) (*Client, *config.KOBISConfig) {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	cfg := &config.KOBISConfig{URL: srv.URL + "/", APIKey: "test-key", Timeout: 5 * time.Second}
	return NewClient(cfg), cfg
}
