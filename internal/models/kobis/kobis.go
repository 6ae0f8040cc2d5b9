// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package kobis holds the XML response shapes of the KOBIS (Korean Film
// Council) open API endpoints Marquee calls:
//
//	/kobisopenapi/webservice/rest/boxoffice/searchDailyBoxOfficeList.xml
//	/kobisopenapi/webservice/rest/movie/searchMovieInfo.xml
//
// Only the fields Marquee reads are mapped.
package kobis

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// DailyBoxOfficeResult is the root element of searchDailyBoxOfficeList.xml.
type DailyBoxOfficeResult struct {
	XMLName       xml.Name         `xml:"boxOfficeResult"`
	BoxOfficeType string           `xml:"boxofficeType"`
	ShowRange     string           `xml:"showRange"`
	Entries       []DailyBoxOffice `xml:"dailyBoxOfficeList>dailyBoxOffice"`
}

// DailyBoxOffice is one ranked title. Numeric fields arrive as text.
type DailyBoxOffice struct {
	RNum      string `xml:"rnum"`
	Rank      string `xml:"rank"`
	MovieCode string `xml:"movieCd"`
	MovieName string `xml:"movieNm"`
	OpenDate  string `xml:"openDt"`
	SalesAmt  string `xml:"salesAmt"`
	AudiCnt   string `xml:"audiCnt"`
}

// RankInt parses Rank.
func (d DailyBoxOffice) RankInt() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(d.Rank))
	if err != nil {
		return 0, fmt.Errorf("invalid rank %q for %s: %w", d.Rank, d.MovieCode, err)
	}
	return n, nil
}

// Sales parses SalesAmt (KRW).
func (d DailyBoxOffice) Sales() (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(d.SalesAmt), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid salesAmt %q for %s: %w", d.SalesAmt, d.MovieCode, err)
	}
	return n, nil
}

// MovieInfoResult is the root element of searchMovieInfo.xml.
type MovieInfoResult struct {
	XMLName   xml.Name  `xml:"movieInfoResult"`
	MovieInfo MovieInfo `xml:"movieInfo"`
}

// MovieInfo carries the detail fields Marquee reads.
type MovieInfo struct {
	MovieCode   string   `xml:"movieCd"`
	MovieName   string   `xml:"movieNm"`
	MovieNameEn string   `xml:"movieNmEn"`
	Genres      []string `xml:"genres>genre>genreNm"`
}

// PrimaryGenre returns the first listed genre, or "" when none is listed.
func (m MovieInfo) PrimaryGenre() string {
	for _, g := range m.Genres {
		if g = strings.TrimSpace(g); g != "" {
			return g
		}
	}
	return ""
}

// FaultInfo is what KOBIS returns, with HTTP 200, for an invalid key or
// parameter.
type FaultInfo struct {
	XMLName   xml.Name `xml:"faultInfo"`
	Message   string   `xml:"message"`
	ErrorCode string   `xml:"errorCode"`
}

// Error implements error.
func (f *FaultInfo) Error() string {
	return fmt.Sprintf("kobis fault %s: %s", f.ErrorCode, f.Message)
}

// RootElement returns the local name of the first element in body, so a
// caller can tell a faultInfo payload from the expected result.
func RootElement(body []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("no root element: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

// Decode unmarshals body into v, returning a *FaultInfo error when the
// payload is a KOBIS fault instead.
func Decode(body []byte, v interface{}) error {
	root, err := RootElement(body)
	if err != nil {
		return err
	}
	if root == "faultInfo" {
		var fault FaultInfo
		if err := xml.Unmarshal(body, &fault); err != nil {
			return fmt.Errorf("failed to decode fault: %w", err)
		}
		return &fault
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", root, err)
	}
	return nil
}
