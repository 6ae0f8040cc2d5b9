// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

// GenrePair links a dataset genre to the name KOBIS uses for it.
type GenrePair struct {
	Dataset string
	KOBIS   string
}

// GenreTable is the fixed dataset/KOBIS genre vocabulary. Each side is unique.
var GenreTable = []GenrePair{
	{"Film-Noir", "느와르"},
	{"Documentary", "다큐멘터리"},
	{"War", "전쟁"},
	{"Drama", "드라마"},
	{"Musical", "뮤지컬"},
	{"Crime", "범죄"},
	{"Animation", "애니메이션"},
	{"Mystery", "미스터리"},
	{"Romance", "멜로/로맨스"},
	{"Western", "서부"},
	{"Thriller", "스릴러"},
	{"Comedy", "코미디"},
	{"Fantasy", "판타지"},
	{"Adventure", "모험"},
	{"Children's", "아동"},
	{"Action", "액션"},
	{"Sci-Fi", "SF"},
	{"Horror", "호러"},
}

var (
	toKOBIS   = make(map[string]string, len(GenreTable))
	toDataset = make(map[string]string, len(GenreTable))
)

//nolint:gochecknoinits // lookup maps derived from GenreTable
func init() {
	for _, p := range GenreTable {
		toKOBIS[p.Dataset] = p.KOBIS
		toDataset[p.KOBIS] = p.Dataset
	}
}

// KOBISGenre returns the KOBIS name for a dataset genre.
func KOBISGenre(dataset string) (string, bool) {
	g, ok := toKOBIS[dataset]
	return g, ok
}

// DatasetGenre returns the dataset genre for a KOBIS genre name.
func DatasetGenre(kobis string) (string, bool) {
	g, ok := toDataset[kobis]
	return g, ok
}
