package graphstore

import (
	"github.com/agenthands/reelmatch/internal/core/model"
)

func movieNodeFromRecord(rec map[string]any) model.MovieNode {
	return model.MovieNode{
		ID:    asString(rec["id"]),
		Title: asString(rec["title"]),
	}
}

func userRatingFromRecord(rec map[string]any) model.UserRating {
	return model.UserRating{
		ID:      asString(rec["id"]),
		Name:    asString(rec["name"]),
		Rating:  asFloat(rec["rating"]),
		Summary: asString(rec["summary"]),
	}
}

func userNodeFromRecord(rec map[string]any) model.UserNode {
	return model.UserNode{
		ID:   asString(rec["id"]),
		Name: asString(rec["name"]),
	}
}

func ratedMovieFromRecord(rec map[string]any) model.RatedMovie {
	return model.RatedMovie{
		Title:  asString(rec["title"]),
		Rating: asFloat(rec["rating"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Bolt returns integers as int64 and floats as float64; rating properties in
// seed data show up as either.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
