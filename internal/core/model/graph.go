package model

// MovieNode is a Movie node in the graph store. Titles are not unique.
type MovieNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// UserNode is a User node in the graph store.
type UserNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRating is one user's RATED edge toward a movie.
type UserRating struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Summary string  `json:"summary,omitempty"`
}

// RatedMovie is one entry of a user's rating history. Detail is filled only
// when the caller asked for document-store enrichment and a matching document
// exists; a missing document leaves it nil.
type RatedMovie struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Detail *Movie  `json:"detail,omitempty"`
}
