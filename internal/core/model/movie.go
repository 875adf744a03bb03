package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Movie is a document-store movie record. Known fields are typed; anything
// else the document carries lands in Extra so loosely-typed seed data survives
// a read-modify-write round trip.
type Movie struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string         `bson:"title" json:"title"`
	Year      int32          `bson:"year,omitempty" json:"year,omitempty"`
	Genres    []string       `bson:"genres,omitempty" json:"genres,omitempty"`
	Directors []string       `bson:"directors,omitempty" json:"directors,omitempty"`
	Cast      []string       `bson:"cast,omitempty" json:"cast,omitempty"`
	Plot      string         `bson:"plot,omitempty" json:"plot,omitempty"`
	IMDB      IMDBInfo       `bson:"imdb,omitempty" json:"imdb,omitempty"`
	Extra     map[string]any `bson:",inline" json:"extra,omitempty"`
}

type IMDBInfo struct {
	Rating float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}
