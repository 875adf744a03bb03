package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/agenthands/reelmatch/internal/core/errs"
	"github.com/agenthands/reelmatch/internal/core/model"
)

const moviesCollection = "movies"

// Client wraps the MongoDB movies collection: paginated listing, substring
// search over title and cast, and the single write path (partial update by
// exact title). The underlying driver pools connections and is safe for
// concurrent use.
type Client struct {
	client *mongo.Client
	movies *mongo.Collection
}

func New(ctx context.Context, uri, database string) (*Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB")
	return &Client{
		client: client,
		movies: client.Database(database).Collection(moviesCollection),
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

var movieProjection = bson.D{
	{Key: "title", Value: 1},
	{Key: "year", Value: 1},
	{Key: "genres", Value: 1},
	{Key: "directors", Value: 1},
	{Key: "cast", Value: 1},
	{Key: "plot", Value: 1},
	{Key: "imdb.rating", Value: 1},
}

// List returns one page of movies in natural _id order plus a has-more flag.
// Pagination is offset-based, so concurrent inserts may shift page boundaries
// between calls; that is accepted, not worked around.
func (c *Client) List(ctx context.Context, page, limit int) ([]model.Movie, bool, error) {
	if page < 1 || limit < 1 {
		return nil, false, fmt.Errorf("%w: page and limit must be >= 1 (got page=%d limit=%d)", errs.ErrInvalidArgument, page, limit)
	}

	// Fetch one extra document to compute hasMore without a count query.
	opts := options.Find().
		SetProjection(movieProjection).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit) + 1)

	cursor, err := c.movies.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, false, errs.Store(err)
	}

	var movies []model.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, false, errs.Store(err)
	}

	hasMore := len(movies) > limit
	if hasMore {
		movies = movies[:limit]
	}
	return movies, hasMore, nil
}

// SearchByTitle is a case-insensitive substring match on title.
func (c *Client) SearchByTitle(ctx context.Context, substring string) ([]model.Movie, error) {
	return c.search(ctx, "title", substring)
}

// SearchByActor is a case-insensitive substring match against the cast
// array. No matches is an empty result, not an error.
func (c *Client) SearchByActor(ctx context.Context, name string) ([]model.Movie, error) {
	return c.search(ctx, "cast", name)
}

func (c *Client) search(ctx context.Context, field, substring string) ([]model.Movie, error) {
	filter := bson.D{{Key: field, Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(substring)},
		{Key: "$options", Value: "i"},
	}}}

	cursor, err := c.movies.Find(ctx, filter, options.Find().SetProjection(movieProjection))
	if err != nil {
		return nil, errs.Store(err)
	}

	var movies []model.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, errs.Store(err)
	}
	return movies, nil
}

// UpdateByTitle applies a partial attribute patch to the single movie with
// exactly the given title. Zero matches is ErrNotFound; two or more is
// ErrAmbiguousTarget and nothing is modified, since picking one would be a
// guess. Returns the post-update document.
func (c *Client) UpdateByTitle(ctx context.Context, title string, patch map[string]any) (model.Movie, error) {
	set, err := sanitizePatch(patch)
	if err != nil {
		return model.Movie{}, err
	}

	filter := bson.D{{Key: "title", Value: title}}

	n, err := c.movies.CountDocuments(ctx, filter)
	if err != nil {
		return model.Movie{}, errs.Store(err)
	}
	switch {
	case n == 0:
		return model.Movie{}, fmt.Errorf("%w: no movie titled %q", errs.ErrNotFound, title)
	case n > 1:
		return model.Movie{}, fmt.Errorf("%w: %d movies titled %q", errs.ErrAmbiguousTarget, n, title)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Movie
	err = c.movies.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Movie{}, fmt.Errorf("%w: no movie titled %q", errs.ErrNotFound, title)
		}
		return model.Movie{}, errs.Store(err)
	}
	return updated, nil
}

// sanitizePatch turns a client-supplied patch into a $set document with a
// deterministic field order. The store-internal id and operator-shaped keys
// are not patchable.
func sanitizePatch(patch map[string]any) (bson.D, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: empty patch", errs.ErrInvalidArgument)
	}

	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make(bson.D, 0, len(keys))
	for _, k := range keys {
		if k == "" || k == "_id" || strings.HasPrefix(k, "$") {
			return nil, fmt.Errorf("%w: field %q cannot be patched", errs.ErrInvalidArgument, k)
		}
		set = append(set, bson.E{Key: k, Value: patch[k]})
	}
	return set, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, nil); err != nil {
		return errs.Store(err)
	}
	return nil
}
