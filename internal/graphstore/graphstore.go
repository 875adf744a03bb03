package graphstore

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/reelmatch/internal/core/errs"
	"github.com/agenthands/reelmatch/internal/core/match"
	"github.com/agenthands/reelmatch/internal/core/model"
)

// Client wraps the Neo4j driver with the traversals this system needs:
// movie-node lookup, RATED edges backward to users, and user rating history.
// The driver's connection pool is safe for concurrent use, so one Client is
// shared across requests. All reads; nothing here mutates the graph.
type Client struct {
	driver neo4j.DriverWithContext
}

func New(ctx context.Context, uri, username, password string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	log.Println("Connected to Neo4j")
	return &Client{driver: driver}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, errs.Store(err)
	}
	return result, nil
}

// FindMovieNodes returns every movie node whose title normalizes to the same
// key as the given title. Several nodes may share a title; the caller decides
// what multiplicity means.
func (c *Client) FindMovieNodes(ctx context.Context, title string) ([]model.MovieNode, error) {
	result, err := c.run(ctx, FindMovieNodesQuery, map[string]any{"key": match.Normalize(title)})
	if err != nil {
		return nil, err
	}

	nodes := make([]model.MovieNode, 0, len(result.Records))
	for _, rec := range result.Records {
		nodes = append(nodes, movieNodeFromRecord(rec.AsMap()))
	}
	return nodes, nil
}

// ListMovieNodes returns the full movie node set, used when reconciling
// against the document store.
func (c *Client) ListMovieNodes(ctx context.Context) ([]model.MovieNode, error) {
	result, err := c.run(ctx, ListMovieNodesQuery, nil)
	if err != nil {
		return nil, err
	}

	nodes := make([]model.MovieNode, 0, len(result.Records))
	for _, rec := range result.Records {
		nodes = append(nodes, movieNodeFromRecord(rec.AsMap()))
	}
	return nodes, nil
}

// UsersWhoRated traverses RATED edges backward from every movie node matching
// the title and returns the union of raters, de-duplicated by user identity
// and ordered by name. A title matching no movie node is ErrNotFound; a movie
// nobody rated is an empty slice.
func (c *Client) UsersWhoRated(ctx context.Context, title string) ([]model.UserRating, error) {
	key := match.Normalize(title)

	result, err := c.run(ctx, UsersWhoRatedQuery, map[string]any{"key": key})
	if err != nil {
		return nil, err
	}

	if len(result.Records) == 0 {
		exists, err := c.movieNodeExists(ctx, key)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: no graph movie titled %q", errs.ErrNotFound, title)
		}
		return []model.UserRating{}, nil
	}

	seen := make(map[string]bool, len(result.Records))
	users := make([]model.UserRating, 0, len(result.Records))
	for _, rec := range result.Records {
		u := userRatingFromRecord(rec.AsMap())
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		users = append(users, u)
	}
	return users, nil
}

func (c *Client) movieNodeExists(ctx context.Context, key string) (bool, error) {
	result, err := c.run(ctx, MovieNodeExistsQuery, map[string]any{"key": key})
	if err != nil {
		return false, err
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	n, _ := result.Records[0].Get("n")
	count, _ := n.(int64)
	return count > 0, nil
}

func (c *Client) FindUser(ctx context.Context, name string) (model.UserNode, error) {
	result, err := c.run(ctx, FindUserQuery, map[string]any{"name": name})
	if err != nil {
		return model.UserNode{}, err
	}
	if len(result.Records) == 0 {
		return model.UserNode{}, fmt.Errorf("%w: no user named %q", errs.ErrNotFound, name)
	}
	return userNodeFromRecord(result.Records[0].AsMap()), nil
}

// MoviesRatedBy returns the titles and rating values on the user's outgoing
// RATED edges, ordered by title.
func (c *Client) MoviesRatedBy(ctx context.Context, userID string) ([]model.RatedMovie, error) {
	result, err := c.run(ctx, MoviesRatedByQuery, map[string]any{"id": userID})
	if err != nil {
		return nil, err
	}

	rated := make([]model.RatedMovie, 0, len(result.Records))
	for _, rec := range result.Records {
		rated = append(rated, ratedMovieFromRecord(rec.AsMap()))
	}
	return rated, nil
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.run(ctx, PingQuery, nil)
	return err
}
