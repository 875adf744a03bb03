package core

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/reelmatch/internal/core/match"
	"github.com/agenthands/reelmatch/internal/core/model"
)

// DocumentStore is the document-side client the engine orchestrates.
type DocumentStore interface {
	List(ctx context.Context, page, limit int) ([]model.Movie, bool, error)
	SearchByTitle(ctx context.Context, substring string) ([]model.Movie, error)
	SearchByActor(ctx context.Context, name string) ([]model.Movie, error)
	UpdateByTitle(ctx context.Context, title string, patch map[string]any) (model.Movie, error)
	Ping(ctx context.Context) error
}

// GraphStore is the graph-side client the engine orchestrates.
type GraphStore interface {
	FindMovieNodes(ctx context.Context, title string) ([]model.MovieNode, error)
	ListMovieNodes(ctx context.Context) ([]model.MovieNode, error)
	UsersWhoRated(ctx context.Context, title string) ([]model.UserRating, error)
	FindUser(ctx context.Context, name string) (model.UserNode, error)
	MoviesRatedBy(ctx context.Context, userID string) ([]model.RatedMovie, error)
	Ping(ctx context.Context) error
}

// Engine answers queries spanning the document store and the graph store.
// It holds no state across calls: every reconciliation is computed fresh
// against whatever the two stores currently hold. Both clients come in via
// the constructor; there are no ambient connections.
type Engine struct {
	docs    DocumentStore
	graph   GraphStore
	timeout time.Duration
}

// fetchPageSize is the page size used when draining document-store
// pagination for a complete set.
const fetchPageSize = 500

func NewEngine(docs DocumentStore, graph GraphStore, timeout time.Duration) *Engine {
	return &Engine{
		docs:    docs,
		graph:   graph,
		timeout: timeout,
	}
}

// callCtx scopes one underlying store call to the configured timeout.
func (e *Engine) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// CommonResult is the outcome of a full cross-store reconciliation.
type CommonResult struct {
	// Pairs holds every (document, graph node) correspondence; ambiguous
	// keys contribute their full cross-product with Ambiguous set.
	Pairs []model.MoviePair
	// DocumentTitles and GraphTitles count distinct normalized titles seen
	// on each side, matched or not.
	DocumentTitles int
	GraphTitles    int
}

// CommonMovies fetches the complete movie set from both stores, matches by
// normalized title, and returns the correspondences present on both sides.
// The two fetches have no data dependency and run in parallel; a failure on
// either side fails the whole call rather than degrading to one store.
func (e *Engine) CommonMovies(ctx context.Context) (*CommonResult, error) {
	type docFetch struct {
		movies []model.Movie
		err    error
	}
	type graphFetch struct {
		nodes []model.MovieNode
		err   error
	}

	docCh := make(chan docFetch, 1)
	graphCh := make(chan graphFetch, 1)

	go func() {
		movies, err := e.allMovies(ctx)
		docCh <- docFetch{movies, err}
	}()
	go func() {
		callCtx, cancel := e.callCtx(ctx)
		defer cancel()
		nodes, err := e.graph.ListMovieNodes(callCtx)
		graphCh <- graphFetch{nodes, err}
	}()

	docs := <-docCh
	graph := <-graphCh
	if docs.err != nil {
		return nil, fmt.Errorf("document store fetch: %w", docs.err)
	}
	if graph.err != nil {
		return nil, fmt.Errorf("graph store fetch: %w", graph.err)
	}

	result := &CommonResult{Pairs: []model.MoviePair{}}
	for _, r := range match.Match(docs.movies, graph.nodes) {
		if len(r.Movies) > 0 {
			result.DocumentTitles++
		}
		if len(r.Nodes) > 0 {
			result.GraphTitles++
		}
		if len(r.Movies) == 0 || len(r.Nodes) == 0 {
			continue
		}
		ambiguous := len(r.Movies) > 1 || len(r.Nodes) > 1
		for _, m := range r.Movies {
			for _, n := range r.Nodes {
				result.Pairs = append(result.Pairs, model.MoviePair{
					Movie:     m,
					Node:      n,
					Ambiguous: ambiguous,
				})
			}
		}
	}
	return result, nil
}

// allMovies drains document-store pagination to completion. The clients page;
// the engine is responsible for iterating when a complete set is needed.
func (e *Engine) allMovies(ctx context.Context) ([]model.Movie, error) {
	var all []model.Movie
	for page := 1; ; page++ {
		callCtx, cancel := e.callCtx(ctx)
		movies, hasMore, err := e.docs.List(callCtx, page, fetchPageSize)
		cancel()
		if err != nil {
			return nil, err
		}
		all = append(all, movies...)
		if !hasMore {
			return all, nil
		}
	}
}

// UsersForMovie returns the users who rated the given title. Absence from
// the graph store is ErrNotFound even when the document store knows the
// title; cross-store absence is a normal outcome, not a malformed request.
func (e *Engine) UsersForMovie(ctx context.Context, title string) ([]model.UserRating, error) {
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.graph.UsersWhoRated(callCtx, title)
}

// Profile is a graph user together with their rating history.
type Profile struct {
	User  model.UserNode     `json:"user"`
	Rated []model.RatedMovie `json:"rated"`
}

// UserProfile looks up a user and their rated movies. Titles and ratings come
// from the graph side only. With enrich set, each title gets a best-effort
// document-store lookup: a miss, timeout, or store failure leaves that
// entry's Detail nil instead of failing the request.
func (e *Engine) UserProfile(ctx context.Context, name string, enrich bool) (*Profile, error) {
	callCtx, cancel := e.callCtx(ctx)
	user, err := e.graph.FindUser(callCtx, name)
	cancel()
	if err != nil {
		return nil, err
	}

	callCtx, cancel = e.callCtx(ctx)
	rated, err := e.graph.MoviesRatedBy(callCtx, user.ID)
	cancel()
	if err != nil {
		return nil, err
	}

	if enrich {
		for i := range rated {
			rated[i].Detail = e.movieDetail(ctx, rated[i].Title)
		}
	}

	return &Profile{User: user, Rated: rated}, nil
}

func (e *Engine) movieDetail(ctx context.Context, title string) *model.Movie {
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()

	movies, err := e.docs.SearchByTitle(callCtx, title)
	if err != nil {
		return nil
	}
	key := match.Normalize(title)
	for i := range movies {
		if match.Normalize(movies[i].Title) == key {
			return &movies[i]
		}
	}
	return nil
}

// ListMovies, SearchByTitle, SearchByActor and UpdateByTitle are single-store
// passthroughs kept on the engine so every store call the facade triggers
// runs under the same per-call timeout policy.

func (e *Engine) ListMovies(ctx context.Context, page, limit int) ([]model.Movie, bool, error) {
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.docs.List(callCtx, page, limit)
}

func (e *Engine) SearchByTitle(ctx context.Context, substring string) ([]model.Movie, error) {
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.docs.SearchByTitle(callCtx, substring)
}

func (e *Engine) SearchByActor(ctx context.Context, name string) ([]model.Movie, error) {
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.docs.SearchByActor(callCtx, name)
}

func (e *Engine) UpdateByTitle(ctx context.Context, title string, patch map[string]any) (model.Movie, error) {
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.docs.UpdateByTitle(callCtx, title, patch)
}

// StoreStatus reports one store's reachability.
type StoreStatus struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// HealthReport covers both store connections.
type HealthReport struct {
	Documents StoreStatus `json:"documents"`
	Graph     StoreStatus `json:"graph"`
}

func (r HealthReport) Healthy() bool {
	return r.Documents.Connected && r.Graph.Connected
}

// Health pings both stores and reports per-store status; it never errors,
// the report carries the failures.
func (e *Engine) Health(ctx context.Context) HealthReport {
	var report HealthReport

	callCtx, cancel := e.callCtx(ctx)
	if err := e.docs.Ping(callCtx); err != nil {
		report.Documents.Error = err.Error()
	} else {
		report.Documents.Connected = true
	}
	cancel()

	callCtx, cancel = e.callCtx(ctx)
	if err := e.graph.Ping(callCtx); err != nil {
		report.Graph.Error = err.Error()
	} else {
		report.Graph.Connected = true
	}
	cancel()

	return report
}
