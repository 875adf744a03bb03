package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/reelmatch/internal/core/errs"
	"github.com/agenthands/reelmatch/internal/core/match"
	"github.com/agenthands/reelmatch/internal/core/model"
)

// MockDocumentStore pages Movies out of a slice like the real client would.
type MockDocumentStore struct {
	Movies     []model.Movie
	ListErr    error
	SearchErr  error
	UpdateErr  error
	PingErr    error
	ListCalls  int
	LastPatch  map[string]any
	LastTarget string
}

func (m *MockDocumentStore) List(ctx context.Context, page, limit int) ([]model.Movie, bool, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, false, m.ListErr
	}
	if page < 1 || limit < 1 {
		return nil, false, fmt.Errorf("%w: bad pagination", errs.ErrInvalidArgument)
	}
	start := (page - 1) * limit
	if start >= len(m.Movies) {
		return nil, false, nil
	}
	end := start + limit
	if end > len(m.Movies) {
		end = len(m.Movies)
	}
	return m.Movies[start:end], end < len(m.Movies), nil
}

func (m *MockDocumentStore) SearchByTitle(ctx context.Context, substring string) ([]model.Movie, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	var out []model.Movie
	for _, movie := range m.Movies {
		if containsFold(movie.Title, substring) {
			out = append(out, movie)
		}
	}
	return out, nil
}

func (m *MockDocumentStore) SearchByActor(ctx context.Context, name string) ([]model.Movie, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	var out []model.Movie
	for _, movie := range m.Movies {
		for _, actor := range movie.Cast {
			if containsFold(actor, name) {
				out = append(out, movie)
				break
			}
		}
	}
	return out, nil
}

func (m *MockDocumentStore) UpdateByTitle(ctx context.Context, title string, patch map[string]any) (model.Movie, error) {
	m.LastTarget = title
	m.LastPatch = patch
	if m.UpdateErr != nil {
		return model.Movie{}, m.UpdateErr
	}
	var matched []model.Movie
	for _, movie := range m.Movies {
		if movie.Title == title {
			matched = append(matched, movie)
		}
	}
	switch {
	case len(matched) == 0:
		return model.Movie{}, fmt.Errorf("%w: no movie titled %q", errs.ErrNotFound, title)
	case len(matched) > 1:
		return model.Movie{}, fmt.Errorf("%w: %d movies titled %q", errs.ErrAmbiguousTarget, len(matched), title)
	}
	return matched[0], nil
}

func (m *MockDocumentStore) Ping(ctx context.Context) error {
	return m.PingErr
}

// MockGraphStore serves a fixed node/user/rating fixture.
type MockGraphStore struct {
	Nodes    []model.MovieNode
	Users    []model.UserNode
	Ratings  map[string][]model.RatedMovie // keyed by user ID
	Raters   map[string][]model.UserRating // keyed by normalized title
	ListErr  error
	UsersErr error
	FindErr  error
	RatedErr error
	PingErr  error
}

func (m *MockGraphStore) FindMovieNodes(ctx context.Context, title string) ([]model.MovieNode, error) {
	var out []model.MovieNode
	for _, n := range m.Nodes {
		if containsFold(n.Title, title) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockGraphStore) ListMovieNodes(ctx context.Context) ([]model.MovieNode, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Nodes, nil
}

func (m *MockGraphStore) UsersWhoRated(ctx context.Context, title string) ([]model.UserRating, error) {
	if m.UsersErr != nil {
		return nil, m.UsersErr
	}
	users, ok := m.Raters[foldKey(title)]
	if !ok {
		return nil, fmt.Errorf("%w: no graph movie titled %q", errs.ErrNotFound, title)
	}
	return users, nil
}

func (m *MockGraphStore) FindUser(ctx context.Context, name string) (model.UserNode, error) {
	if m.FindErr != nil {
		return model.UserNode{}, m.FindErr
	}
	for _, u := range m.Users {
		if u.Name == name {
			return u, nil
		}
	}
	return model.UserNode{}, fmt.Errorf("%w: no user named %q", errs.ErrNotFound, name)
}

func (m *MockGraphStore) MoviesRatedBy(ctx context.Context, userID string) ([]model.RatedMovie, error) {
	if m.RatedErr != nil {
		return nil, m.RatedErr
	}
	return m.Ratings[userID], nil
}

func (m *MockGraphStore) Ping(ctx context.Context) error {
	return m.PingErr
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(match.Normalize(haystack), match.Normalize(needle))
}

func foldKey(s string) string {
	return match.Normalize(s)
}
