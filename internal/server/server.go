package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/reelmatch/internal/core"
	"github.com/agenthands/reelmatch/internal/core/errs"
	"github.com/agenthands/reelmatch/internal/core/model"
)

// Server is the thin HTTP facade over the reconciliation engine: it
// translates query/path parameters into typed engine calls and engine errors
// into statuses. No reconciliation logic lives here.
type Server struct {
	Engine *core.Engine
}

func New(engine *core.Engine) *Server {
	return &Server{Engine: engine}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	r.GET("/health", s.Health)
	r.GET("/movies", s.ListMovies)
	r.GET("/movies/search", s.SearchMovies)
	r.GET("/movies/common", s.CommonMovies)
	r.GET("/movies/:movie_name/users", s.UsersForMovie)
	r.PATCH("/movies/:movie_name", s.UpdateMovie)
	r.GET("/users/:user_name", s.UserProfile)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAmbiguousTarget):
		return http.StatusConflict
	case errors.Is(err, errs.ErrStoreTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes the error envelope. NotFound and AmbiguousTarget are expected
// outcomes and not logged; store-side failures are.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request %s failed: %v", c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func (s *Server) ListMovies(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		s.fail(c, err)
		return
	}
	limit, err := intQuery(c, "limit", 20)
	if err != nil {
		s.fail(c, err)
		return
	}

	movies, hasMore, err := s.Engine.ListMovies(c.Request.Context(), page, limit)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"page":     page,
		"limit":    limit,
		"count":    len(movies),
		"has_more": hasMore,
		"movies":   movies,
	})
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %q must be an integer, got %q", errs.ErrInvalidArgument, name, raw)
	}
	return v, nil
}

func (s *Server) SearchMovies(c *gin.Context) {
	name := c.Query("name")
	actor := c.Query("actor")

	if (name == "") == (actor == "") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "exactly one of 'name' or 'actor' is required",
		})
		return
	}

	var (
		movies []model.Movie
		err    error
	)
	if name != "" {
		movies, err = s.Engine.SearchByTitle(c.Request.Context(), name)
	} else {
		movies, err = s.Engine.SearchByActor(c.Request.Context(), actor)
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(movies),
		"movies":  movies,
	})
}

func (s *Server) UpdateMovie(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
		return
	}

	movie, err := s.Engine.UpdateByTitle(c.Request.Context(), c.Param("movie_name"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "movie": movie})
}

func (s *Server) CommonMovies(c *gin.Context) {
	result, err := s.Engine.CommonMovies(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"document_count": result.DocumentTitles,
		"graph_count":    result.GraphTitles,
		"common_count":   len(result.Pairs),
		"pairs":          result.Pairs,
	})
}

func (s *Server) UsersForMovie(c *gin.Context) {
	title := c.Param("movie_name")

	users, err := s.Engine.UsersForMovie(c.Request.Context(), title)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"movie":       title,
		"users_count": len(users),
		"users":       users,
	})
}

func (s *Server) UserProfile(c *gin.Context) {
	enrich := c.Query("enrich") != ""

	profile, err := s.Engine.UserProfile(c.Request.Context(), c.Param("user_name"), enrich)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    profile.User,
		"rated":   profile.Rated,
	})
}

func (s *Server) Health(c *gin.Context) {
	report := s.Engine.Health(c.Request.Context())

	status := http.StatusOK
	overall := "healthy"
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"mongodb": storeStatusBody(report.Documents),
		"neo4j":   storeStatusBody(report.Graph),
	})
}

func storeStatusBody(s core.StoreStatus) gin.H {
	body := gin.H{"status": "disconnected"}
	if s.Connected {
		body["status"] = "connected"
	}
	if s.Error != "" {
		body["error"] = s.Error
	}
	return body
}
