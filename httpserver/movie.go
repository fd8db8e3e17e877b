package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/genres", s.handleListGenres)
	g.GET("/movies/now-playing-movies", s.handleNowPlayingMovies)
	g.GET("/movies/:id", s.handleMovieDetails)
}

// handleSearchMovies godoc
// @Summary Search movies
// @Description Proxy a title search to the external metadata provider
// @Tags movies
// @Produce json
// @Param query query string true "Search query"
// @Param page query int false "Result page (1-1000), default 1"
// @Success 200 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	req := SearchMoviesRequest{
		Query: strings.TrimSpace(c.QueryParam("query")),
		Page:  1,
	}
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(map[string][]string{"page": {"must be an integer"}})
		}
		req.Page = page
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := s.MovieService.Search(c.Request().Context(), req.Query, req.Page)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleMovieDetails godoc
// @Summary Movie details
// @Description Proxy a movie detail lookup to the external metadata provider
// @Tags movies
// @Produce json
// @Param id path int true "External movie id"
// @Success 200 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleMovieDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		ve := NewValidationError(map[string][]string{"id": {"must be a positive integer"}})
		ve.Message = "Invalid movie ID"
		return ve
	}

	result, err := s.MovieService.Details(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleListGenres godoc
// @Summary List genres
// @Description Proxy the provider's genre list, unwrapped from its envelope
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/movies/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	genres, err := s.MovieService.Genres(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, genres)
}

// handleNowPlayingMovies godoc
// @Summary Now playing
// @Description Proxy the provider's now-playing list with the configured region
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/movies/now-playing-movies [get]
func (s *Server) handleNowPlayingMovies(c echo.Context) error {
	// the boundary takes no pagination here; the gateway defaults apply
	result, err := s.MovieService.NowPlaying(c.Request().Context(), 1, "")
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}
