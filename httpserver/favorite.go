package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterFavoriteRoutes(g *echo.Group) {
	g.GET("/favorites", s.handleListFavorites)
	g.POST("/favorites", s.handleAddFavorite)
	g.DELETE("/favorites/:tmdbId", s.handleRemoveFavorite)
	g.GET("/favorites/check/:tmdbId", s.handleCheckFavorite)
}

// handleListFavorites godoc
// @Summary List favorites
// @Description List active favorite movies, optionally filtered by genre
// @Tags favorites
// @Produce json
// @Param genre_ids[] query []int false "Genre ids, matched as a logical OR"
// @Success 200 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /api/favorites [get]
func (s *Server) handleListFavorites(c echo.Context) error {
	genreIDs, err := genreIDsParam(c)
	if err != nil {
		return err
	}

	favorites, err := s.FavoriteService.List(c.Request().Context(), genreIDs)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, favorites)
}

// handleAddFavorite godoc
// @Summary Add favorite
// @Description Add a movie to favorites; re-adding reactivates a removed one
// @Tags favorites
// @Accept json
// @Produce json
// @Param movie body AddFavoriteRequest true "Movie from the search proxy"
// @Success 201 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /api/favorites [post]
func (s *Server) handleAddFavorite(c echo.Context) error {
	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(map[string][]string{"body": {"must be valid JSON"}})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	f, err := s.FavoriteService.Add(c.Request().Context(), req.ToFavorite())
	if err != nil {
		return err
	}

	return writeSuccessMessage(c, http.StatusCreated, "Movie successfully added to favorites", f)
}

// handleRemoveFavorite godoc
// @Summary Remove favorite
// @Description Soft-remove a movie from favorites
// @Tags favorites
// @Produce json
// @Param tmdbId path int true "External movie id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/favorites/{tmdbId} [delete]
func (s *Server) handleRemoveFavorite(c echo.Context) error {
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	if err := s.FavoriteService.Remove(c.Request().Context(), tmdbID); err != nil {
		return err
	}

	return writeSuccessMessage(c, http.StatusOK, "Movie successfully removed from favorites", nil)
}

// handleCheckFavorite godoc
// @Summary Check favorite
// @Description Report whether any favorite row exists for the movie, active or not
// @Tags favorites
// @Produce json
// @Param tmdbId path int true "External movie id"
// @Success 200 {object} APIResponse
// @Router /api/favorites/check/{tmdbId} [get]
func (s *Server) handleCheckFavorite(c echo.Context) error {
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	isFavorite := s.FavoriteService.IsFavorite(c.Request().Context(), tmdbID)

	return writeSuccess(c, http.StatusOK, map[string]bool{
		"is_favorite": isFavorite,
	})
}

func tmdbIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("tmdbId"), 10, 64)
	if err != nil || id < 1 {
		ve := NewValidationError(map[string][]string{"tmdb_id": {"must be a positive integer"}})
		ve.Message = "Invalid movie ID"
		return 0, ve
	}
	return id, nil
}

// genreIDsParam accepts both genre_ids[]= and genre_ids= spellings.
func genreIDsParam(c echo.Context) ([]int64, error) {
	params := c.QueryParams()
	raw := params["genre_ids[]"]
	if len(raw) == 0 {
		raw = params["genre_ids"]
	}

	var genreIDs []int64
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			return nil, NewValidationError(map[string][]string{
				"genre_ids": {"must contain positive integers"},
			})
		}
		genreIDs = append(genreIDs, id)
	}
	return genreIDs, nil
}
