package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// MovieHandler handles HTTP requests for catalog movies.
type MovieHandler struct {
	service ports.CatalogService
}

func NewMovieHandler(service ports.CatalogService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List handles GET /api/movies.
//
// @Summary      List movies
// @Description  Returns one page of 16 movies, newest first. Keyword matches the title case-insensitively; genres is a comma-separated list of genre ids.
// @Tags         movies
// @Produce      json
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        keyword   query     string  false  "Title substring"
// @Param        genres    query     string  false  "Comma-separated genre ids"
// @Param        director  query     string  false  "Director id"
// @Success      200       {object}  moviePageResponse
// @Failure      400       {object}  messageResponse
// @Failure      401       {object}  messageResponse
// @Failure      500       {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	var q listMoviesQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.service.ListMovies(c.Request().Context(), toListInput(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMoviePageResponse(page))
}

// Get handles GET /api/movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  movieDetailResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.service.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieDetailResponse(movie, false))
}

// GetEnriched handles GET /api/movies/:id/tmdb. Metadata service failures
// never fail the request; the stored movie is returned with tmdbDataFound
// set to false.
//
// @Summary      Get a movie with live metadata
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  enrichedMovieResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/movies/{id}/tmdb [get]
func (h *MovieHandler) GetEnriched(c echo.Context) error {
	movie, err := h.service.GetEnrichedMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnrichedMovieResponse(movie))
}

// Create handles POST /api/movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMovieRequest  true  "Movie"
// @Success      201   {object}  movieResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	movie, err := h.service.CreateMovie(c.Request().Context(), toCreateMovieInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMovieResponse(movie))
}

// Update handles PUT /api/movies/:id. Only the fields present in the body
// are changed.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Movie id"
// @Param        body  body      updateMovieRequest  true  "Fields to change"
// @Success      200   {object}  movieResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	var req updateMovieRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	movie, err := h.service.UpdateMovie(c.Request().Context(), c.Param("id"), toUpdateMovieInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Delete handles DELETE /api/movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Movie removed"})
}
