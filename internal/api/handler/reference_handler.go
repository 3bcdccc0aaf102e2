package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// ReferenceHandler serves the read-only director, actor and genre listings.
type ReferenceHandler struct {
	service ports.ReferenceService
}

func NewReferenceHandler(service ports.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// ListDirectors handles GET /api/directors.
//
// @Summary      List directors
// @Tags         directors
// @Produce      json
// @Success      200  {array}   personResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/directors [get]
func (h *ReferenceHandler) ListDirectors(c echo.Context) error {
	people, err := h.service.ListDirectors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPersonResponses(people))
}

// GetDirector handles GET /api/directors/:id.
//
// @Summary      Get a director with their movies
// @Tags         directors
// @Produce      json
// @Param        id   path      string  true  "Director id"
// @Success      200  {object}  personDetailResponse
// @Failure      404  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/directors/{id} [get]
func (h *ReferenceHandler) GetDirector(c echo.Context) error {
	detail, err := h.service.GetDirector(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPersonDetailResponse(detail))
}

// ListActors handles GET /api/actors.
//
// @Summary      List actors
// @Tags         actors
// @Produce      json
// @Success      200  {array}   personResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/actors [get]
func (h *ReferenceHandler) ListActors(c echo.Context) error {
	people, err := h.service.ListActors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPersonResponses(people))
}

// GetActor handles GET /api/actors/:id.
//
// @Summary      Get an actor with their movies
// @Tags         actors
// @Produce      json
// @Param        id   path      string  true  "Actor id"
// @Success      200  {object}  personDetailResponse
// @Failure      404  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/actors/{id} [get]
func (h *ReferenceHandler) GetActor(c echo.Context) error {
	detail, err := h.service.GetActor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPersonDetailResponse(detail))
}

// ListGenres handles GET /api/genres.
//
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Success      200  {array}   genreResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/genres [get]
func (h *ReferenceHandler) ListGenres(c echo.Context) error {
	genres, err := h.service.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]genreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, toGenreResponse(g))
	}
	return c.JSON(http.StatusOK, out)
}

// GetGenre handles GET /api/genres/:id.
//
// @Summary      Get a genre with its movies
// @Tags         genres
// @Produce      json
// @Param        id   path      string  true  "Genre id"
// @Success      200  {object}  genreDetailResponse
// @Failure      404  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/genres/{id} [get]
func (h *ReferenceHandler) GetGenre(c echo.Context) error {
	detail, err := h.service.GetGenre(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genreDetailResponse{
		genreResponse: toGenreResponse(detail.Genre),
		Movies:        toMovieSummaries(detail.Movies),
	})
}

func toPersonResponses(people []domain.Person) []personResponse {
	out := make([]personResponse, 0, len(people))
	for _, p := range people {
		out = append(out, toPersonResponse(p))
	}
	return out
}

func toPersonDetailResponse(d *ports.PersonDetail) personDetailResponse {
	return personDetailResponse{
		personResponse: toPersonResponse(d.Person),
		Movies:         toMovieSummaries(d.Movies),
	}
}
