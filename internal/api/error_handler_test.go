package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"movie not found", domain.ErrMovieNotFound, http.StatusNotFound, "movie not found"},
		{"wrapped reference", fmt.Errorf("%w: director 42", domain.ErrReferenceNotFound), http.StatusNotFound, "referenced record not found: director 42"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"unauthorized", fmt.Errorf("%w: token failed", domain.ErrUnauthorized), http.StatusUnauthorized, "not authorized: token failed"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "not authorized as an admin"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Message)
			assert.Empty(t, body.Errors)
		})
	}
}

func TestHTTPErrorHandler_ValidationListsEveryViolation(t *testing.T) {
	ve := &domain.ValidationError{}
	ve.Add("title", "title is required")
	ve.Add("releaseYear", "releaseYear must be at least 1900")

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(fmt.Errorf("create movie: %w", ve), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, ve.Violations, body.Errors)
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
