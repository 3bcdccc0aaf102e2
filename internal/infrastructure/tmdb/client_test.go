package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailsJSON = `{
  "id": 329865,
  "title": "Arrival",
  "overview": "Taking place after alien crafts land around the world.",
  "release_date": "2016-11-10",
  "runtime": 116,
  "poster_path": "/poster.jpg",
  "backdrop_path": null,
  "vote_average": 7.6,
  "vote_count": 17000,
  "genres": [{"id": 878, "name": "Science Fiction"}],
  "credits": {
    "cast": [{"id": 9273, "name": "Amy Adams", "character": "Louise Banks", "profile_path": "/amy.jpg"}],
    "crew": [{"id": 137427, "name": "Denis Villeneuve", "job": "Director", "profile_path": null}]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Timeout: time.Second})
}

func TestClient_SearchMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "The Matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-30","poster_path":"/m.jpg"},
			{"id":604,"title":"The Matrix Reloaded","release_date":"","poster_path":null}
		]}`))
	})

	got, err := client.SearchMovies(context.Background(), "The Matrix")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 603, got[0].ID)
	assert.Equal(t, 1999, got[0].ReleaseYear())
	assert.Equal(t, "/m.jpg", got[0].PosterPath)
	assert.Equal(t, 0, got[1].ReleaseYear())
	assert.Empty(t, got[1].PosterPath)
}

func TestClient_MovieDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/329865", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(detailsJSON))
	})

	d, err := client.MovieDetails(context.Background(), 329865)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Arrival", d.Title)
	assert.Equal(t, 2016, d.ReleaseYear())
	assert.Equal(t, 116, d.Runtime)
	assert.Empty(t, d.BackdropPath)
	require.Len(t, d.Genres, 1)
	assert.Equal(t, "Science Fiction", d.Genres[0].Name)
	require.Len(t, d.Cast, 1)
	assert.Equal(t, "Louise Banks", d.Cast[0].Character)
	assert.Equal(t, "/amy.jpg", d.Cast[0].ProfilePath)
	require.Len(t, d.Crew, 1)
	assert.Equal(t, "Director", d.Crew[0].Job)
}

func TestClient_MovieDetails_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	d, err := client.MovieDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.SearchMovies(context.Background(), "Arrival")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.NotContains(t, err.Error(), "test-key")
}

func TestClient_TransportErrorHidesKey(t *testing.T) {
	client := NewClient(Config{APIKey: "secret-key", BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})

	_, err := client.SearchMovies(context.Background(), "Arrival")
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "error leaks api key: %v", err)
}

func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := client.SearchMovies(context.Background(), "Arrival")
	assert.Error(t, err)
}

func TestClient_HonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.MovieDetails(ctx, 1)
	assert.Error(t, err)
}
