package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 10 * time.Second
)

// StatusError is returned for any non-2xx answer other than 404 on a
// details lookup.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// Config holds the settings of a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.MetadataGateway against the TMDB v3 API. It does
// not retry; callers decide how to degrade.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Results []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		PosterPath  *string `json:"poster_path"`
	} `json:"results"`
}

type credit struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type detailsResponse struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Genres       []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []credit `json:"cast"`
		Crew []credit `json:"crew"`
	} `json:"credits"`
}

var errNotFound = errors.New("not found")

// SearchMovies returns the candidates TMDB ranks for title, best first.
func (c *Client) SearchMovies(ctx context.Context, title string) ([]ports.MetadataCandidate, error) {
	var resp searchResponse
	if err := c.get(ctx, "/search/movie", url.Values{"query": {title}}, &resp); err != nil {
		if errors.Is(err, errNotFound) {
			return []ports.MetadataCandidate{}, nil
		}
		return nil, err
	}

	out := make([]ports.MetadataCandidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, ports.MetadataCandidate{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			PosterPath:  deref(r.PosterPath),
		})
	}
	return out, nil
}

// MovieDetails fetches one movie with its credits. An unknown id yields
// nil details and a nil error.
func (c *Client) MovieDetails(ctx context.Context, id int) (*ports.MetadataDetails, error) {
	var resp detailsResponse
	err := c.get(ctx, "/movie/"+strconv.Itoa(id), url.Values{"append_to_response": {"credits"}}, &resp)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	d := &ports.MetadataDetails{
		ID:           resp.ID,
		Title:        resp.Title,
		Overview:     resp.Overview,
		ReleaseDate:  resp.ReleaseDate,
		Runtime:      resp.Runtime,
		PosterPath:   deref(resp.PosterPath),
		BackdropPath: deref(resp.BackdropPath),
		VoteAverage:  resp.VoteAverage,
		VoteCount:    resp.VoteCount,
		Genres:       make([]ports.MetadataGenre, 0, len(resp.Genres)),
		Cast:         credits(resp.Credits.Cast),
		Crew:         credits(resp.Credits.Crew),
	}
	for _, g := range resp.Genres {
		d.Genres = append(d.Genres, ports.MetadataGenre{ID: g.ID, Name: g.Name})
	}
	return d, nil
}

// get performs one GET and decodes the JSON body into out. Errors never
// include the request URL since it carries the API key.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("tmdb %s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("tmdb %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb %s: decode response: %w", endpoint, err)
	}
	return nil
}

func credits(in []credit) []ports.MetadataCredit {
	out := make([]ports.MetadataCredit, 0, len(in))
	for _, c := range in {
		out = append(out, ports.MetadataCredit{
			ID:          c.ID,
			Name:        c.Name,
			Job:         c.Job,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
