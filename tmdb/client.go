// Package tmdb implements movie.Service against The Movie Database HTTP API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cinelist/errs"
	"cinelist/movie"
)

type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Region   string
}

// Client issues one outbound GET per operation, injecting the API key and
// response language on every request. No retry, no backoff: an upstream
// failure surfaces as a single EINTERNAL error.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	region   string
	http     *http.Client
}

func NewClient(opts Options) *Client {
	return &Client{
		apiKey:   opts.APIKey,
		baseURL:  opts.BaseURL,
		language: opts.Language,
		region:   opts.Region,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	if query == "" {
		return nil, movie.ErrInvalidQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/search/movie", params)
}

func (c *Client) Details(ctx context.Context, id int64) (json.RawMessage, error) {
	if id < 1 {
		return nil, movie.ErrInvalidID
	}
	return c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{})
}

// Genres unwraps the provider's {"genres": [...]} envelope.
func (c *Client) Genres(ctx context.Context) ([]movie.Genre, error) {
	body, err := c.get(ctx, "/genre/movie/list", url.Values{})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Genres []movie.Genre `json:"genres"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "tmdb: decode genres: %v", err)
	}
	if payload.Genres == nil {
		payload.Genres = []movie.Genre{}
	}
	return payload.Genres, nil
}

func (c *Client) NowPlaying(ctx context.Context, page int, region string) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if region == "" {
		region = c.region
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("region", region)
	return c.get(ctx, "/movie/now_playing", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "tmdb: build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "tmdb: %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Errorf(errs.EINTERNAL, "tmdb: %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "tmdb: read response: %v", err)
	}
	return body, nil
}
