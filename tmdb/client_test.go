package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinelist/errs"
	"cinelist/movie"
	"cinelist/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*tmdb.Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := tmdb.NewClient(tmdb.Options{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Language: "pt-BR",
		Region:   "BR",
	})
	return client, srv
}

func TestSearch(t *testing.T) {
	t.Run("injects credentials and relays body untouched", func(t *testing.T) {
		upstream := `{"page":2,"results":[{"id":550,"title":"Fight Club"}],"total_pages":3}`
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "pt-BR", r.URL.Query().Get("language"))
			assert.Equal(t, "fight club", r.URL.Query().Get("query"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			w.Write([]byte(upstream))
		}))
		defer srv.Close()

		body, err := client.Search(context.Background(), "fight club", 2)

		require.NoError(t, err)
		assert.JSONEq(t, upstream, string(body))
	})

	t.Run("defaults to page 1", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := client.Search(context.Background(), "matrix", 0)
		assert.NoError(t, err)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		client := tmdb.NewClient(tmdb.Options{})

		_, err := client.Search(context.Background(), "", 1)

		assert.Equal(t, movie.ErrInvalidQuery, err)
	})

	t.Run("surfaces upstream failure as internal error", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := client.Search(context.Background(), "matrix", 1)

		assert.Error(t, err)
		assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
	})
}

func TestDetails(t *testing.T) {
	t.Run("requests movie by id", func(t *testing.T) {
		upstream := `{"id":550,"title":"Fight Club","runtime":139}`
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/550", r.URL.Path)
			w.Write([]byte(upstream))
		}))
		defer srv.Close()

		body, err := client.Details(context.Background(), 550)

		require.NoError(t, err)
		assert.JSONEq(t, upstream, string(body))
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		client := tmdb.NewClient(tmdb.Options{})

		_, err := client.Details(context.Background(), 0)

		assert.Equal(t, movie.ErrInvalidID, err)
	})
}

func TestGenres(t *testing.T) {
	t.Run("unwraps the genres envelope", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/genre/movie/list", r.URL.Path)
			w.Write([]byte(`{"genres":[{"id":28,"name":"Ação"},{"id":18,"name":"Drama"}]}`))
		}))
		defer srv.Close()

		genres, err := client.Genres(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []movie.Genre{{ID: 28, Name: "Ação"}, {ID: 18, Name: "Drama"}}, genres)
	})

	t.Run("returns empty slice when envelope is missing", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		genres, err := client.Genres(context.Background())

		require.NoError(t, err)
		assert.Empty(t, genres)
	})

	t.Run("fails on malformed body", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"genres":`))
		}))
		defer srv.Close()

		_, err := client.Genres(context.Background())

		assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
	})
}

func TestNowPlaying(t *testing.T) {
	t.Run("uses configured region by default", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/now_playing", r.URL.Path)
			assert.Equal(t, "BR", r.URL.Query().Get("region"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		_, err := client.NowPlaying(context.Background(), 0, "")
		assert.NoError(t, err)
	})

	t.Run("caller region wins over the default", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "US", r.URL.Query().Get("region"))
			w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		_, err := client.NowPlaying(context.Background(), 1, "US")
		assert.NoError(t, err)
	})
}
