package favorite

import (
	"time"

	"cinelist/errs"
)

var (
	ErrNotFound     = errs.Errorf(errs.ENOTFOUND, "movie not found in favorites list")
	ErrInvalidID    = errs.Errorf(errs.EINVALID, "invalid movie id")
	ErrInvalidTitle = errs.Errorf(errs.EINVALID, "invalid title")
)

// Favorite is a saved reference to a movie identified by the external
// provider. Rows are never physically deleted: removing a favorite only
// clears IsActive, so re-adding the same movie reactivates the original row
// with its original attributes and CreatedAt.
type Favorite struct {
	TMDBID           int64      `json:"tmdb_id"`
	Title            string     `json:"title"`
	Overview         *string    `json:"overview"`
	PosterPath       *string    `json:"poster_path"`
	BackdropPath     *string    `json:"backdrop_path"`
	ReleaseDate      *time.Time `json:"release_date"`
	VoteAverage      *float64   `json:"vote_average"`
	VoteCount        *int       `json:"vote_count"`
	GenreIDs         []int64    `json:"genre_ids"`
	OriginalLanguage *string    `json:"original_language"`
	Adult            bool       `json:"adult"`
	Popularity       *float64   `json:"popularity"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (f Favorite) Validate() error {
	if f.TMDBID < 1 {
		return ErrInvalidID
	}

	if f.Title == "" || len(f.Title) > 255 {
		return ErrInvalidTitle
	}

	return nil
}

// HasAnyGenre reports whether the favorite's genres intersect ids. An empty
// filter matches everything.
func (f Favorite) HasAnyGenre(ids []int64) bool {
	if len(ids) == 0 {
		return true
	}
	for _, want := range ids {
		for _, got := range f.GenreIDs {
			if want == got {
				return true
			}
		}
	}
	return false
}
