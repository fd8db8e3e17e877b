package httpserver

import (
	"time"

	"cinelist/favorite"
)

// AddFavoriteRequest mirrors the movie object the frontend receives from the
// search proxy; the external id arrives as "id".
type AddFavoriteRequest struct {
	ID               int64    `json:"id" validate:"required,min=1"`
	Title            string   `json:"title" validate:"required,max=255"`
	Overview         *string  `json:"overview"`
	PosterPath       *string  `json:"poster_path" validate:"omitempty,max=255"`
	BackdropPath     *string  `json:"backdrop_path" validate:"omitempty,max=255"`
	ReleaseDate      *string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	VoteAverage      *float64 `json:"vote_average" validate:"omitempty,min=0,max=10"`
	VoteCount        *int     `json:"vote_count" validate:"omitempty,min=0"`
	GenreIDs         []int64  `json:"genre_ids" validate:"omitempty,dive,min=1"`
	OriginalLanguage *string  `json:"original_language" validate:"omitempty,max=10"`
	Adult            *bool    `json:"adult"`
	Popularity       *float64 `json:"popularity" validate:"omitempty,min=0"`
}

func (r AddFavoriteRequest) ToFavorite() favorite.Favorite {
	f := favorite.Favorite{
		TMDBID:           r.ID,
		Title:            r.Title,
		Overview:         r.Overview,
		PosterPath:       r.PosterPath,
		BackdropPath:     r.BackdropPath,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		GenreIDs:         r.GenreIDs,
		OriginalLanguage: r.OriginalLanguage,
		Popularity:       r.Popularity,
	}
	if r.Adult != nil {
		f.Adult = *r.Adult
	}
	if r.ReleaseDate != nil {
		// format already validated
		if d, err := time.Parse("2006-01-02", *r.ReleaseDate); err == nil {
			f.ReleaseDate = &d
		}
	}
	return f
}

type SearchMoviesRequest struct {
	Query string `query:"query" json:"query" validate:"required,max=255"`
	Page  int    `query:"page" json:"page" validate:"min=1,max=1000"`
}
