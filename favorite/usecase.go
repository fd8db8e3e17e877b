package favorite

import (
	"context"
	"errors"

	"cinelist/pkg/sentry"
)

type Service interface {
	Add(ctx context.Context, f Favorite) (Favorite, error)
	List(ctx context.Context, genreIDs []int64) ([]Favorite, error)
	Remove(ctx context.Context, tmdbID int64) error
	IsFavorite(ctx context.Context, tmdbID int64) bool
}

type Repository interface {
	// Find returns the row for tmdbID regardless of its active flag,
	// or ErrNotFound.
	Find(ctx context.Context, tmdbID int64) (Favorite, error)
	// FindActive returns the active row for tmdbID, or ErrNotFound.
	FindActive(ctx context.Context, tmdbID int64) (Favorite, error)
	Create(ctx context.Context, f Favorite) (Favorite, error)
	SetActive(ctx context.Context, tmdbID int64, active bool) error
	// ListActive returns active favorites newest first. A non-empty genreIDs
	// restricts results to favorites sharing at least one genre.
	ListActive(ctx context.Context, genreIDs []int64) ([]Favorite, error)
	// Exists reports whether any row for tmdbID exists, active or not.
	Exists(ctx context.Context, tmdbID int64) (bool, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// Add is idempotent: re-adding an active favorite returns it unchanged and
// re-adding a removed one reactivates the existing row, keeping the fields
// and CreatedAt of the first add rather than the new payload.
//
// Two concurrent adds of a never-seen movie can race into duplicate rows;
// there is no explicit lock here and the unique index is the only guard.
func (uc *Usecase) Add(ctx context.Context, f Favorite) (Favorite, error) {
	if err := f.Validate(); err != nil {
		return Favorite{}, err
	}

	existing, err := uc.r.Find(ctx, f.TMDBID)
	if err == nil {
		if !existing.IsActive {
			if err := uc.r.SetActive(ctx, existing.TMDBID, true); err != nil {
				return Favorite{}, err
			}
			existing.IsActive = true
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Favorite{}, err
	}

	f.IsActive = true
	if f.GenreIDs == nil {
		f.GenreIDs = []int64{}
	}
	return uc.r.Create(ctx, f)
}

func (uc *Usecase) List(ctx context.Context, genreIDs []int64) ([]Favorite, error) {
	return uc.r.ListActive(ctx, genreIDs)
}

func (uc *Usecase) Remove(ctx context.Context, tmdbID int64) error {
	if tmdbID < 1 {
		return ErrInvalidID
	}

	if _, err := uc.r.FindActive(ctx, tmdbID); err != nil {
		return err
	}
	return uc.r.SetActive(ctx, tmdbID, false)
}

// IsFavorite counts any row, active or not. A removed favorite therefore
// still reports true; callers relying on the listing should not assume the
// two views agree. Storage failures degrade to false.
func (uc *Usecase) IsFavorite(ctx context.Context, tmdbID int64) bool {
	if tmdbID < 1 {
		return false
	}

	exists, err := uc.r.Exists(ctx, tmdbID)
	if err != nil {
		sentry.WithExtras(map[string]interface{}{"tmdb_id": tmdbID}).Error(err)
		return false
	}
	return exists
}
