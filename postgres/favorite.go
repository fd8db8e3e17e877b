package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinelist/favorite"

	"gorm.io/gorm"
)

// GenreIDs is stored as a jsonb array so the genre filter can use jsonb
// containment instead of a join table.
type GenreIDs []int64

func (g GenreIDs) Value() (driver.Value, error) {
	if g == nil {
		g = GenreIDs{}
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *GenreIDs) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	case nil:
		*g = GenreIDs{}
		return nil
	default:
		return fmt.Errorf("postgres: cannot scan %T into GenreIDs", src)
	}
}

// FavoriteModel represents the database model for favorite movies.
// Rows are soft deleted: is_active flips instead of deleting, so the
// uniqueness of tmdb_id spans removed favorites too.
type FavoriteModel struct {
	ID               uint   `gorm:"primaryKey"`
	TMDBID           int64  `gorm:"column:tmdb_id;not null;uniqueIndex"`
	Title            string `gorm:"not null"`
	Overview         *string
	PosterPath       *string
	BackdropPath     *string
	ReleaseDate      *time.Time `gorm:"type:date"`
	VoteAverage      *float64   `gorm:"type:numeric(3,1)"`
	VoteCount        *int
	GenreIDs         GenreIDs `gorm:"type:jsonb;not null;default:'[]'"`
	OriginalLanguage *string
	Adult            bool     `gorm:"not null;default:false"`
	Popularity       *float64 `gorm:"type:numeric(10,3)"`
	IsActive         bool     `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (FavoriteModel) TableName() string {
	return "favorite_movies"
}

// FavoriteRepository implements favorite.Repository interface
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Find(ctx context.Context, tmdbID int64) (favorite.Favorite, error) {
	var model FavoriteModel
	err := r.db.WithContext(ctx).Where("tmdb_id = ?", tmdbID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return favorite.Favorite{}, favorite.ErrNotFound
	}
	if err != nil {
		return favorite.Favorite{}, err
	}
	return model.toFavorite(), nil
}

func (r *FavoriteRepository) FindActive(ctx context.Context, tmdbID int64) (favorite.Favorite, error) {
	var model FavoriteModel
	err := r.db.WithContext(ctx).
		Where("tmdb_id = ? AND is_active = ?", tmdbID, true).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return favorite.Favorite{}, favorite.ErrNotFound
	}
	if err != nil {
		return favorite.Favorite{}, err
	}
	return model.toFavorite(), nil
}

func (r *FavoriteRepository) Create(ctx context.Context, f favorite.Favorite) (favorite.Favorite, error) {
	model := fromFavorite(f)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return favorite.Favorite{}, err
	}
	return model.toFavorite(), nil
}

func (r *FavoriteRepository) SetActive(ctx context.Context, tmdbID int64, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("tmdb_id = ?", tmdbID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return favorite.ErrNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListActive(ctx context.Context, genreIDs []int64) ([]favorite.Favorite, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)

	// genre filter is a logical OR: any requested id contained in genre_ids
	if len(genreIDs) > 0 {
		cond := r.db.Where("genre_ids @> ?", GenreIDs{genreIDs[0]})
		for _, id := range genreIDs[1:] {
			cond = cond.Or("genre_ids @> ?", GenreIDs{id})
		}
		q = q.Where(cond)
	}

	var models []FavoriteModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	favorites := make([]favorite.Favorite, len(models))
	for i, model := range models {
		favorites[i] = model.toFavorite()
	}
	return favorites, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, tmdbID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("tmdb_id = ?", tmdbID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m FavoriteModel) toFavorite() favorite.Favorite {
	return favorite.Favorite{
		TMDBID:           m.TMDBID,
		Title:            m.Title,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		ReleaseDate:      m.ReleaseDate,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		GenreIDs:         m.GenreIDs,
		OriginalLanguage: m.OriginalLanguage,
		Adult:            m.Adult,
		Popularity:       m.Popularity,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
	}
}

func fromFavorite(f favorite.Favorite) FavoriteModel {
	return FavoriteModel{
		TMDBID:           f.TMDBID,
		Title:            f.Title,
		Overview:         f.Overview,
		PosterPath:       f.PosterPath,
		BackdropPath:     f.BackdropPath,
		ReleaseDate:      f.ReleaseDate,
		VoteAverage:      f.VoteAverage,
		VoteCount:        f.VoteCount,
		GenreIDs:         GenreIDs(f.GenreIDs),
		OriginalLanguage: f.OriginalLanguage,
		Adult:            f.Adult,
		Popularity:       f.Popularity,
		IsActive:         f.IsActive,
	}
}
