package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cinelist/favorite"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FavoriteRepository stores favorites in a DynamoDB table keyed by tmdb_id.
// The genre filter and the newest-first ordering are applied in process after
// a scan; the favorites list is small by design.
type FavoriteRepository struct {
	client *dynamodb.Client
	table  string
}

type favoriteItem struct {
	TMDBID           int64    `dynamodbav:"tmdb_id"`
	Title            string   `dynamodbav:"title"`
	Overview         *string  `dynamodbav:"overview"`
	PosterPath       *string  `dynamodbav:"poster_path"`
	BackdropPath     *string  `dynamodbav:"backdrop_path"`
	ReleaseDate      *string  `dynamodbav:"release_date"`
	VoteAverage      *float64 `dynamodbav:"vote_average"`
	VoteCount        *int     `dynamodbav:"vote_count"`
	GenreIDs         []int64  `dynamodbav:"genre_ids"`
	OriginalLanguage *string  `dynamodbav:"original_language"`
	Adult            bool     `dynamodbav:"adult"`
	Popularity       *float64 `dynamodbav:"popularity"`
	IsActive         bool     `dynamodbav:"is_active"`
	CreatedAt        string   `dynamodbav:"created_at"`
}

func NewFavoriteRepository(client *dynamodb.Client, table string) *FavoriteRepository {
	return &FavoriteRepository{
		client: client,
		table:  table,
	}
}

func (r *FavoriteRepository) Find(ctx context.Context, tmdbID int64) (favorite.Favorite, error) {
	if err := validateTable(r.table); err != nil {
		return favorite.Favorite{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            favoriteKey(tmdbID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("dynamodb: get favorite: %w", err)
	}
	if len(out.Item) == 0 {
		return favorite.Favorite{}, favorite.ErrNotFound
	}

	var item favoriteItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return favorite.Favorite{}, fmt.Errorf("dynamodb: unmarshal favorite: %w", err)
	}
	return item.toFavorite(), nil
}

func (r *FavoriteRepository) FindActive(ctx context.Context, tmdbID int64) (favorite.Favorite, error) {
	f, err := r.Find(ctx, tmdbID)
	if err != nil {
		return favorite.Favorite{}, err
	}
	if !f.IsActive {
		return favorite.Favorite{}, favorite.ErrNotFound
	}
	return f, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, f favorite.Favorite) (favorite.Favorite, error) {
	if err := validateTable(r.table); err != nil {
		return favorite.Favorite{}, err
	}

	// no server-side column defaults here, unlike the relational table
	f.CreatedAt = time.Now().UTC()
	av, err := attributevalue.MarshalMap(fromFavorite(f))
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("dynamodb: marshal favorite: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(tmdb_id)"),
	})
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("dynamodb: put favorite: %w", err)
	}

	return f, nil
}

func (r *FavoriteRepository) SetActive(ctx context.Context, tmdbID int64, active bool) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 favoriteKey(tmdbID),
		UpdateExpression:    aws.String("SET is_active = :active"),
		ConditionExpression: aws.String("attribute_exists(tmdb_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: active},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return favorite.ErrNotFound
		}
		return fmt.Errorf("dynamodb: update favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListActive(ctx context.Context, genreIDs []int64) ([]favorite.Favorite, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	var favorites []favorite.Favorite
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:        &r.table,
		FilterExpression: aws.String("is_active = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan favorites: %w", err)
		}

		var items []favoriteItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal favorites: %w", err)
		}
		for _, item := range items {
			f := item.toFavorite()
			if !f.HasAnyGenre(genreIDs) {
				continue
			}
			favorites = append(favorites, f)
		}
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})
	return favorites, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, tmdbID int64) (bool, error) {
	_, err := r.Find(ctx, tmdbID)
	if errors.Is(err, favorite.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func favoriteKey(tmdbID int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tmdb_id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tmdbID)},
	}
}

func (i favoriteItem) toFavorite() favorite.Favorite {
	f := favorite.Favorite{
		TMDBID:           i.TMDBID,
		Title:            i.Title,
		Overview:         i.Overview,
		PosterPath:       i.PosterPath,
		BackdropPath:     i.BackdropPath,
		VoteAverage:      i.VoteAverage,
		VoteCount:        i.VoteCount,
		GenreIDs:         i.GenreIDs,
		OriginalLanguage: i.OriginalLanguage,
		Adult:            i.Adult,
		Popularity:       i.Popularity,
		IsActive:         i.IsActive,
	}
	if f.GenreIDs == nil {
		f.GenreIDs = []int64{}
	}
	if i.ReleaseDate != nil {
		if d, err := time.Parse("2006-01-02", *i.ReleaseDate); err == nil {
			f.ReleaseDate = &d
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, i.CreatedAt); err == nil {
		f.CreatedAt = t
	}
	return f
}

func fromFavorite(f favorite.Favorite) favoriteItem {
	item := favoriteItem{
		TMDBID:           f.TMDBID,
		Title:            f.Title,
		Overview:         f.Overview,
		PosterPath:       f.PosterPath,
		BackdropPath:     f.BackdropPath,
		VoteAverage:      f.VoteAverage,
		VoteCount:        f.VoteCount,
		GenreIDs:         f.GenreIDs,
		OriginalLanguage: f.OriginalLanguage,
		Adult:            f.Adult,
		Popularity:       f.Popularity,
		IsActive:         f.IsActive,
		CreatedAt:        f.CreatedAt.Format(time.RFC3339Nano),
	}
	if f.ReleaseDate != nil {
		d := f.ReleaseDate.Format("2006-01-02")
		item.ReleaseDate = &d
	}
	return item
}
