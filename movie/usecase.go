package movie

import (
	"context"
	"encoding/json"
)

// Service proxies lookups to the external metadata provider. Search, Details
// and NowPlaying are pure passthroughs: the provider's JSON body is relayed
// to the caller without reshaping.
type Service interface {
	Search(ctx context.Context, query string, page int) (json.RawMessage, error)
	Details(ctx context.Context, id int64) (json.RawMessage, error)
	Genres(ctx context.Context) ([]Genre, error)
	NowPlaying(ctx context.Context, page int, region string) (json.RawMessage, error)
}
