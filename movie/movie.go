package movie

import "cinelist/errs"

var (
	ErrInvalidQuery = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrInvalidID    = errs.Errorf(errs.EINVALID, "invalid movie id")
)

// Genre is the one upstream payload this service reshapes: the provider
// wraps its genre list in an envelope that gets unwrapped before returning.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
