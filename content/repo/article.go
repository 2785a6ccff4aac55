package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content"
)

// ErrTitleConflict is returned when an article with a new url carries the
// title of an already stored article, and titles are unique.
var ErrTitleConflict = errors.New("article title already stored")

// IsTitleConflict reports whether the cause of err is ErrTitleConflict.
func IsTitleConflict(err error) bool {
	return errors.Cause(err) == ErrTitleConflict
}

// Article allows storing and fetching content.Article objects
type Article interface {
	// Store inserts the article unless one with the same url exists.
	// The returned boolean reports whether a new row was created.
	Store(context.Context, content.Article) (bool, error)

	GetByURL(context.Context, string) (content.Article, error)

	All(context.Context, ...content.QueryOpt) ([]content.Article, error)
	Count(context.Context, ...content.QueryOpt) (int64, error)
}
