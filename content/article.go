package content

import (
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxTitleLength is the width of the title column.
const MaxTitleLength = 255

type ArticleID int64

// Article is a single feed entry, either in flight between the fetcher and
// the store, or loaded back from the store.
type Article struct {
	ID       ArticleID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Content  string    `json:"content" db:"content"`
	PubDate  time.Time `json:"pubDate" db:"pub_date"`
	URL      string    `json:"url" db:"url"`
	Category Category  `json:"category" db:"category"`
}

// Validate checks the fields required for storing the article.
func (a Article) Validate() error {
	if a.URL == "" {
		return NewValidationError(errors.New("Article has no url"))
	}

	if u, err := url.Parse(a.URL); err != nil || !u.IsAbs() {
		return NewValidationError(errors.Errorf("Article url %q is not absolute", a.URL))
	}

	if utf8.RuneCountInString(a.Title) > MaxTitleLength {
		return NewValidationError(errors.Errorf("Article title is longer than %d characters", MaxTitleLength))
	}

	if a.Category != "" {
		if err := a.Category.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Categorized returns a copy of the article with the default category set,
// if none was assigned.
func (a Article) Categorized() Article {
	if a.Category == "" {
		a.Category = Uncategorized
	}

	return a
}

func (a Article) String() string {
	return fmt.Sprintf("%s (%s)", a.Title, a.URL)
}
