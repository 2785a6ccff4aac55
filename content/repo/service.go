//go:generate mockgen -package mock_repo -destination mock_repo/article.go github.com/urandom/newsroom/content/repo Article

package repo

// Service provides access to the content repositories.
type Service interface {
	ArticleRepo() Article

	Close() error
}
