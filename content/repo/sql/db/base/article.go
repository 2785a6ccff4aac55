package base

func init() {
	sqlStmts.Article.Exists = articleExists
	sqlStmts.Article.Create = createArticle
	sqlStmts.Article.GetByURL = getArticleByURL

	sqlStmts.Article.GetTemplate = getArticlesTemplate
	sqlStmts.Article.CountTemplate = articleCountTemplate

	sqlStmts.Article.UniqueTitleIndex = createUniqueTitleIndex
	sqlStmts.Article.DropUniqueTitleIndex = dropUniqueTitleIndex
}

const (
	articleExists = `SELECT COUNT(id) FROM news_articles WHERE url = :url`

	createArticle = `
INSERT INTO news_articles(title, content, pub_date, url, category)
	VALUES(:title, :content, :pub_date, :url, :category)`

	getArticleByURL = `
SELECT id, title, content, pub_date, url, category
FROM news_articles
WHERE url = :url`

	getArticlesTemplate = `
SELECT id, title, content, pub_date, url, category
FROM news_articles
{{ .Where }}
{{ .Order }}
{{ .Limit }}
`
	articleCountTemplate = `
SELECT COUNT(id)
FROM news_articles
{{ .Where }}
`

	createUniqueTitleIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS ` + TitleConstraint + ` ON news_articles (title)`

	dropUniqueTitleIndex = `DROP INDEX IF EXISTS ` + TitleConstraint
)
