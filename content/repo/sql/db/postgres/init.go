package postgres

var (
	initSQL = []string{`
CREATE TABLE IF NOT EXISTS newsroom (
	db_version INTEGER
)`, `
CREATE TABLE IF NOT EXISTS news_articles (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	pub_date TIMESTAMP WITH TIME ZONE,
	url TEXT NOT NULL,
	category VARCHAR(50) NOT NULL DEFAULT 'Uncategorized',

	CONSTRAINT news_articles_url_key UNIQUE (url)
)`, `
CREATE INDEX IF NOT EXISTS news_articles_category_idx ON news_articles (category)
`, `
CREATE INDEX IF NOT EXISTS news_articles_pub_date_idx ON news_articles (pub_date)
`,
	}
)
