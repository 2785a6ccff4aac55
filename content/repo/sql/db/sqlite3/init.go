package sqlite3

var (
	initSQL = []string{`
PRAGMA journal_mode = WAL`, `
CREATE TABLE IF NOT EXISTS newsroom (
	db_version INTEGER
)`, `
CREATE TABLE IF NOT EXISTS news_articles (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	pub_date TIMESTAMP,
	url TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'Uncategorized',

	CONSTRAINT news_articles_url_key UNIQUE (url)
)`, `
CREATE INDEX IF NOT EXISTS news_articles_category_idx ON news_articles (category)
`, `
CREATE INDEX IF NOT EXISTS news_articles_pub_date_idx ON news_articles (pub_date)
`,
	}
)
