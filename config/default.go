package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

func defaultConfig() (Config, error) {
	var def Config

	err := toml.Unmarshal([]byte(DefaultCfg), &def)

	if err != nil {
		return Config{}, errors.Wrap(err, "parsing default config")
	}

	return def, nil
}

// DefaultCfg shows the default configuration of newsroom
var DefaultCfg = `
[server]
	port = 8080
[log]
	level = "info"     # error, info, debug
	file = "-"         # stderr, or a filename
	formatter = "text" # text, json
	access-file = ""   # stdout or a filename
[timeout]
	connect = "1s"
	read-write = "10s"
[db]
	driver = "sqlite3" # sqlite3, postgres, pgx
	connect = "file:./storage/news.sqlite3?mode=rwc&_busy_timeout=50000&_txlock=immediate"
[store]
	unique-titles = true
[broker]
	addr = "localhost:6379"
	db = 0
	queue = "default"
[worker]
	concurrency = 10
	max-retry = 25
	task-timeout = "" # transport default
	shutdown-timeout = "8s"
[worker.local]
	workers = 4
[api.limits]
	articles-per-query = 200
[api.rss]
	title = "newsroom"
	link = "http://localhost:8080"
	description = "Classified news articles"
[api.cors]
	allowed-origins = []
`
