package config

import (
	"io"
	"os"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Server struct {
	Address string `toml:"address"`
	Port    int    `toml:"port"`
}

type Log struct {
	Level            string `toml:"level"`
	File             string `toml:"file"`
	AccessFile       string `toml:"access-file"`
	Formatter        string `toml:"formatter"`
	RepoCallDuration bool   `toml:"repo-call-duration"`

	Converted struct {
		Writer       io.Writer
		AccessWriter io.Writer
	} `toml:"-"`
}

type Timeout struct {
	Connect   string `toml:"connect"`
	ReadWrite string `toml:"read-write"`

	Converted struct {
		Connect   time.Duration
		ReadWrite time.Duration
	} `toml:"-"`
}

type DB struct {
	Driver  string `toml:"driver"`
	Connect string `toml:"connect"`
}

// Store controls the article table constraints.
type Store struct {
	UniqueTitles bool `toml:"unique-titles"`
}

// Broker points to the redis instance backing the task queue.
type Broker struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Queue    string `toml:"queue"`
}

type Worker struct {
	Concurrency     int    `toml:"concurrency"`
	MaxRetry        int    `toml:"max-retry"`
	TaskTimeout     string `toml:"task-timeout"`
	ShutdownTimeout string `toml:"shutdown-timeout"`

	Local struct {
		Workers int `toml:"workers"`
	} `toml:"local"`

	Converted struct {
		TaskTimeout     time.Duration
		ShutdownTimeout time.Duration
	} `toml:"-"`
}

type API struct {
	Limits struct {
		ArticlesPerQuery int `toml:"articles-per-query"`
	} `toml:"limits"`

	RSS struct {
		Title       string `toml:"title"`
		Link        string `toml:"link"`
		Description string `toml:"description"`
	} `toml:"rss"`

	// CORS is disabled when no origins are allowed.
	CORS struct {
		AllowedOrigins []string `toml:"allowed-origins"`
	} `toml:"cors"`
}

type converter interface {
	Convert()
}

func (c *Log) Convert() {
	c.Converted.Writer = fileWriter(c.File, os.Stderr)
	c.Converted.AccessWriter = fileWriter(c.AccessFile, os.Stdout)
}

func fileWriter(name string, std io.Writer) io.Writer {
	if name == "" || name == "-" {
		return std
	}

	return &lumberjack.Logger{
		Filename:   name,
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     28,
	}
}

func (c *Timeout) Convert() {
	c.Converted.Connect = duration(c.Connect, time.Second)
	c.Converted.ReadWrite = duration(c.ReadWrite, 2*time.Second)
}

func (c *Worker) Convert() {
	c.Converted.TaskTimeout = duration(c.TaskTimeout, 0)
	c.Converted.ShutdownTimeout = duration(c.ShutdownTimeout, 8*time.Second)

	if c.Concurrency < 1 {
		c.Concurrency = 1
	}

	if c.Local.Workers < 1 {
		c.Local.Workers = 1
	}
}

func (c *API) Convert() {
	if c.Limits.ArticlesPerQuery < 1 {
		c.Limits.ArticlesPerQuery = 200
	}
}

func duration(value string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}

	return def
}
