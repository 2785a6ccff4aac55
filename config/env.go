package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvPrefix starts every environment variable consulted by Read.
const EnvPrefix = "NEWSROOM_"

type lookupFunc func(string) (string, bool)

// LoadDotEnv populates the process environment from the given dotenv file.
// Variables already present in the environment take precedence. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading env file %s", path)
	}

	return nil
}

func applyEnv(c *Config, lookup lookupFunc) error {
	strings := map[string]*string{
		"SERVER_ADDRESS":  &c.Server.Address,
		"LOG_LEVEL":       &c.Log.Level,
		"LOG_FILE":        &c.Log.File,
		"LOG_FORMATTER":   &c.Log.Formatter,
		"DB_DRIVER":       &c.DB.Driver,
		"DB_CONNECT":      &c.DB.Connect,
		"BROKER_ADDR":     &c.Broker.Addr,
		"BROKER_PASSWORD": &c.Broker.Password,
		"BROKER_QUEUE":    &c.Broker.Queue,
	}

	for name, field := range strings {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = v
		}
	}

	ints := map[string]*int{
		"SERVER_PORT":        &c.Server.Port,
		"BROKER_DB":          &c.Broker.DB,
		"WORKER_CONCURRENCY": &c.Worker.Concurrency,
		"WORKER_MAX_RETRY":   &c.Worker.MaxRetry,
	}

	for name, field := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "parsing %s%s", EnvPrefix, name)
			}
			*field = i
		}
	}

	if v, ok := lookup(EnvPrefix + "STORE_UNIQUE_TITLES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "parsing %sSTORE_UNIQUE_TITLES", EnvPrefix)
		}
		c.Store.UniqueTitles = b
	}

	return nil
}
