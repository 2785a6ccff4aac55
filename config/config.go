package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the newsroom configuration
type Config struct {
	Server  Server  `toml:"server"`
	Log     Log     `toml:"log"`
	Timeout Timeout `toml:"timeout"`
	DB      DB      `toml:"db"`
	Store   Store   `toml:"store"`
	Broker  Broker  `toml:"broker"`
	Worker  Worker  `toml:"worker"`
	API     API     `toml:"api"`
}

// Read loads the config data from the given path, and applies any
// NEWSROOM_* environment overrides on top of it.
func Read(path string) (Config, error) {
	return read(path, os.LookupEnv)
}

func read(path string, lookup lookupFunc) (Config, error) {
	c, err := defaultConfig()

	if err != nil {
		return Config{}, errors.WithMessage(err, "initializing default config")
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config from %s", path)
		}

		if err = toml.Unmarshal(b, &c); err != nil {
			return Config{}, errors.Wrapf(err, "unmarshaling toml config from %s", path)
		}
	}

	if err := applyEnv(&c, lookup); err != nil {
		return Config{}, errors.WithMessage(err, "applying environment overrides")
	}

	for _, c := range []converter{&c.Log, &c.Timeout, &c.Worker, &c.API} {
		c.Convert()
	}

	return c, nil
}

// Encode writes the config as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(err, "encoding config")
	}

	return nil
}
