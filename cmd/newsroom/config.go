package main

import (
	"flag"
	"os"

	"github.com/urandom/newsroom/config"
)

func runConfig(config config.Config, args []string) error {
	return config.Encode(os.Stdout)
}

func init() {
	commands = append(commands, Command{
		Name:  "config",
		Desc:  "prints the effective configuration",
		Flags: flag.NewFlagSet("config", flag.ExitOnError),
		Run:   runConfig,
	})
}
