package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/urandom/newsroom/config"
)

// Command describes a subcommand
type Command struct {
	Name  string
	Desc  string
	Flags *flag.FlagSet
	Run   func(config.Config, []string) error
}

const defaultConfigPath = "newsroom.toml"

var (
	configPath = flag.String("config", defaultConfigPath, "newsroom config path")
	envPath    = flag.String("env", ".env", "dotenv file with NEWSROOM_* overrides")
	commands   = []Command{}
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		for _, cmd := range commands {
			if cmd.Name == args[0] {
				cmd.Flags.Parse(args[1:])

				if err := config.LoadDotEnv(*envPath); err != nil {
					log.Fatalf("Error loading env file %s: %+v", *envPath, err)
				}

				path := *configPath
				if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
					path = ""
				}

				config, err := config.Read(path)
				if err != nil {
					log.Fatalf("Error reading config %s: %+v", path, err)
				}

				if err := cmd.Run(config, cmd.Flags.Args()); err != nil {
					log.Fatalf("Error running %s: %+v", cmd.Name, err)
				}

				os.Exit(0)
			}
		}
	}

	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, `%s fetches rss feeds, classifies their articles
	and stores them.

Usage:

	newsroom [flags] command [arguments]

The following flags are available:

`, os.Args[0])
	flag.PrintDefaults()

	fmt.Fprint(os.Stderr, "\nThe commands are: \n\n")

	nameLen := 0
	for _, cmd := range commands {
		if len(cmd.Name) > nameLen {
			nameLen = len(cmd.Name)
		}
	}

	for _, cmd := range commands {
		format := fmt.Sprintf("  %%%ds  %%s\n", nameLen)
		fmt.Fprintf(os.Stderr, format, cmd.Name, cmd.Desc)
	}

	fmt.Fprint(os.Stderr, "\n")
}
