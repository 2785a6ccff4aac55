package main

import (
	"context"
	"flag"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/task/broker"
)

func runSubmit(config config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("no feed urls given")
	}

	log := initLog(config.Log)

	client := broker.NewClient(config.Broker, config.Worker, log)
	defer client.Close()

	orchestrator := initOrchestrator(client, config, nil, log)

	ctx := context.Background()
	for _, url := range args {
		if err := orchestrator.Submit(ctx, url); err != nil {
			return errors.WithMessagef(err, "submitting feed %s", url)
		}
	}

	return nil
}

func init() {
	commands = append(commands, Command{
		Name:  "submit",
		Desc:  "schedules the given feed urls for processing by a worker",
		Flags: flag.NewFlagSet("submit", flag.ExitOnError),
		Run:   runSubmit,
	})
}
