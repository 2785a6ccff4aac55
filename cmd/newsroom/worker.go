package main

import (
	"flag"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/task/broker"
)

func runWorker(config config.Config, args []string) error {
	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	client := broker.NewClient(config.Broker, config.Worker, log)
	defer client.Close()

	orchestrator := initOrchestrator(client, config, service.ArticleRepo(), log)

	worker := broker.NewWorker(config.Broker, config.Worker, orchestrator, log)

	log.Infof("Consuming queue %s on %s with concurrency %d", config.Broker.Queue, config.Broker.Addr, config.Worker.Concurrency)

	if err := worker.Run(); err != nil {
		return errors.WithMessage(err, "running broker worker")
	}

	return nil
}

func init() {
	commands = append(commands, Command{
		Name:  "worker",
		Desc:  "processes the feed and article tasks of the broker queue",
		Flags: flag.NewFlagSet("worker", flag.ExitOnError),
		Run:   runWorker,
	})
}
