package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/task/local"
)

func runLocal(config config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("no feed urls given")
	}

	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runTimeout)
		defer cancel()
	}

	queue := local.New(config.Worker.Local.Workers, log)
	orchestrator := initOrchestrator(queue, config, service.ArticleRepo(), log)

	queue.Start(ctx, orchestrator)
	defer queue.Close()

	for _, url := range args {
		if err := orchestrator.Submit(ctx, url); err != nil {
			return errors.WithMessagef(err, "submitting feed %s", url)
		}
	}

	if err := queue.Wait(ctx); err != nil {
		return errors.Wrap(err, "waiting for the feeds to be processed")
	}

	count, err := service.ArticleRepo().Count(context.Background())
	if err != nil {
		return errors.WithMessage(err, "counting stored articles")
	}

	log.Infof("Processed %d feeds, %d articles stored in total", len(args), count)

	return nil
}

var runTimeout time.Duration

func init() {
	flags := flag.NewFlagSet("run", flag.ExitOnError)
	flags.DurationVar(&runTimeout, "timeout", 0, "abort processing after the given duration")

	commands = append(commands, Command{
		Name:  "run",
		Desc:  "processes the given feed urls in process, without a broker",
		Flags: flags,
		Run:   runLocal,
	})
}
