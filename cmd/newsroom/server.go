package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/api"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/task/broker"
)

func runServer(config config.Config, args []string) error {
	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	client := broker.NewClient(config.Broker, config.Worker, log)
	defer client.Close()

	orchestrator := initOrchestrator(client, config, service.ArticleRepo(), log)

	server := makeHTTPServer(api.Mux(service, orchestrator, config.API, config.Log.Converted.AccessWriter, log))
	server.Addr = fmt.Sprintf("%s:%d", config.Server.Address, config.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Infof("Starting server on address %s", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "starting server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down server")
	}

	return nil
}

func makeHTTPServer(mux http.Handler) *http.Server {
	return &http.Server{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		Handler:      mux,
	}
}

func init() {
	commands = append(commands, Command{
		Name:  "server",
		Desc:  "http api for submitting feeds and reading the stored articles",
		Flags: flag.NewFlagSet("server", flag.ExitOnError),
		Run:   runServer,
	})
}
