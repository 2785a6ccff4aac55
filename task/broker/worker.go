package broker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/task"
)

// Worker consumes the broker queue, passing every task to a task.Handler.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    log.Log
}

func NewWorker(cfg config.Broker, worker config.Worker, h task.Handler, log log.Log) Worker {
	queue := queueName(cfg)

	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency:     worker.Concurrency,
		Queues:          map[string]int{queue: 1},
		Logger:          logger{log},
		ShutdownTimeout: worker.Converted.ShutdownTimeout,
		ErrorHandler:    errorHandler(log),
	})

	return Worker{server: server, mux: NewServeMux(h), log: log}
}

// errorHandler logs every failed task once.
func errorHandler(log log.Log) asynq.ErrorHandlerFunc {
	return func(ctx context.Context, t *asynq.Task, err error) {
		if errors.Is(err, asynq.SkipRetry) {
			log.Printf("Task %s failed permanently: %v", t.Type(), err)
			return
		}

		retried, _ := asynq.GetRetryCount(ctx)
		max, _ := asynq.GetMaxRetry(ctx)

		log.Printf("Task %s failed after %d of %d retries: %v", t.Type(), retried, max, err)
	}
}

// NewServeMux routes the newsroom task types to h. Permanent failures are
// reported to asynq as SkipRetry, everything else is retried.
func NewServeMux(h task.Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()

	handle := func(ctx context.Context, t *asynq.Task) error {
		err := h.Handle(ctx, task.Task{Name: t.Type(), Payload: t.Payload()})
		if err == nil {
			return nil
		}

		if task.IsPermanent(err) {
			return errors.Wrap(asynq.SkipRetry, err.Error())
		}

		return err
	}

	mux.HandleFunc(task.TypeProcessFeed, handle)
	mux.HandleFunc(task.TypeClassifyAndStore, handle)

	return mux
}

// Run processes tasks until the process receives a termination signal.
func (w Worker) Run() error {
	w.log.Infof("Starting worker")

	return errors.Wrap(w.server.Run(w.mux), "running worker")
}

// Start processes tasks in the background, until Shutdown is called.
func (w Worker) Start() error {
	return errors.Wrap(w.server.Start(w.mux), "starting worker")
}

func (w Worker) Shutdown() {
	w.server.Shutdown()
}
