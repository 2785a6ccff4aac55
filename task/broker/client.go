// Package broker implements task.Queue on top of a redis backed asynq queue,
// and the worker consuming it.
package broker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/task"
)

// Client enqueues tasks onto the broker.
type Client struct {
	client *asynq.Client

	queue    string
	maxRetry int
	timeout  time.Duration

	log log.Log
}

func redisOpt(cfg config.Broker) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func queueName(cfg config.Broker) string {
	if cfg.Queue == "" {
		return "default"
	}

	return cfg.Queue
}

func NewClient(cfg config.Broker, worker config.Worker, log log.Log) Client {
	return Client{
		client:   asynq.NewClient(redisOpt(cfg)),
		queue:    queueName(cfg),
		maxRetry: worker.MaxRetry,
		timeout:  worker.Converted.TaskTimeout,
		log:      log,
	}
}

// Enqueue schedules t onto the broker queue. A keyed task is skipped while
// another task with the same name and key is pending.
func (c Client) Enqueue(ctx context.Context, t task.Task) error {
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(t.Name, t.Payload), c.options(t)...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		c.log.Debugf("Task %s with key %s is already pending", t, t.Key)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "enqueuing task %s onto queue %s", t, c.queue)
	}

	c.log.Debugf("Enqueued task %s with id %s", t, info.ID)

	return nil
}

// taskID derives a stable id from the name and key of t.
func taskID(t task.Task) string {
	if t.Key == "" {
		return ""
	}

	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(t.Name+"\x00"+t.Key)).String()
}

func (c Client) options(t task.Task) []asynq.Option {
	opts := []asynq.Option{asynq.Queue(c.queue)}

	if id := taskID(t); id != "" {
		opts = append(opts, asynq.TaskID(id))
	}

	if c.maxRetry >= 0 {
		opts = append(opts, asynq.MaxRetry(c.maxRetry))
	}

	if c.timeout > 0 {
		opts = append(opts, asynq.Timeout(c.timeout))
	}

	return opts
}

func (c Client) Close() error {
	return errors.Wrap(c.client.Close(), "closing broker client")
}
