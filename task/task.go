// Package task defines the asynchronous units of work of newsroom and the
// orchestrator which chains them.
package task

//go:generate mockgen -package mock_task -destination mock_task/queue.go github.com/urandom/newsroom/task Queue

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content"
)

const (
	TypeProcessFeed      = "feed:process"
	TypeClassifyAndStore = "article:classify-store"
)

// Task is a named unit of work with a JSON payload. Transports that support
// it keep at most one pending task per non-empty Key.
type Task struct {
	Name    string
	Payload []byte
	Key     string
}

// Queue schedules tasks for asynchronous execution. Enqueue returns once the
// task has been accepted by the transport; it never waits for the task to
// run.
type Queue interface {
	Enqueue(ctx context.Context, t Task) error
}

// Handler executes a task.
type Handler interface {
	Handle(ctx context.Context, t Task) error
}

type HandlerFunc func(ctx context.Context, t Task) error

func (f HandlerFunc) Handle(ctx context.Context, t Task) error {
	return f(ctx, t)
}

// FeedPayload is the payload of TypeProcessFeed tasks.
type FeedPayload struct {
	URL string `json:"url"`
}

func NewProcessFeed(url string) (Task, error) {
	b, err := json.Marshal(FeedPayload{URL: url})
	if err != nil {
		return Task{}, errors.Wrap(err, "marshaling feed payload")
	}

	return Task{Name: TypeProcessFeed, Payload: b}, nil
}

// NewClassifyAndStore creates a task with the article as its payload.
func NewClassifyAndStore(article content.Article) (Task, error) {
	b, err := json.Marshal(article)
	if err != nil {
		return Task{}, errors.Wrapf(err, "marshaling article %s", article)
	}

	return Task{Name: TypeClassifyAndStore, Payload: b, Key: article.URL}, nil
}

func (t Task) String() string {
	return t.Name
}
