package local

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/task"
)

var logger = log.WithStd(os.Stderr, "testing ", 0)

type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = append(r.names, name)
}

func (r *recorder) sorted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{}, r.names...)
	sort.Strings(names)

	return names
}

func TestQueue_ChildTasks(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		parents int
		want    int
	}{
		{"single worker", 1, 3, 12},
		{"more parents than workers", 2, 10, 40},
		{"more workers than tasks", 8, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			q := New(tt.workers, logger)
			rec := &recorder{}

			q.Start(ctx, task.HandlerFunc(func(ctx context.Context, tk task.Task) error {
				rec.add(tk.Name)

				if tk.Name == "parent" {
					for i := 0; i < 3; i++ {
						if err := q.Enqueue(ctx, task.Task{Name: "child"}); err != nil {
							return err
						}
					}
				}

				return nil
			}))

			for i := 0; i < tt.parents; i++ {
				if err := q.Enqueue(ctx, task.Task{Name: "parent"}); err != nil {
					t.Fatal(err)
				}
			}

			waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
			defer waitCancel()

			if err := q.Wait(waitCtx); err != nil {
				t.Fatalf("Queue.Wait() error = %v", err)
			}

			if got := len(rec.sorted()); got != tt.want {
				t.Errorf("handled %d tasks, want %d", got, tt.want)
			}

			q.Close()
		})
	}
}

func TestQueue_Close(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := New(1, logger)
	rec := &recorder{}
	release := make(chan struct{})

	q.Start(ctx, task.HandlerFunc(func(ctx context.Context, tk task.Task) error {
		if tk.Name == "a" {
			<-release
		}
		rec.add(tk.Name)
		return nil
	}))

	for _, name := range []string{"a", "b", "c"} {
		if err := q.Enqueue(ctx, task.Task{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	closed := make(chan struct{})
	go func() {
		q.Close()
		close(closed)
	}()

	close(release)

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Queue.Close() did not return")
	}

	if diff := deep.Equal(rec.sorted(), []string{"a", "b", "c"}); diff != nil {
		t.Error(diff)
	}

	if err := q.Enqueue(ctx, task.Task{Name: "d"}); errors.Cause(err) != ErrClosed {
		t.Errorf("Queue.Enqueue() after close error = %v, want %v", err, ErrClosed)
	}
}

func TestQueue_HandlerFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := New(2, logger)
	rec := &recorder{}

	q.Start(ctx, task.HandlerFunc(func(ctx context.Context, tk task.Task) error {
		rec.add(tk.Name)

		switch tk.Name {
		case "panic":
			panic("boom")
		case "error":
			return errors.New("transient")
		case "permanent":
			return task.Permanent(errors.New("bad payload"))
		}

		return nil
	}))

	for _, name := range []string{"panic", "error", "permanent", "ok"} {
		if err := q.Enqueue(ctx, task.Task{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()

	if err := q.Wait(waitCtx); err != nil {
		t.Fatalf("Queue.Wait() error = %v", err)
	}

	if diff := deep.Equal(rec.sorted(), []string{"error", "ok", "panic", "permanent"}); diff != nil {
		t.Error(diff)
	}

	q.Close()
}

func TestQueue_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := New(1, logger)
	started := make(chan struct{})
	var once sync.Once

	q.Start(ctx, task.HandlerFunc(func(ctx context.Context, tk task.Task) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}))

	if err := q.Enqueue(context.Background(), task.Task{Name: "blocking"}); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(context.Background(), task.Task{Name: "dropped"}); err != nil {
		t.Fatal(err)
	}

	<-started
	cancel()

	done := make(chan struct{})
	go func() {
		q.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Queue.Close() did not return after cancelation")
	}

	if err := q.Enqueue(context.Background(), task.Task{Name: "late"}); errors.Cause(err) != ErrClosed {
		t.Errorf("Queue.Enqueue() after cancel error = %v, want %v", err, ErrClosed)
	}
}
