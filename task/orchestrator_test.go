package task_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/classifier"
	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/content/repo/mock_repo"
	"github.com/urandom/newsroom/content/repo/sql"
	_ "github.com/urandom/newsroom/content/repo/sql/db/sqlite3"
	"github.com/urandom/newsroom/feed"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/task"
	"github.com/urandom/newsroom/task/local"
	"github.com/urandom/newsroom/task/mock_task"
)

var logger = log.WithStd(os.Stderr, "testing ", 0)

type fetcherFunc func(ctx context.Context, url string) ([]content.Article, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) ([]content.Article, error) {
	return f(ctx, url)
}

var (
	quake = content.Article{
		Title:   "Quake hits region",
		Content: "A disaster struck today",
		PubDate: time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC),
		URL:     "http://x/a",
	}
	fair = content.Article{
		Title:   "Local fair a success",
		Content: "An uplifting and happy event",
		PubDate: time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC),
		URL:     "http://x/b",
	}
)

func TestOrchestrator_Submit(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		enqueued bool
		queueErr error
		wantErr  bool
	}{
		{name: "http", url: "http://example.com/rss", enqueued: true},
		{name: "https", url: "https://example.com/rss", enqueued: true},
		{name: "relative", url: "/rss", wantErr: true},
		{name: "ftp", url: "ftp://example.com/rss", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "broker down", url: "http://example.com/rss", enqueued: true, queueErr: errors.New("connection refused"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			queue := mock_task.NewMockQueue(ctrl)
			if tt.enqueued {
				want, err := task.NewProcessFeed(tt.url)
				if err != nil {
					t.Fatal(err)
				}
				queue.EXPECT().Enqueue(gomock.Any(), want).Return(tt.queueErr)
			}

			o := task.NewOrchestrator(queue, nil, classifier.New(), nil, logger)

			err := o.Submit(context.Background(), tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("Orchestrator.Submit() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.enqueued && !content.IsValidationError(err) {
				t.Errorf("Orchestrator.Submit() error = %v, want a validation error", err)
			}
		})
	}
}

func TestOrchestrator_ProcessFeed(t *testing.T) {
	tests := []struct {
		name     string
		articles []content.Article
		fetchErr error
		queueErr error
		wantErr  bool
	}{
		{name: "two entries", articles: []content.Article{quake, fair}},
		{name: "no entries", articles: []content.Article{}},
		{name: "fetch failure", fetchErr: errors.New("HTTP Status: 404")},
		{name: "enqueue failure", articles: []content.Article{quake, fair}, queueErr: errors.New("broker down"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var got []content.Article
			queue := mock_task.NewMockQueue(ctrl)
			queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tk task.Task) error {
				if tk.Name != task.TypeClassifyAndStore {
					t.Errorf("enqueued task %s, want %s", tk.Name, task.TypeClassifyAndStore)
				}

				var a content.Article
				if err := json.Unmarshal(tk.Payload, &a); err != nil {
					t.Fatal(err)
				}
				if tk.Key != a.URL {
					t.Errorf("enqueued task key %q, want %q", tk.Key, a.URL)
				}
				got = append(got, a)

				return tt.queueErr
			}).Times(len(tt.articles))

			fetcher := fetcherFunc(func(ctx context.Context, url string) ([]content.Article, error) {
				if url != "http://example.com/rss" {
					t.Errorf("fetched %s", url)
				}
				return tt.articles, tt.fetchErr
			})

			o := task.NewOrchestrator(queue, fetcher, classifier.New(), nil, logger)

			if err := o.ProcessFeed(context.Background(), "http://example.com/rss"); (err != nil) != tt.wantErr {
				t.Errorf("Orchestrator.ProcessFeed() error = %v, wantErr %v", err, tt.wantErr)
			}

			if len(tt.articles) == 0 {
				return
			}

			if diff := deep.Equal(got, tt.articles); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestOrchestrator_ClassifyAndStore(t *testing.T) {
	tests := []struct {
		name          string
		article       content.Article
		wantCategory  content.Category
		stored        bool
		storeErr      error
		wantErr       bool
		wantPermanent bool
	}{
		{name: "disaster", article: quake, wantCategory: content.CategoryDisaster, stored: true},
		{name: "positive", article: fair, wantCategory: content.CategoryPositive, stored: true},
		{name: "duplicate url", article: quake, wantCategory: content.CategoryDisaster},
		{name: "title from content only", article: content.Article{Title: "Riot", Content: "nothing", URL: "http://x/c"}, wantCategory: content.CategoryOthers, stored: true},
		{name: "title conflict", article: quake, wantCategory: content.CategoryDisaster, storeErr: repo.ErrTitleConflict, wantErr: true, wantPermanent: true},
		{name: "invalid", article: content.Article{Title: "no url"}, wantCategory: content.CategoryOthers, storeErr: content.NewValidationError(errors.New("Article has no url")), wantErr: true, wantPermanent: true},
		{name: "database down", article: quake, wantCategory: content.CategoryDisaster, storeErr: errors.New("connection reset"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			want := tt.article
			want.Category = tt.wantCategory

			articleRepo := mock_repo.NewMockArticle(ctrl)
			articleRepo.EXPECT().Store(gomock.Any(), want).Return(tt.stored, tt.storeErr)

			o := task.NewOrchestrator(nil, nil, classifier.New(), articleRepo, logger)

			err := o.ClassifyAndStore(context.Background(), tt.article)
			if (err != nil) != tt.wantErr {
				t.Errorf("Orchestrator.ClassifyAndStore() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if task.IsPermanent(err) != tt.wantPermanent {
				t.Errorf("Orchestrator.ClassifyAndStore() permanent = %v, want %v", task.IsPermanent(err), tt.wantPermanent)
			}
		})
	}
}

func TestOrchestrator_Handle(t *testing.T) {
	feedTask, err := task.NewProcessFeed("http://example.com/rss")
	if err != nil {
		t.Fatal(err)
	}

	articleTask, err := task.NewClassifyAndStore(quake)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		task          task.Task
		fetches       int
		stores        int
		wantErr       bool
		wantPermanent bool
	}{
		{name: "process feed", task: feedTask, fetches: 1},
		{name: "classify and store", task: articleTask, stores: 1},
		{name: "bad feed payload", task: task.Task{Name: task.TypeProcessFeed, Payload: []byte("{")}, wantErr: true, wantPermanent: true},
		{name: "bad article payload", task: task.Task{Name: task.TypeClassifyAndStore, Payload: []byte("[]")}, wantErr: true, wantPermanent: true},
		{name: "unknown", task: task.Task{Name: "feed:delete"}, wantErr: true, wantPermanent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			articleRepo := mock_repo.NewMockArticle(ctrl)
			stored := quake
			stored.Category = content.CategoryDisaster
			articleRepo.EXPECT().Store(gomock.Any(), stored).Return(true, nil).Times(tt.stores)

			var fetches int
			fetcher := fetcherFunc(func(ctx context.Context, url string) ([]content.Article, error) {
				fetches++
				return nil, nil
			})

			o := task.NewOrchestrator(mock_task.NewMockQueue(ctrl), fetcher, classifier.New(), articleRepo, logger)

			err := o.Handle(context.Background(), tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("Orchestrator.Handle() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if task.IsPermanent(err) != tt.wantPermanent {
				t.Errorf("Orchestrator.Handle() permanent = %v, want %v", task.IsPermanent(err), tt.wantPermanent)
			}

			if fetches != tt.fetches {
				t.Errorf("Orchestrator.Handle() fetched %d times, want %d", fetches, tt.fetches)
			}
		})
	}
}

const scenarioFeed = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Scenario</title>
    <link>http://x/</link>
    <description>Two entries</description>
    <item>
      <title>Quake hits region</title>
      <link>http://x/a</link>
      <description>A disaster struck today</description>
      <pubDate>Thu, 14 Mar 2024 09:26:53 GMT</pubDate>
    </item>
    <item>
      <title>Local fair a success</title>
      <link>http://x/b</link>
      <description>An uplifting and happy event</description>
      <pubDate>Thu, 14 Mar 2024 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestOrchestrator_Pipeline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(scenarioFeed))
	}))
	defer ts.Close()

	dsn := "file:" + filepath.Join(t.TempDir(), "pipeline.sqlite3") + "?_busy_timeout=5000&_txlock=immediate"
	service, err := sql.NewService("sqlite3", dsn, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer service.Close()

	articleRepo := service.ArticleRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	queue := local.New(2, logger)
	o := task.NewOrchestrator(queue, feed.NewFetcher(nil, logger), classifier.New(), articleRepo, logger)
	queue.Start(ctx, o)
	defer queue.Close()

	for run := 0; run < 2; run++ {
		if err := o.Submit(ctx, ts.URL); err != nil {
			t.Fatal(err)
		}

		if err := queue.Wait(ctx); err != nil {
			t.Fatal(err)
		}

		count, err := articleRepo.Count(ctx)
		if err != nil {
			t.Fatal(err)
		}

		if count != 2 {
			t.Errorf("run %d: stored %d articles, want 2", run, count)
		}
	}

	for _, want := range []struct {
		url      string
		category content.Category
	}{
		{"http://x/a", content.CategoryDisaster},
		{"http://x/b", content.CategoryPositive},
	} {
		a, err := articleRepo.GetByURL(ctx, want.url)
		if err != nil {
			t.Fatal(err)
		}

		if a.Category != want.category {
			t.Errorf("article %s category = %q, want %q", a, a.Category, want.category)
		}
	}
}
