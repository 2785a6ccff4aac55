package task

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/classifier"
	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/feed"
	"github.com/urandom/newsroom/log"
)

// Orchestrator implements the feed processing and the article classification
// tasks, and schedules the latter for every fetched article.
type Orchestrator struct {
	queue      Queue
	fetcher    feed.Fetcher
	classifier classifier.Classifier
	repo       repo.Article

	log log.Log
}

func NewOrchestrator(
	queue Queue,
	fetcher feed.Fetcher,
	classifier classifier.Classifier,
	repo repo.Article,
	log log.Log,
) Orchestrator {
	return Orchestrator{
		queue:      queue,
		fetcher:    fetcher,
		classifier: classifier,
		repo:       repo,
		log:        log,
	}
}

// Submit schedules the processing of the feed at feedURL.
func (o Orchestrator) Submit(ctx context.Context, feedURL string) error {
	if err := ValidateFeedURL(feedURL); err != nil {
		return err
	}

	t, err := NewProcessFeed(feedURL)
	if err != nil {
		return err
	}

	o.log.Infof("Submitting feed %s", feedURL)

	if err := o.queue.Enqueue(ctx, t); err != nil {
		return errors.WithMessage(err, "enqueuing feed processing")
	}

	return nil
}

// ProcessFeed fetches the feed and schedules one classification task per
// article, in feed order. A feed which cannot be fetched yields no tasks and
// no error. Only scheduling failures are returned.
func (o Orchestrator) ProcessFeed(ctx context.Context, feedURL string) error {
	articles, err := o.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		o.log.Printf("Error fetching feed %s: %+v", feedURL, err)
		return nil
	}

	o.log.Infof("Scheduling %d articles from feed %s", len(articles), feedURL)

	var failed int
	var first error
	for _, a := range articles {
		t, err := NewClassifyAndStore(a)
		if err == nil {
			err = o.queue.Enqueue(ctx, t)
		}

		if err != nil {
			o.log.Printf("Error scheduling article %s: %+v", a, err)
			if first == nil {
				first = err
			}
			failed++
		}
	}

	if first != nil {
		return errors.WithMessagef(first, "scheduling %d of %d articles from feed %s", failed, len(articles), feedURL)
	}

	return nil
}

// ClassifyAndStore assigns a category to the article, based on its content,
// and stores it.
func (o Orchestrator) ClassifyAndStore(ctx context.Context, article content.Article) error {
	article.Category = o.classifier.Classify(article.Content)

	o.log.Debugf("Classified article %s as %s", article, article.Category)

	stored, err := o.repo.Store(ctx, article)
	if err != nil {
		if repo.IsTitleConflict(err) || content.IsValidationError(err) {
			return Permanent(err)
		}

		return errors.WithMessage(err, "storing article")
	}

	if !stored {
		o.log.Debugf("Skipped already stored article %s", article)
	}

	return nil
}

// Handle decodes the task and runs the corresponding unit of work.
func (o Orchestrator) Handle(ctx context.Context, t Task) error {
	switch t.Name {
	case TypeProcessFeed:
		var p FeedPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return Permanent(errors.Wrapf(err, "decoding %s payload", t.Name))
		}

		return o.ProcessFeed(ctx, p.URL)
	case TypeClassifyAndStore:
		var a content.Article
		if err := json.Unmarshal(t.Payload, &a); err != nil {
			return Permanent(errors.Wrapf(err, "decoding %s payload", t.Name))
		}

		return o.ClassifyAndStore(ctx, a)
	default:
		return Permanent(errors.Errorf("unknown task %q", t.Name))
	}
}

// ValidateFeedURL accepts absolute http and https urls.
func ValidateFeedURL(feedURL string) error {
	u, err := url.Parse(feedURL)
	if err != nil {
		return content.NewValidationError(errors.Wrapf(err, "parsing feed url %q", feedURL))
	}

	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return content.NewValidationError(errors.Errorf("feed url %q is not an absolute http url", feedURL))
	}

	return nil
}
