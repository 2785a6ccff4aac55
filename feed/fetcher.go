package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/pool"
)

// UserAgent is sent with every feed request.
const UserAgent = "newsroom/1.0 (+https://github.com/urandom/newsroom)"

var unknownTime = time.Unix(0, 0).UTC()

// Fetcher downloads feeds and converts their entries to articles.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]content.Article, error)
}

type HTTPFetcher struct {
	client *http.Client
	log    log.Log
}

func NewFetcher(client *http.Client, log log.Log) HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return HTTPFetcher{client: client, log: log}
}

// Fetch returns one article per feed entry, in feed order. Download and
// parsing failures are returned as errors, along with no articles.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]content.Article, error) {
	f.log.Infof("Downloading content for feed %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "creating request for feed %s", url)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "downloading feed %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)

		return nil, errors.Errorf("downloading feed %s: HTTP Status: %d", url, resp.StatusCode)
	}

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, errors.Wrapf(err, "reading feed %s", url)
	}

	parsed, err := gofeed.NewParser().Parse(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing feed %s", url)
	}

	articles := Articles(parsed)
	f.log.Debugf("Feed %s contains %d articles", url, len(articles))

	return articles, nil
}

// Articles converts the feed items, keeping their order. Entries are not
// filtered or deduplicated.
func Articles(feed *gofeed.Feed) []content.Article {
	if feed == nil {
		return []content.Article{}
	}

	articles := make([]content.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		articles = append(articles, content.Article{
			Title:   item.Title,
			Content: item.Description,
			PubDate: pubDate(item),
			URL:     item.Link,
		})
	}

	return articles
}

// pubDate prefers the published over the updated time. Dates the feed
// parser could not read are retried with a lenient parser, assuming UTC
// when they carry no zone.
func pubDate(item *gofeed.Item) time.Time {
	for _, t := range []*time.Time{item.PublishedParsed, item.UpdatedParsed} {
		if t != nil && !t.IsZero() {
			return t.UTC().Truncate(time.Second)
		}
	}

	for _, s := range []string{item.Published, item.Updated} {
		if s == "" {
			continue
		}

		if t, err := dateparse.ParseIn(s, time.UTC); err == nil && !t.IsZero() {
			return t.UTC().Truncate(time.Second)
		}
	}

	return unknownTime
}
