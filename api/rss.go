package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/feeds"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/log"
)

// articleFeed renders the latest stored articles as an RSS 2.0 document.
// Category labels may contain slashes, so the category is the whole rest of
// the path.
func articleFeed(repo repo.Article, config config.API, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o := []content.QueryOpt{content.Paging(config.Limits.ArticlesPerQuery, 0)}

		title := config.RSS.Title
		if label := chi.URLParam(r, "*"); label != "" {
			if unescaped, err := url.PathUnescape(label); err == nil {
				label = unescaped
			}

			c, err := content.ParseCategory(label)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}

			o = append(o, content.ForCategory(c))
			title += " - " + string(c)
		}

		articles, err := repo.All(r.Context(), o...)
		if err != nil {
			fatal(w, log, "Error getting articles: %+v", err)
			return
		}

		feed := &feeds.Feed{
			Title:       title,
			Link:        &feeds.Link{Href: config.RSS.Link},
			Description: config.RSS.Description,
			Created:     time.Now(),
		}

		feed.Items = make([]*feeds.Item, 0, len(articles))
		for _, a := range articles {
			feed.Items = append(feed.Items, &feeds.Item{
				Title:       a.Title,
				Link:        &feeds.Link{Href: a.URL},
				Id:          a.URL,
				Description: a.Content,
				Created:     a.PubDate,
			})
		}

		rss, err := feed.ToRss()
		if err != nil {
			fatal(w, log, "Error generating rss: %+v", err)
			return
		}

		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		w.Write([]byte(rss))
	}
}
