package api

import (
	"net/http"
	"strconv"

	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/log"
)

func listArticles(repo repo.Article, maxLimit int, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, stop := articleQueryOptions(w, r, maxLimit)
		if stop {
			return
		}

		articles, err := repo.All(r.Context(), o...)
		if err != nil {
			fatal(w, log, "Error getting articles: %+v", err)
			return
		}

		count, err := repo.Count(r.Context(), o...)
		if err != nil {
			fatal(w, log, "Error counting articles: %+v", err)
			return
		}

		args{"articles": articles, "count": count}.WriteJSON(w)
	}
}

func getArticleByURL(repo repo.Article, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if url == "" {
			http.Error(w, "No url provided", http.StatusBadRequest)
			return
		}

		article, err := repo.GetByURL(r.Context(), url)
		if err != nil {
			if content.IsNoContent(err) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}

			fatal(w, log, "Error getting article: %+v", err)
			return
		}

		args{"article": article}.WriteJSON(w)
	}
}

func listCategories(w http.ResponseWriter, r *http.Request) {
	args{"categories": content.Categories}.WriteJSON(w)
}

// articleQueryOptions reads the paging and category parameters. The limit
// defaults to, and is capped at, maxLimit.
func articleQueryOptions(w http.ResponseWriter, r *http.Request, maxLimit int) ([]content.QueryOpt, bool) {
	o := []content.QueryOpt{}

	query := r.URL.Query()

	var err error
	var limit, offset int
	if query.Get("limit") != "" {
		limit, err = strconv.Atoi(query.Get("limit"))
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit: "+query.Get("limit"), http.StatusBadRequest)
			return o, true
		}
	}

	if query.Get("offset") != "" {
		offset, err = strconv.Atoi(query.Get("offset"))
		if err != nil || offset < 0 {
			http.Error(w, "Invalid offset: "+query.Get("offset"), http.StatusBadRequest)
			return o, true
		}
	}

	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	o = append(o, content.Paging(limit, offset))

	if query.Get("category") != "" {
		c, err := content.ParseCategory(query.Get("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return o, true
		}

		o = append(o, content.ForCategory(c))
	}

	if _, ok := query["older_first"]; ok {
		o = append(o, content.OlderFirst)
	}

	return o, false
}
