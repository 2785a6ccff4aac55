// Package api exposes the stored articles and feed submission over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/log"
)

// Submitter schedules the processing of a feed.
type Submitter interface {
	Submit(ctx context.Context, url string) error
}

// Mux creates the http handler of the api and rss endpoints. Requests are
// logged to access, when it is not nil.
func Mux(
	service repo.Service,
	submitter Submitter,
	config config.API,
	access io.Writer,
	log log.Log,
) http.Handler {
	articleRepo := service.ArticleRepo()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if access != nil {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  stdlog.New(access, "", stdlog.LstdFlags),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(config.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: config.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/feeds", submitFeed(submitter, log))

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", listArticles(articleRepo, config.Limits.ArticlesPerQuery, log))
			r.Get("/by-url", getArticleByURL(articleRepo, log))
		})

		r.Get("/categories", listCategories)
	})

	r.Get("/rss", articleFeed(articleRepo, config, log))
	r.Get("/rss/*", articleFeed(articleRepo, config, log))

	return r
}

type args map[string]interface{}

func (a args) WriteJSON(w http.ResponseWriter) {
	a.writeJSON(w, http.StatusOK)
}

func (a args) writeJSON(w http.ResponseWriter, code int) {
	b, err := json.Marshal(a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}

func readJSON(w http.ResponseWriter, r io.Reader, data interface{}) (stop bool) {
	if b, err := io.ReadAll(io.LimitReader(r, 1<<20)); err == nil {
		if err = json.Unmarshal(b, data); err != nil {
			http.Error(w, "Error decoding JSON request: "+err.Error(), http.StatusBadRequest)
			return true
		}
	} else {
		http.Error(w, errors.Wrap(err, "reading request body").Error(), http.StatusBadRequest)
		return true
	}

	return false
}

func fatal(w http.ResponseWriter, log log.Log, format string, err error) {
	log.Printf(format, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
