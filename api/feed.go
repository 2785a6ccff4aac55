package api

import (
	"net/http"

	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/log"
)

type feedRequest struct {
	URL string `json:"url"`
}

func submitFeed(submitter Submitter, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req feedRequest
		if stop := readJSON(w, r.Body, &req); stop {
			return
		}

		if err := submitter.Submit(r.Context(), req.URL); err != nil {
			if content.IsValidationError(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			fatal(w, log, "Error submitting feed: %+v", err)
			return
		}

		args{"success": true}.writeJSON(w, http.StatusAccepted)
	}
}
