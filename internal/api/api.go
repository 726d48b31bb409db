// Package api exposes the microblog services over HTTP. Every response is
// a JSON object carrying "result"; failures add error_type and
// error_message.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"microblog/internal/blob"
	"microblog/internal/service"
)

const (
	API_KEY_HEADER = "api-key"

	defaultMaxUploadBytes = 10 << 20
)

type Options struct {
	SlowRequestThreshold time.Duration
	MaxUploadBytes       int64

	// StaticDir is served under StaticPrefix when both are set.
	StaticDir    string
	StaticPrefix string

	HealthCheck func(context.Context) error
}

type API struct {
	services *service.Services
	blobs    blob.Store
	metrics  *Metrics
	logger   *logrus.Logger
	opts     Options
}

func New(services *service.Services, blobs blob.Store, metrics *Metrics, logger *logrus.Logger, opts Options) *API {
	if opts.SlowRequestThreshold <= 0 {
		opts.SlowRequestThreshold = 2 * time.Second
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &API{
		services: services,
		blobs:    blobs,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
}

func (api *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.logRequests)

	r.Handle("/metrics", api.metrics.Handler()).Methods("GET")
	r.HandleFunc("/healthz", api.GETHealthHandler).Methods("GET")

	s := r.PathPrefix("/api").Subrouter()

	s.HandleFunc("/users", api.POSTUserHandler).Methods("POST")
	s.HandleFunc("/users/me", api.GETMeHandler).Methods("GET")
	s.HandleFunc("/users/{id}", api.GETUserHandler).Methods("GET")
	s.HandleFunc("/users/{id}/follow", api.POSTFollowHandler).Methods("POST")
	s.HandleFunc("/users/{id}/follow", api.DELETEFollowHandler).Methods("DELETE")

	s.HandleFunc("/tweets", api.POSTTweetHandler).Methods("POST")
	s.HandleFunc("/tweets", api.GETTweetsHandler).Methods("GET")
	s.HandleFunc("/tweets/{id}", api.GETTweetHandler).Methods("GET")
	s.HandleFunc("/tweets/{id}", api.DELETETweetHandler).Methods("DELETE")
	s.HandleFunc("/tweets/{id}/likes", api.POSTLikeHandler).Methods("POST")
	s.HandleFunc("/tweets/{id}/likes", api.DELETELikeHandler).Methods("DELETE")

	s.HandleFunc("/medias", api.POSTMediaHandler).Methods("POST")

	if api.opts.StaticDir != "" && api.opts.StaticPrefix != "" {
		r.PathPrefix(api.opts.StaticPrefix).Handler(
			http.StripPrefix(api.opts.StaticPrefix, http.FileServer(http.Dir(api.opts.StaticDir))),
		).Methods("GET")
	}

	return r
}

func (api *API) GETHealthHandler(w http.ResponseWriter, r *http.Request) {
	if api.opts.HealthCheck != nil {
		if err := api.opts.HealthCheck(r.Context()); err != nil {
			api.logger.WithError(err).Error("Health check failed")
			writeJSON(w, map[string]interface{}{"result": false, "status": "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}
	writeJSON(w, map[string]interface{}{"result": true, "status": "ok"}, http.StatusOK)
}

func apiKey(r *http.Request) string {
	return r.Header.Get(API_KEY_HEADER)
}

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, service.BadRequest(fmt.Sprintf("invalid id %q", raw))
	}
	return uint(id), nil
}
