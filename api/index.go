package handler

import (
	"net/http"
	"rendezvous/config"
	"rendezvous/di"
	"rendezvous/shared/logger"
	"sync"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entry point. The dependency graph is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		handler = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
