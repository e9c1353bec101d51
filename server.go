package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type app struct {
	cfg    Config
	client *Client
}

func (a *app) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(withLogging)

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ws", a.handleWebSocket)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(statusPageHTML))
	}).Methods(http.MethodGet)

	return r
}

func withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	})
}
