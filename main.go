package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

var (
	httpPort        = flag.Int("port", 8080, "HTTP port")
	shutdownTimeout = flag.Duration("shutdown_timeout", 10*time.Second, "HTTP server shutdown timeout")
	apiBase         = flag.String("api_base", "", "sheSafe backend base URL (overrides API_BASE env)")
	pollInterval    = flag.Duration("poll_interval", 0, "location poll interval (default 3s)")
	requestTimeout  = flag.Duration("request_timeout", 10*time.Second, "backend request timeout")
)

func main() {
	flag.Parse()

	cfg := DefaultConfig()
	if *apiBase != "" {
		cfg.APIBase = strings.TrimRight(*apiBase, "/")
	}
	if *pollInterval > 0 {
		cfg.PollInterval = *pollInterval
	}

	a := &app{
		cfg:    cfg,
		client: NewClient(cfg.APIBase, *requestTimeout),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *httpPort),
		Handler:           a.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("live status server on http://localhost:%d/ (backend %s)", *httpPort, cfg.APIBase)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown initiated...")

	ctx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Printf("HTTP server shut down successfully")
	}
}
