package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"
)

type sessionStatus string

const (
	statusIdle      sessionStatus = "idle"
	statusResolving sessionStatus = "resolving"
	statusPolling   sessionStatus = "polling"
	statusError     sessionStatus = "error"
	statusMissing   sessionStatus = "missing"
)

// Session is the per-viewer state machine behind one status page: it resolves
// the share token, runs the poll loop, and reports every state change through
// the push callback.
//
// The poll loop is generation-counted: Stop, Close, and StartPolling all bump
// gen and cancel the previous loop's context, so a fetch that was in flight
// when the loop was superseded can never touch state.
type Session struct {
	id       string
	client   *Client
	interval time.Duration
	push     func(ViewState)

	mu      sync.Mutex
	status  sessionStatus
	device  string
	latest  *LatestRecord
	lastErr *ViewError
	gen     int
	cancel  context.CancelFunc
	closed  bool
}

func NewSession(id string, client *Client, interval time.Duration, push func(ViewState)) *Session {
	return &Session{
		id:       id,
		client:   client,
		interval: interval,
		push:     push,
		status:   statusIdle,
	}
}

// Mount dispatches on the page's query parameters. The token wins when both
// are present; with neither the page has nothing to show.
func (s *Session) Mount(token, device string) {
	switch {
	case token != "":
		s.mu.Lock()
		s.status = statusResolving
		gen := s.gen
		s.mu.Unlock()
		s.notify()
		go s.resolve(token, gen)
	case device != "":
		s.StartPolling(device)
	default:
		s.mu.Lock()
		s.status = statusMissing
		s.mu.Unlock()
		s.notify()
	}
}

func (s *Session) resolve(token string, gen int) {
	resp, err := s.client.ResolveToken(context.Background(), token)
	if err != nil {
		log.Printf("session %s: resolve error: %v", s.id, err)
		s.mu.Lock()
		if s.closed || gen != s.gen {
			s.mu.Unlock()
			return
		}
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			s.status = statusMissing
		} else {
			s.status = statusError
		}
		s.lastErr = viewError(err)
		s.mu.Unlock()
		s.notify()
		return
	}

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	if resp.Latest != nil {
		rec := *resp.Latest
		s.latest = &rec
	}
	s.mu.Unlock()
	s.StartPolling(resp.Device)
}

// StartPolling supersedes any previous loop, issues one immediate fetch, then
// repeats at the fixed interval until stopped.
func (s *Session) StartPolling(device string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.device = device
	s.status = statusPolling
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()

	go s.poll(ctx, gen, device)
}

func (s *Session) poll(ctx context.Context, gen int, device string) {
	s.fetchOnce(ctx, gen, device)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.fetchOnce(ctx, gen, device)
		}
	}
}

// fetchOnce is one poll tick. A failure keeps the previous snapshot and the
// loop alive; a success replaces the snapshot and clears any earlier error.
func (s *Session) fetchOnce(ctx context.Context, gen int, device string) {
	rec, err := s.client.Location(ctx, device)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	if err != nil {
		log.Printf("session %s: poll error: %v", s.id, err)
		s.status = statusError
		s.lastErr = viewError(err)
	} else {
		s.status = statusPolling
		s.latest = &rec
		s.lastErr = nil
	}
	s.mu.Unlock()
	s.notify()
}

// Refresh performs one on-demand fetch without touching the ticker.
func (s *Session) Refresh() {
	s.mu.Lock()
	device, gen := s.device, s.gen
	running := !s.closed && s.cancel != nil && device != ""
	s.mu.Unlock()
	if !running {
		return
	}
	go s.fetchOnce(context.Background(), gen, device)
}

// MarkSafe asks the backend to flag the device safe, then refreshes so the
// page reflects the new status. A failure surfaces like a tick failure.
func (s *Session) MarkSafe() {
	s.mu.Lock()
	device, gen := s.device, s.gen
	ok := !s.closed && device != ""
	s.mu.Unlock()
	if !ok {
		return
	}
	go func() {
		if _, err := s.client.MarkSafe(context.Background(), device); err != nil {
			log.Printf("session %s: mark-safe error: %v", s.id, err)
			s.mu.Lock()
			if s.closed || gen != s.gen {
				s.mu.Unlock()
				return
			}
			s.lastErr = viewError(err)
			s.mu.Unlock()
			s.notify()
			return
		}
		s.fetchOnce(context.Background(), gen, device)
	}()
}

// Stop cancels the loop and returns the page to the missing state.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.device = ""
	s.latest = nil
	s.lastErr = nil
	s.status = statusMissing
	s.mu.Unlock()
	s.notify()
}

// Close tears the session down when the viewer disconnects. No further state
// changes or pushes happen afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.mu.Unlock()
}

// Snapshot returns a copy of the current view state.
func (s *Session) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := ViewState{
		Status: string(s.status),
		Device: s.device,
		Error:  s.lastErr,
	}
	if s.latest != nil {
		rec := *s.latest
		st.Latest = &rec
		if rec.AudioURL != nil {
			st.Audio = BuildAudioURL(s.client.BaseURL(), *rec.AudioURL)
		}
	}
	return st
}

func (s *Session) notify() {
	if s.push == nil {
		return
	}
	s.push(s.Snapshot())
}

func viewError(err error) *ViewError {
	var se *StatusError
	if errors.As(err, &se) {
		return &ViewError{Message: se.Message, HTTPStatus: se.Status}
	}
	return &ViewError{Message: err.Error()}
}
