package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestApp(t *testing.T, backend http.Handler) (*app, *httptest.Server) {
	t.Helper()
	bsrv := httptest.NewServer(backend)
	t.Cleanup(bsrv.Close)
	a := &app{
		cfg:    Config{APIBase: bsrv.URL, PollInterval: 20 * time.Millisecond},
		client: NewClient(bsrv.URL, time.Second),
	}
	srv := httptest.NewServer(a.routes())
	t.Cleanup(srv.Close)
	return a, srv
}

func TestHealthEndpoint(t *testing.T) {
	_, srv := newTestApp(t, http.NewServeMux())
	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("body = %q, want ok", body)
	}
}

func TestStatusPageServed(t *testing.T) {
	_, srv := newTestApp(t, http.NewServeMux())
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "sheSafe Live Status") {
		t.Fatal("page body missing title")
	}
}

// End to end over the websocket: connect with a device param, watch state
// frames arrive, then stop and watch the state clear.
func TestWebSocketLiveFlow(t *testing.T) {
	backend := http.NewServeMux()
	backend.HandleFunc("/api/location", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"device":"dev42","lat":1.0,"lon":2.0,"timestamp":"t1","status":"active"}`)
	})
	_, srv := newTestApp(t, backend)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?device=dev42"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	waitFrame := func(desc string, pred func(ViewState) bool) ViewState {
		t.Helper()
		for {
			var st ViewState
			if err := conn.ReadJSON(&st); err != nil {
				t.Fatalf("reading frames while waiting for %s: %v", desc, err)
			}
			if pred(st) {
				return st
			}
		}
	}

	st := waitFrame("live snapshot", func(st ViewState) bool {
		return st.Status == "polling" && st.Latest != nil
	})
	if st.Device != "dev42" || st.Latest.Lat == nil || *st.Latest.Lat != 1.0 {
		t.Fatalf("unexpected live frame: %+v", st)
	}

	if err := conn.WriteJSON(wsCommand{Cmd: "stop"}); err != nil {
		t.Fatalf("send stop: %v", err)
	}
	st = waitFrame("stopped state", func(st ViewState) bool { return st.Status == "missing" })
	if st.Device != "" || st.Latest != nil {
		t.Fatalf("stop did not clear state: %+v", st)
	}
}
