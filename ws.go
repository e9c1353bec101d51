package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsCommand is a control frame from the page: refresh, stop, or mark-safe.
type wsCommand struct {
	Cmd string `json:"cmd"`
}

// handleWebSocket runs one viewer: the page connects with its token/device
// query parameters forwarded, gets every state change as a JSON frame, and
// sends control frames back.
func (a *app) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	id := strings.Split(uuid.NewString(), "-")[0]
	q := r.URL.Query()
	token, device := q.Get("token"), q.Get("device")
	log.Printf("viewer %s connected (token=%v, device=%q)", id, token != "", device)

	// Buffered so a slow writer never blocks the session; dropped frames are
	// fine because every frame carries the full state.
	frames := make(chan ViewState, 16)
	done := make(chan struct{})
	sess := NewSession(id, a.client, a.cfg.PollInterval, func(st ViewState) {
		select {
		case frames <- st:
		default:
		}
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case st := <-frames:
				if err := conn.WriteJSON(st); err != nil {
					return
				}
			}
		}
	}()

	sess.Mount(token, device)
	readPump(conn, sess)

	sess.Close()
	close(done)
	_ = conn.Close()
	log.Printf("viewer %s disconnected", id)
}

func readPump(conn *websocket.Conn, sess *Session) {
	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Cmd {
		case "refresh":
			sess.Refresh()
		case "stop":
			sess.Stop()
		case "mark-safe":
			sess.MarkSafe()
		default:
			log.Printf("unknown ws command: %q", cmd.Cmd)
		}
	}
}
