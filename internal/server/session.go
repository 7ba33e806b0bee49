package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hashportal/hashportal/internal/portal"
	"github.com/hashportal/hashportal/internal/views"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming websocket message format.
type clientMessage struct {
	Type     string `json:"type"` // "navigate" or "action"
	Fragment string `json:"fragment,omitempty"`
	Action   string `json:"action,omitempty"`
	Value    string `json:"value,omitempty"`
}

// serverMessage is the outgoing websocket message format.
type serverMessage struct {
	Type    string `json:"type"` // "redirect", "activate", "show" or "error"
	Path    string `json:"path,omitempty"`
	HTML    string `json:"html,omitempty"`
	Message string `json:"message,omitempty"`
}

// socketDisplay forwards runtime output to one browser. Writes come from
// both the runtime loop and the read loop, so they are serialised.
type socketDisplay struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (d *socketDisplay) Redirect(path string) {
	d.send(serverMessage{Type: "redirect", Path: path})
}

func (d *socketDisplay) Activate(path string) {
	d.send(serverMessage{Type: "activate", Path: path})
}

func (d *socketDisplay) Show(path string, main template.HTML) {
	d.send(serverMessage{Type: "show", Path: path, HTML: string(main)})
}

func (d *socketDisplay) sendError(message string) {
	d.send(serverMessage{Type: "error", Message: message})
}

func (d *socketDisplay) send(msg serverMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.conn.WriteJSON(msg); err != nil {
		log.Printf("server[%s]: websocket write: %v", d.id, err)
	}
}

// discard is the display of the probe runtime built at startup.
type discard struct{}

func (discard) Redirect(string)            {}
func (discard) Activate(string)            {}
func (discard) Show(string, template.HTML) {}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	display := &socketDisplay{id: id, conn: conn}

	opts := s.cfg.Portal
	opts.ID = id
	rt, err := portal.New(opts, display)
	if err != nil {
		display.sendError("session setup failed: " + err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.sessions.add(id, func() {
		cancel()
		conn.Close()
	})
	defer s.sessions.remove(id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		rt.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server[%s]: websocket read: %v", id, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			display.sendError("invalid message format")
			continue
		}

		var in portal.Msg
		switch msg.Type {
		case "navigate":
			in = portal.Navigate{Fragment: msg.Fragment}
		case "action":
			a, err := views.ParseAction(msg.Action + "=" + msg.Value)
			if err != nil {
				display.sendError(err.Error())
				continue
			}
			in = portal.Control{Action: a}
		default:
			display.sendError("unknown message type: " + msg.Type)
			continue
		}
		if err := rt.Send(ctx, in); err != nil {
			return
		}
	}
}

// sessionSet tracks open sessions so Shutdown can end them; hijacked
// connections are not closed by http.Server.Shutdown.
type sessionSet struct {
	mu     sync.Mutex
	closes map[string]func()
}

func newSessionSet() *sessionSet {
	return &sessionSet{closes: make(map[string]func())}
}

func (s *sessionSet) add(id string, close func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes[id] = close
}

func (s *sessionSet) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.closes, id)
}

func (s *sessionSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.closes)
}

func (s *sessionSet) closeAll() {
	s.mu.Lock()
	closes := make([]func(), 0, len(s.closes))
	for _, c := range s.closes {
		closes = append(closes, c)
	}
	s.mu.Unlock()
	for _, c := range closes {
		c()
	}
}
