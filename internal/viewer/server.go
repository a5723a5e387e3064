// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


// Package viewer serves the browser front end. Inbound websocket actions
// become session commands on a channel the player loop consumes; outbound
// state snapshots fan out to every connected client.
package viewer

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/nodevis/internal/session"
)

//go:embed static/index.html
var indexHTML []byte

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// sendBuffer is the per-client outbound queue. When a client falls this far
// behind, newer snapshots replace older ones rather than stalling the player.
const sendBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server bridges browsers to the playback session.
type Server struct {
	commands chan<- session.Command

	mu       sync.RWMutex
	state    []byte // latest session.State, for /api/state
	envelope []byte // same snapshot wrapped as a WSResponse, for late joiners
	clients  map[*client]struct{}
}

// New returns a server that forwards decoded browser requests to commands.
func New(commands chan<- session.Command) *Server {
	return &Server{
		commands: commands,
		clients:  make(map[*client]struct{}),
	}
}

// Handler returns the HTTP mux for the viewer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves the viewer on addr. It blocks until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("viewer: listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Broadcast caches a state snapshot and pushes it to every connected client.
// Called from the loop that owns the session.
func (s *Server) Broadcast(st session.State) {
	stateJSON, err := json.Marshal(st)
	if err != nil {
		log.Printf("viewer: marshal state: %v", err)
		return
	}
	payload, err := json.Marshal(WSResponse{Type: "state", State: stateJSON})
	if err != nil {
		log.Printf("viewer: marshal envelope: %v", err)
		return
	}

	s.mu.Lock()
	s.state = stateJSON
	s.envelope = payload
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			// Client is not keeping up; skip this snapshot for it.
		}
	}
	s.mu.Unlock()
}

// BroadcastDataset announces a dataset swap so clients rebuild their scene
// before the next state snapshot lands.
func (s *Server) BroadcastDataset(st session.State) {
	stateJSON, err := json.Marshal(st)
	if err != nil {
		log.Printf("viewer: marshal dataset: %v", err)
		return
	}
	s.fanOut(WSResponse{Type: "dataset", State: stateJSON})
}

// BroadcastError pushes an error message to every connected client. Used for
// failures that surface in the player loop, after the requesting client can
// no longer be identified.
func (s *Server) BroadcastError(message string) {
	s.fanOut(WSResponse{Type: "error", Message: message})
}

func (s *Server) fanOut(resp WSResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	s.mu.RLock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
	s.mu.RUnlock()
}

// ClientCount reports the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(s.state)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer: websocket upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.envelope != nil {
		c.send <- s.envelope
	}
	s.mu.Unlock()
	log.Printf("viewer: client connected from %s", conn.RemoteAddr())

	go c.writeLoop()
	s.readLoop(c)
}

// readLoop decodes browser requests until the connection drops. Valid
// requests go to the player loop; malformed ones earn an error response.
func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			log.Printf("viewer: client disconnected: %v", err)
			return
		}
		cmd, err := decodeCommand(msg)
		if err != nil {
			log.Printf("viewer: bad request: %v", err)
			c.sendError(err.Error())
			continue
		}
		s.commands <- cmd
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
	c.conn.Close()
}

func (c *client) writeLoop() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (c *client) sendError(message string) {
	payload, err := json.Marshal(WSResponse{Type: "error", Message: message})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
