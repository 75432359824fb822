package server

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/store"
)

// GameServer is the interface clients use to communicate with the server.
// Each client simulates its own game; the server tracks who is connected and
// owns the shared high score.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int) bool
	GetSnapshot() *Snapshot
}

// Server tracks connected clients and the persisted high score.
type Server struct {
	store  store.Store
	key    string
	logger *log.Logger

	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	highScore int
	holder    string

	// persistMu orders store writes; persisted is the last value written.
	persistMu sync.Mutex
	persisted int
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	Score    int              // Latest score reported by the client
	EventsCh chan ClientEvent // Events sent to client (new high score, shutdown)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type      ClientEventType
	HighScore int    // For high score events
	Holder    string // Username that set the high score
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventHighScore ClientEventType = iota
	EventServerShutdown
)

// Snapshot is an immutable view of the server state for clients.
type Snapshot struct {
	Players   int
	Names     []string
	HighScore int
	Holder    string
}

// NewServer creates a server whose high score lives in st under key.
func NewServer(st store.Store, key string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	best, err := store.Load(st, key)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:        st,
		key:          key,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		highScore:    best,
		persisted:    best,
	}
	s.createSnapshot()
	return s, nil
}

// Run processes registrations until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.processRegistrations() {
				s.createSnapshot()
			}
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.processRegistrations() {
				s.createSnapshot()
			}
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// GetSnapshot returns the current server snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// HighScore returns the best score and the name of who set it.
func (s *Server) HighScore() (int, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highScore, s.holder
}

// ReportScore records a client's score and reports whether it beat the high
// score. A new high score is persisted and announced to the other clients.
func (s *Server) ReportScore(clientID int, score int) bool {
	s.mu.Lock()
	name := ""
	if handle, ok := s.clients[clientID]; ok {
		handle.Score = score
		name = handle.Username
	}
	if score <= s.highScore {
		s.mu.Unlock()
		return false
	}
	s.highScore = score
	s.holder = name

	event := ClientEvent{Type: EventHighScore, HighScore: score, Holder: name}
	for id, handle := range s.clients {
		if id == clientID {
			continue
		}
		select {
		case handle.EventsCh <- event:
		default:
		}
	}
	s.mu.Unlock()

	s.persist()
	s.createSnapshot()
	return true
}

// persist writes the current high score unless a write of an equal or
// higher value already went through. Writes are serialised so a slow store
// can never end up holding a lower score than one written after it.
func (s *Server) persist() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	best, _ := s.HighScore()
	if best <= s.persisted {
		return
	}
	if err := s.store.Put(s.key, best); err != nil {
		s.logger.Error("Failed to save high score", "score", best, "err", err)
		return
	}
	s.persisted = best
}

// ScoreReporter hands a client's new high scores to the server.
type ScoreReporter struct {
	Server   GameServer
	ClientID int
}

// SaveHighScore reports score for the client.
func (r ScoreReporter) SaveHighScore(score int) {
	r.Server.ReportScore(r.ClientID, score)
}

// processRegistrations handles pending client registrations/unregistrations.
// It reports whether the client set changed.
func (s *Server) processRegistrations() bool {
	changed := false
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("Client registered", "id", handle.ID, "user", handle.Username)
			changed = true
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				changed = true
			}
			s.mu.Unlock()
		default:
			return changed
		}
	}
}

// createSnapshot publishes the current player list and high score.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.clients))
	for _, handle := range s.clients {
		names = append(names, handle.Username)
	}
	sort.Strings(names)

	s.snapshot.Store(&Snapshot{
		Players:   len(s.clients),
		Names:     names,
		HighScore: s.highScore,
		Holder:    s.holder,
	})
}
