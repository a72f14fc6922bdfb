package presence

import (
	"sync"
)

// Registry tracks which users currently hold an active notification session.
// A user may be connected from several tabs or devices at once, so sessions
// are reference-counted per user and a user stays online until the last
// session disconnects.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uint]map[string]struct{}
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uint]map[string]struct{}),
	}
}

// Connect registers a session for the user.
func (r *Registry) Connect(userID uint, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions[userID] == nil {
		r.sessions[userID] = make(map[string]struct{})
	}
	r.sessions[userID][sessionID] = struct{}{}
}

// Disconnect removes a session. The user goes offline when no sessions remain.
func (r *Registry) Disconnect(userID uint, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userSessions, ok := r.sessions[userID]
	if !ok {
		return
	}

	delete(userSessions, sessionID)
	if len(userSessions) == 0 {
		delete(r.sessions, userID)
	}
}

// IsOnline reports whether the user has at least one active session.
func (r *Registry) IsOnline(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID]) > 0
}

// SessionCount returns the number of active sessions for the user.
func (r *Registry) SessionCount(userID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID])
}

// OnlineUsers returns the IDs of all currently connected users.
func (r *Registry) OnlineUsers() []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]uint, 0, len(r.sessions))
	for userID := range r.sessions {
		users = append(users, userID)
	}
	return users
}
