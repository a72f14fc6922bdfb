package presence

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ConnectDisconnect(t *testing.T) {
	registry := NewRegistry()

	assert.False(t, registry.IsOnline(20))

	registry.Connect(20, "session-a")
	assert.True(t, registry.IsOnline(20))
	assert.Equal(t, 1, registry.SessionCount(20))

	registry.Connect(20, "session-b")
	assert.Equal(t, 2, registry.SessionCount(20))

	registry.Disconnect(20, "session-a")
	assert.True(t, registry.IsOnline(20), "user stays online while any session remains")

	registry.Disconnect(20, "session-b")
	assert.False(t, registry.IsOnline(20))
	assert.Equal(t, 0, registry.SessionCount(20))
}

func TestRegistry_DisconnectUnknownSession(t *testing.T) {
	registry := NewRegistry()

	registry.Disconnect(20, "never-connected")
	assert.False(t, registry.IsOnline(20))

	registry.Connect(20, "session-a")
	registry.Disconnect(20, "other-session")
	assert.True(t, registry.IsOnline(20))
}

func TestRegistry_DuplicateConnectIsIdempotent(t *testing.T) {
	registry := NewRegistry()

	registry.Connect(20, "session-a")
	registry.Connect(20, "session-a")
	assert.Equal(t, 1, registry.SessionCount(20))

	registry.Disconnect(20, "session-a")
	assert.False(t, registry.IsOnline(20))
}

func TestRegistry_OnlineUsers(t *testing.T) {
	registry := NewRegistry()

	registry.Connect(10, "a")
	registry.Connect(20, "b")
	registry.Connect(20, "c")

	users := registry.OnlineUsers()
	assert.ElementsMatch(t, []uint{10, 20}, users)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := uint(n % 5)
			sessionID := fmt.Sprintf("session-%d", n)
			registry.Connect(userID, sessionID)
			registry.IsOnline(userID)
			registry.Disconnect(userID, sessionID)
		}(i)
	}
	wg.Wait()

	for userID := uint(0); userID < 5; userID++ {
		assert.False(t, registry.IsOnline(userID))
	}
}
