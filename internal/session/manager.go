package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Atika-Amin/Shastho-Shohay/internal/triage"
)

// Session pairs one conversation's bot with a mutex so the transport layer
// can serve concurrent requests while keeping exactly one in-flight Handle
// call per conversation.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu  sync.Mutex
	bot *triage.Bot
}

// Do runs fn with exclusive access to the session's bot.
func (s *Session) Do(fn func(b *triage.Bot) string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.bot)
}

// Manager hands out UUID-keyed sessions backed by a size-bounded LRU, so
// abandoned conversations are evicted instead of accumulating forever.
// Engine and matcher are shared across all sessions.
type Manager struct {
	engine   *triage.Engine
	matcher  *triage.Matcher
	sessions *lru.Cache[string, *Session]
}

func NewManager(engine *triage.Engine, matcher *triage.Matcher, maxActive int) (*Manager, error) {
	cache, err := lru.New[string, *Session](maxActive)
	if err != nil {
		return nil, err
	}
	return &Manager{engine: engine, matcher: matcher, sessions: cache}, nil
}

// Create starts a fresh conversation and returns its session.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		bot:       triage.NewBot(m.engine, m.matcher),
	}
	m.sessions.Add(s.ID, s)
	return s
}

// Get returns the session for an ID, if it is still active.
func (m *Manager) Get(id string) (*Session, bool) {
	return m.sessions.Get(id)
}

// Len reports the number of active sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
