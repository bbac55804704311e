package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prat555/Food-Delivery-App/internal/cart"
	"github.com/prat555/Food-Delivery-App/internal/checkout"
	"github.com/prat555/Food-Delivery-App/internal/domain"
	"github.com/prat555/Food-Delivery-App/internal/event"
	"github.com/prat555/Food-Delivery-App/internal/payment"
)

// publishTimeout bounds the cart event publish triggered by an observer.
const publishTimeout = 3 * time.Second

// CartPublisher publishes cart snapshots downstream. event.Producer
// satisfies it.
type CartPublisher interface {
	PublishCartUpdated(ctx context.Context, data event.CartUpdatedData) error
}

// Session bundles the per-client state: one cart and one checkout workflow
// bound to it. State lives for the process lifetime only.
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *checkout.Workflow

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Config carries the dependencies shared by every session's workflow.
type Config struct {
	Provider  payment.Provider
	Notifier  checkout.Notifier
	Publisher CartPublisher
	Pricing   domain.PricingPolicy
	Currency  string

	// IdleTTL is how long an untouched session survives before eviction.
	// Zero disables eviction.
	IdleTTL time.Duration
}

// Manager creates and caches sessions keyed by session ID. Sessions are
// created lazily on first use and evicted after IdleTTL of inactivity.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	done chan struct{}
	once sync.Once
}

// NewManager creates a session manager. If cfg.IdleTTL is positive a
// background sweeper evicts idle sessions until Close is called.
func NewManager(cfg Config, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	if cfg.IdleTTL > 0 {
		go m.sweep()
	}
	return m
}

// GetOrCreate returns the session for the given ID, creating it on first use.
func (m *Manager) GetOrCreate(id string) *Session {
	now := time.Now()

	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		sess.touch(now)
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		sess.touch(now)
		return sess
	}

	store := cart.NewStore()
	sess = &Session{
		ID:       id,
		Cart:     store,
		Checkout: checkout.NewWorkflow(store, m.cfg.Provider, m.cfg.Notifier, m.cfg.Pricing, m.cfg.Currency, m.logger),
		lastSeen: now,
	}

	if m.cfg.Publisher != nil {
		store.Subscribe(m.cartObserver(id))
	}

	m.sessions[id] = sess
	m.logger.Debug("session created", slog.String("session_id", id))
	return sess
}

// Get returns the session for the given ID, or nil when none exists.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the background sweeper.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

// cartObserver publishes a cart snapshot on every cart mutation. The publish
// runs detached so the observer never blocks a cart operation on the broker.
func (m *Manager) cartObserver(sessionID string) cart.Observer {
	return func(snap cart.Snapshot) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			data := event.CartUpdatedData{
				SessionID: sessionID,
				Lines:     snap.Lines,
				ItemCount: snap.ItemCount,
				Subtotal:  snap.Subtotal,
			}
			if err := m.cfg.Publisher.PublishCartUpdated(ctx, data); err != nil {
				m.logger.Error("failed to publish cart.updated event",
					slog.String("session_id", sessionID),
					slog.String("error", err.Error()),
				)
			}
		}()
	}
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(m.cfg.IdleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if now.Sub(sess.seen()) > m.cfg.IdleTTL {
			delete(m.sessions, id)
			m.logger.Debug("session evicted", slog.String("session_id", id))
		}
	}
}
