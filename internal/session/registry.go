package session

import (
	"context"
	"sync"

	"github.com/lessongate/lessongate/internal/access"
	"github.com/lessongate/lessongate/internal/signal"
	"go.uber.org/zap"
)

// Registry hands out one live session per user. Sessions are created lazily
// on first touch and live until sign-out or application shutdown.
type Registry struct {
	ctx     context.Context
	source  access.Source
	builder CatalogBuilder
	bus     *signal.Bus
	cfg     Config
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry binds sessions to ctx: when ctx is cancelled every session
// scheduler stops on its own.
func NewRegistry(
	ctx context.Context,
	source access.Source,
	builder CatalogBuilder,
	bus *signal.Bus,
	cfg Config,
	logger *zap.Logger,
) *Registry {
	return &Registry{
		ctx:      ctx,
		source:   source,
		builder:  builder,
		bus:      bus,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the user's session, starting a fresh one when none
// exists.
func (r *Registry) GetOrCreate(userID string) *Session {
	r.mu.Lock()
	sess, ok := r.sessions[userID]
	if !ok {
		store := access.NewStore(r.source, r.logger)
		sess = New(userID, store, r.builder, r.bus, r.cfg, r.logger)
		r.sessions[userID] = sess
		r.logger.Info("Session started", zap.String("user_id", userID))
	}
	r.mu.Unlock()

	// The mount refresh talks to the backend; keep it outside the registry
	// lock. Start is idempotent.
	sess.Start(r.ctx)
	return sess
}

// Get returns the user's session or nil.
func (r *Registry) Get(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[userID]
}

// Close tears down one user's session, typically on sign-out.
func (r *Registry) Close(userID string) {
	r.mu.Lock()
	sess, ok := r.sessions[userID]
	if ok {
		delete(r.sessions, userID)
	}
	r.mu.Unlock()

	if ok {
		sess.Close()
		r.logger.Info("Session closed", zap.String("user_id", userID))
	}
}

// CloseAll tears down every session during shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		sessions = append(sessions, sess)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
