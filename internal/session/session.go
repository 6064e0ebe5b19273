// Package session owns the per-user screen state: the access snapshot store,
// the refresh scheduler driving it, and the latest assembled catalog view.
// A session is scoped to one signed-in user's catalog screen and is not
// shared across unrelated screens.
package session

import (
	"context"
	"sync"

	"github.com/lessongate/lessongate/internal/access"
	"github.com/lessongate/lessongate/internal/catalog"
	"github.com/lessongate/lessongate/internal/model"
	"github.com/lessongate/lessongate/internal/signal"
	"go.uber.org/zap"
)

// CatalogBuilder produces the assembled catalog for a snapshot. Implemented
// by service.CatalogService.
type CatalogBuilder interface {
	Build(ctx context.Context, snap access.Snapshot) []catalog.Subject
}

type Session struct {
	userID  string
	store   *access.Store
	builder CatalogBuilder
	sched   *Scheduler
	logger  *zap.Logger

	unsubscribe func()
	startOnce   sync.Once

	mu      sync.RWMutex
	catalog []catalog.Subject
}

func New(
	userID string,
	store *access.Store,
	builder CatalogBuilder,
	bus *signal.Bus,
	cfg Config,
	logger *zap.Logger,
) *Session {
	s := &Session{
		userID:  userID,
		store:   store,
		builder: builder,
		logger:  logger,
		catalog: []catalog.Subject{},
	}
	s.sched = NewScheduler(cfg, s.refresh, logger)

	events, unsubscribe := bus.Subscribe(4)
	s.unsubscribe = unsubscribe
	go s.listen(events)

	return s
}

// Start runs the mount refresh synchronously, then begins scheduling.
// Calling Start again is a no-op.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.refresh(ctx)
		s.sched.Start(ctx)
	})
}

func (s *Session) listen(events <-chan signal.AccessChanged) {
	for ev := range events {
		if ev.UserID == s.userID {
			s.sched.OnSignal()
		}
	}
}

// refresh is the single refresh path all scheduler triggers call: both
// snapshot halves once, then a catalog rebuild from the new snapshot.
func (s *Session) refresh(ctx context.Context) {
	if err := s.store.Refresh(ctx, s.userID); err != nil {
		// The store already reset the failed half; the rebuild below renders
		// the safe locked state.
		s.logger.Warn("Session refresh degraded",
			zap.String("user_id", s.userID),
			zap.Error(err),
		)
	}

	view := s.builder.Build(ctx, s.store.Snapshot())

	s.mu.Lock()
	s.catalog = view
	s.mu.Unlock()
}

// Catalog returns the latest assembled view. Callers must treat it as
// read-only; it is replaced wholesale on every refresh.
func (s *Session) Catalog() []catalog.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// UserID returns the owning user.
func (s *Session) UserID() string {
	return s.userID
}

// NoteRequestSubmitted applies the optimistic pending status after a
// confirmed submission and queues an early full refresh. It must only be
// called on success; a failed submission leaves the session untouched.
func (s *Session) NoteRequestSubmitted(lessonID string) {
	s.store.MarkPending(lessonID)

	// Patch the cached view so the pending badge shows before the refresh
	// lands. The view handed out by Catalog may still be read elsewhere, so
	// patch a copy instead of mutating in place. Unlocked lessons keep their
	// state: access wins over requests.
	s.mu.Lock()
	patched := make([]catalog.Subject, len(s.catalog))
	copy(patched, s.catalog)
	for si := range patched {
		for li := range patched[si].Lessons {
			if patched[si].Lessons[li].ID != lessonID {
				continue
			}
			lessons := make([]catalog.Lesson, len(patched[si].Lessons))
			copy(lessons, patched[si].Lessons)
			if !lessons[li].HasAccess {
				lessons[li].RequestStatus = model.RequestStatusPending
			}
			patched[si].Lessons = lessons
			break
		}
	}
	s.catalog = patched
	s.mu.Unlock()

	s.sched.RefreshNow()
}

// SetVisible forwards the hosting view's visibility to the scheduler.
func (s *Session) SetVisible(visible bool) {
	s.sched.SetVisible(visible)
}

// RefreshNow queues an immediate refresh.
func (s *Session) RefreshNow() {
	s.sched.RefreshNow()
}

// Close tears the session down: the bus subscription, the scheduler and its
// timers. Nothing fires after Close returns.
func (s *Session) Close() {
	s.unsubscribe()
	s.sched.Close()
}
