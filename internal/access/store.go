package access

import (
	"context"
	"fmt"
	"sync"

	"github.com/lessongate/lessongate/internal/model"
	"go.uber.org/zap"
)

// Source fetches the two halves of a user's access snapshot from the backend.
// Both calls are independent and idempotent.
type Source interface {
	GrantedLessonIDs(ctx context.Context, userID string) ([]string, error)
	RequestStatuses(ctx context.Context, userID string) (map[string]model.RequestStatus, error)
}

// Store holds the session's access snapshot. Each refresh replaces a half
// wholesale; a half is only written by a fetch at least as recent as the one
// that last wrote it, so overlapping refreshes cannot interleave into a
// merged state. On fetch failure the half resets to empty: an empty snapshot
// means "nothing confirmed" and the catalog renders everything locked rather
// than falsely unlocked.
type Store struct {
	source Source
	logger *zap.Logger

	mu         sync.Mutex
	accessSet  map[string]struct{}
	requestMap map[string]model.RequestStatus
	nextGen    uint64
	accessGen  uint64 // generation that last wrote the access set
	requestGen uint64 // generation that last wrote the request map
}

func NewStore(source Source, logger *zap.Logger) *Store {
	return &Store{
		source:     source,
		logger:     logger,
		accessSet:  make(map[string]struct{}),
		requestMap: make(map[string]model.RequestStatus),
	}
}

// begin allocates a generation for a new fetch.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// RefreshAccess refetches the granted-lesson set. On failure the set is
// emptied and the error returned; the caller proceeds with the emptied
// snapshot, retries belong to the scheduler.
func (s *Store) RefreshAccess(ctx context.Context, userID string) error {
	gen := s.begin()

	lessonIDs, err := s.source.GrantedLessonIDs(ctx, userID)

	set := make(map[string]struct{}, len(lessonIDs))
	for _, id := range lessonIDs {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	if gen >= s.accessGen {
		s.accessGen = gen
		s.accessSet = set
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to refresh access set, resetting to empty",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("refresh access: %w", err)
	}

	return nil
}

// RefreshRequests refetches the request-status map. Failure semantics match
// RefreshAccess.
func (s *Store) RefreshRequests(ctx context.Context, userID string) error {
	gen := s.begin()

	statuses, err := s.source.RequestStatuses(ctx, userID)
	if statuses == nil {
		statuses = make(map[string]model.RequestStatus)
	}

	s.mu.Lock()
	if gen >= s.requestGen {
		s.requestGen = gen
		s.requestMap = statuses
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to refresh request map, resetting to empty",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("refresh requests: %w", err)
	}

	return nil
}

// Refresh fetches both halves, each exactly once. The first error is
// returned but both halves are always refreshed.
func (s *Store) Refresh(ctx context.Context, userID string) error {
	accessErr := s.RefreshAccess(ctx, userID)
	requestErr := s.RefreshRequests(ctx, userID)

	if accessErr != nil {
		return accessErr
	}
	return requestErr
}

// MarkPending optimistically records a pending request for the lesson. It does
// not bump the generation: the next completed fetch replaces it with the
// backend's view.
func (s *Store) MarkPending(lessonID string) {
	s.mu.Lock()
	s.requestMap[lessonID] = model.RequestStatusPending
	s.mu.Unlock()
}

// Snapshot returns a copy of both halves taken under one lock, so callers
// never observe one half mid-update while the other is stale.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]struct{}, len(s.accessSet))
	for id := range s.accessSet {
		set[id] = struct{}{}
	}

	statuses := make(map[string]model.RequestStatus, len(s.requestMap))
	for id, status := range s.requestMap {
		statuses[id] = status
	}

	return Snapshot{AccessSet: set, RequestMap: statuses}
}
