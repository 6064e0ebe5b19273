package service

import (
	"context"

	"github.com/lessongate/lessongate/internal/model"
)

type GrantQuery interface {
	GrantedLessonIDs(ctx context.Context, userID string) ([]string, error)
}

type RequestStatusQuery interface {
	StatusesByUser(ctx context.Context, userID string) (map[string]model.RequestStatus, error)
}

// SnapshotSource adapts the grant and request repositories into the
// access.Source the snapshot store fetches from.
type SnapshotSource struct {
	grants   GrantQuery
	requests RequestStatusQuery
}

func NewSnapshotSource(grants GrantQuery, requests RequestStatusQuery) *SnapshotSource {
	return &SnapshotSource{grants: grants, requests: requests}
}

func (s *SnapshotSource) GrantedLessonIDs(ctx context.Context, userID string) ([]string, error) {
	return s.grants.GrantedLessonIDs(ctx, userID)
}

func (s *SnapshotSource) RequestStatuses(ctx context.Context, userID string) (map[string]model.RequestStatus, error) {
	return s.requests.StatusesByUser(ctx, userID)
}
