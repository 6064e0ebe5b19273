package access

import "github.com/lessongate/lessongate/internal/model"

// Snapshot is a consistent view of one user's lesson access: the set of
// unlocked lesson IDs and the latest known request status per lesson. Both
// halves come from the same store generation; a snapshot is never patched in
// place.
type Snapshot struct {
	AccessSet  map[string]struct{}
	RequestMap map[string]model.RequestStatus
}

// HasAccess reports whether the lesson is unlocked for the user.
func (s Snapshot) HasAccess(lessonID string) bool {
	_, ok := s.AccessSet[lessonID]
	return ok
}

// RequestStatus returns the latest known request status for the lesson,
// RequestStatusNone when there is no entry. Access always overrides request
// status; callers must check HasAccess first.
func (s Snapshot) RequestStatus(lessonID string) model.RequestStatus {
	if status, ok := s.RequestMap[lessonID]; ok {
		return status
	}
	return model.RequestStatusNone
}
