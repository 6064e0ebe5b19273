package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lessongate/lessongate/internal/access"
	"github.com/lessongate/lessongate/internal/catalog"
	"github.com/lessongate/lessongate/internal/model"
	"github.com/lessongate/lessongate/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticSource struct {
	mu       sync.Mutex
	grants   []string
	statuses map[string]model.RequestStatus
}

func (s *staticSource) GrantedLessonIDs(context.Context, string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.grants))
	copy(out, s.grants)
	return out, nil
}

func (s *staticSource) RequestStatuses(context.Context, string) (map[string]model.RequestStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.RequestStatus, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out, nil
}

func (s *staticSource) setGrants(grants []string) {
	s.mu.Lock()
	s.grants = grants
	s.mu.Unlock()
}

func (s *staticSource) setStatus(lessonID string, status model.RequestStatus) {
	s.mu.Lock()
	if s.statuses == nil {
		s.statuses = make(map[string]model.RequestStatus)
	}
	s.statuses[lessonID] = status
	s.mu.Unlock()
}

// snapshotBuilder renders one subject with a fixed lesson list, annotated
// from the snapshot the same way the real assembler does.
type snapshotBuilder struct {
	lessonIDs []string
}

func (b *snapshotBuilder) Build(_ context.Context, snap access.Snapshot) []catalog.Subject {
	lessons := make([]catalog.Lesson, 0, len(b.lessonIDs))
	for _, id := range b.lessonIDs {
		lessons = append(lessons, catalog.Lesson{
			ID:            id,
			HasAccess:     snap.HasAccess(id),
			RequestStatus: snap.RequestStatus(id),
			Videos:        []catalog.Video{},
		})
	}
	return []catalog.Subject{{ID: "s1", Lessons: lessons, LessonCount: len(lessons)}}
}

func testConfig() Config {
	return Config{PollInterval: time.Hour, SignalDebounce: 10 * time.Millisecond}
}

func findLesson(t *testing.T, view []catalog.Subject, id string) catalog.Lesson {
	t.Helper()
	for _, subject := range view {
		for _, lesson := range subject.Lessons {
			if lesson.ID == id {
				return lesson
			}
		}
	}
	t.Fatalf("lesson %s not in view", id)
	return catalog.Lesson{}
}

func TestSessionStartBuildsCatalog(t *testing.T) {
	source := &staticSource{grants: []string{"l1"}}
	store := access.NewStore(source, zap.NewNop())
	bus := signal.NewBus()
	sess := New("u1", store, &snapshotBuilder{lessonIDs: []string{"l1", "l2"}}, bus, testConfig(), zap.NewNop())
	defer sess.Close()

	sess.Start(context.Background())

	view := sess.Catalog()
	require.Len(t, view, 1)
	assert.True(t, findLesson(t, view, "l1").HasAccess)
	assert.False(t, findLesson(t, view, "l2").HasAccess)
}

func TestSessionNoteRequestSubmittedPatchesACopy(t *testing.T) {
	source := &staticSource{}
	store := access.NewStore(source, zap.NewNop())
	bus := signal.NewBus()
	sess := New("u1", store, &snapshotBuilder{lessonIDs: []string{"l2"}}, bus, testConfig(), zap.NewNop())
	defer sess.Close()

	sess.Start(context.Background())
	before := sess.Catalog()
	require.Equal(t, model.RequestStatusNone, findLesson(t, before, "l2").RequestStatus)

	// The backend records the request, so the follow-up refresh agrees with
	// the optimistic patch.
	source.setStatus("l2", model.RequestStatusPending)
	sess.NoteRequestSubmitted("l2")

	// The slice handed out earlier is never mutated in place.
	assert.Equal(t, model.RequestStatusNone, findLesson(t, before, "l2").RequestStatus)
	assert.Equal(t, model.RequestStatusPending, findLesson(t, sess.Catalog(), "l2").RequestStatus,
		"pending badge must show without waiting for the refresh")
}

func TestSessionOptimisticPatchSkipsUnlockedLessons(t *testing.T) {
	source := &staticSource{grants: []string{"l1"}}
	store := access.NewStore(source, zap.NewNop())
	bus := signal.NewBus()
	sess := New("u1", store, &snapshotBuilder{lessonIDs: []string{"l1"}}, bus, testConfig(), zap.NewNop())
	defer sess.Close()

	sess.Start(context.Background())
	sess.NoteRequestSubmitted("l1")

	got := findLesson(t, sess.Catalog(), "l1")
	assert.True(t, got.HasAccess)
	assert.Equal(t, model.RequestStatusNone, got.RequestStatus,
		"an unlocked lesson keeps its state, access wins over requests")
}

func TestSessionSignalTriggersRefresh(t *testing.T) {
	source := &staticSource{}
	store := access.NewStore(source, zap.NewNop())
	bus := signal.NewBus()
	sess := New("u1", store, &snapshotBuilder{lessonIDs: []string{"l1"}}, bus, testConfig(), zap.NewNop())
	defer sess.Close()

	sess.Start(context.Background())
	require.False(t, findLesson(t, sess.Catalog(), "l1").HasAccess)

	source.setGrants([]string{"l1"})
	bus.Publish(signal.AccessChanged{UserID: "u1", LessonID: "l1"})

	require.Eventually(t, func() bool {
		return findLesson(t, sess.Catalog(), "l1").HasAccess
	}, time.Second, 5*time.Millisecond)
}

func TestSessionIgnoresOtherUsersSignals(t *testing.T) {
	source := &staticSource{}
	store := access.NewStore(source, zap.NewNop())
	bus := signal.NewBus()
	sess := New("u1", store, &snapshotBuilder{lessonIDs: []string{"l1"}}, bus, testConfig(), zap.NewNop())
	defer sess.Close()

	sess.Start(context.Background())
	source.setGrants([]string{"l1"})
	bus.Publish(signal.AccessChanged{UserID: "someone-else", LessonID: "l1"})

	time.Sleep(60 * time.Millisecond)
	assert.False(t, findLesson(t, sess.Catalog(), "l1").HasAccess,
		"a signal for another user must not refresh this session")
}

func TestRegistryLifecycle(t *testing.T) {
	source := &staticSource{}
	bus := signal.NewBus()
	reg := NewRegistry(context.Background(), source, &snapshotBuilder{lessonIDs: []string{"l1"}}, bus, testConfig(), zap.NewNop())

	require.Nil(t, reg.Get("u1"))

	sess := reg.GetOrCreate("u1")
	require.NotNil(t, sess)
	assert.Same(t, sess, reg.GetOrCreate("u1"))
	assert.Same(t, sess, reg.Get("u1"))
	assert.Equal(t, "u1", sess.UserID())

	reg.Close("u1")
	assert.Nil(t, reg.Get("u1"))
	reg.Close("u1") // closing an absent session is a no-op

	reg.GetOrCreate("u2")
	reg.GetOrCreate("u3")
	reg.CloseAll()
	assert.Nil(t, reg.Get("u2"))
	assert.Nil(t, reg.Get("u3"))
}
