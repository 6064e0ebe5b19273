package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lessongate/lessongate/internal/access"
	"github.com/lessongate/lessongate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubjects struct {
	subjects []model.Subject
	err      error
}

func (f *fakeSubjects) GetAll(context.Context) ([]model.Subject, error) {
	return f.subjects, f.err
}

type fakeCatalogLessons struct {
	lessons []model.Lesson
	err     error
}

func (f *fakeCatalogLessons) GetAll(context.Context) ([]model.Lesson, error) {
	return f.lessons, f.err
}

type fakeVideos struct {
	videos []model.Video
	err    error
}

func (f *fakeVideos) GetAll(context.Context) ([]model.Video, error) {
	return f.videos, f.err
}

func emptySnapshot() access.Snapshot {
	return access.Snapshot{
		AccessSet:  map[string]struct{}{},
		RequestMap: map[string]model.RequestStatus{},
	}
}

func TestBuildAssemblesCatalog(t *testing.T) {
	svc := NewCatalogService(
		&fakeSubjects{subjects: []model.Subject{{ID: "s1", Name: "Mathematics"}}},
		&fakeCatalogLessons{lessons: []model.Lesson{{ID: "l1", SubjectID: "s1"}}},
		&fakeVideos{videos: []model.Video{{ID: "v1", LessonID: "l1"}}},
		zap.NewNop(),
	)

	out := svc.Build(context.Background(), emptySnapshot())
	require.Len(t, out, 1)
	assert.Equal(t, "Mathematics", out[0].Name)
	require.Len(t, out[0].Lessons, 1)
	assert.Equal(t, 1, out[0].Lessons[0].VideoCount)
}

func TestBuildServesFallbackOnSubjectFailure(t *testing.T) {
	svc := NewCatalogService(
		&fakeSubjects{err: errors.New("backend down")},
		&fakeCatalogLessons{lessons: []model.Lesson{{ID: "l1", SubjectID: "s1"}}},
		&fakeVideos{},
		zap.NewNop(),
	)

	out := svc.Build(context.Background(), emptySnapshot())
	require.Len(t, out, 3)
	for _, subject := range out {
		assert.Empty(t, subject.Lessons, "fallback subjects carry no lessons")
	}
}

func TestBuildDegradesOnChildFailures(t *testing.T) {
	svc := NewCatalogService(
		&fakeSubjects{subjects: []model.Subject{{ID: "s1"}}},
		&fakeCatalogLessons{err: errors.New("lessons down")},
		&fakeVideos{err: errors.New("videos down")},
		zap.NewNop(),
	)

	out := svc.Build(context.Background(), emptySnapshot())
	require.Len(t, out, 1)
	assert.Equal(t, "s1", out[0].ID, "real subjects survive child fetch failures")
	assert.Empty(t, out[0].Lessons)
}
