package service

import (
	"context"

	"github.com/lessongate/lessongate/internal/access"
	"github.com/lessongate/lessongate/internal/catalog"
	"github.com/lessongate/lessongate/internal/model"
	"go.uber.org/zap"
)

// SubjectSource, LessonSource and VideoSource are the record queries the
// catalog needs; implemented by the repositories.
type SubjectSource interface {
	GetAll(ctx context.Context) ([]model.Subject, error)
}

type LessonSource interface {
	GetAll(ctx context.Context) ([]model.Lesson, error)
}

type VideoSource interface {
	GetAll(ctx context.Context) ([]model.Video, error)
}

// CatalogService fetches the raw catalog records and assembles the nested
// view for a snapshot. Assembly itself is pure; every failure here degrades
// to a renderable state instead of propagating.
type CatalogService struct {
	subjects SubjectSource
	lessons  LessonSource
	videos   VideoSource
	logger   *zap.Logger
}

func NewCatalogService(
	subjects SubjectSource,
	lessons LessonSource,
	videos VideoSource,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		subjects: subjects,
		lessons:  lessons,
		videos:   videos,
		logger:   logger,
	}
}

// Build returns the assembled catalog annotated with snap. A failed subject
// fetch yields the built-in fallback catalog; failed lesson or video fetches
// degrade to an empty child list under the real subjects.
func (s *CatalogService) Build(ctx context.Context, snap access.Snapshot) []catalog.Subject {
	subjects, err := s.subjects.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch subjects, serving fallback catalog", zap.Error(err))
		return catalog.Fallback()
	}

	lessons, err := s.lessons.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch lessons", zap.Error(err))
		lessons = nil
	}

	videos, err := s.videos.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch videos", zap.Error(err))
		videos = nil
	}

	return catalog.Assemble(subjects, lessons, videos, snap)
}
