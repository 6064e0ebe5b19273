package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessongate/lessongate/internal/model"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// GetAll returns every lesson, oldest first. Grouping under subjects is the
// assembler's job.
func (r *LessonRepository) GetAll(ctx context.Context) ([]model.Lesson, error) {
	query := `
		SELECT id, subject_id, title, description, thumbnail_url, created_at
		FROM lessons
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get lessons: %w", err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		var lesson model.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.SubjectID,
			&lesson.Title,
			&lesson.Description,
			&lesson.ThumbnailURL,
			&lesson.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}

	return lessons, nil
}

// GetByID returns a lesson by ID, nil when it does not exist.
func (r *LessonRepository) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	query := `
		SELECT id, subject_id, title, description, thumbnail_url, created_at
		FROM lessons
		WHERE id = $1
	`

	var lesson model.Lesson
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.SubjectID,
		&lesson.Title,
		&lesson.Description,
		&lesson.ThumbnailURL,
		&lesson.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	return &lesson, nil
}
