package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessongate/lessongate/internal/model"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

// GetAll returns every video in insertion order. The assembler relies on this
// order as the tie-breaker when positions are missing or equal.
func (r *VideoRepository) GetAll(ctx context.Context) ([]model.Video, error) {
	query := `
		SELECT id, lesson_id, title, description, source_url, thumbnail_url, duration, "position", created_at
		FROM videos
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get videos: %w", err)
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var video model.Video
		err := rows.Scan(
			&video.ID,
			&video.LessonID,
			&video.Title,
			&video.Description,
			&video.SourceURL,
			&video.ThumbnailURL,
			&video.Duration,
			&video.Position,
			&video.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
