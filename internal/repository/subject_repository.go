package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessongate/lessongate/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// GetAll returns every subject in catalog order.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]model.Subject, error) {
	query := `
		SELECT id, name, description, icon, color, image_url, created_at
		FROM subjects
		ORDER BY name ASC, created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var subject model.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Description,
			&subject.Icon,
			&subject.Color,
			&subject.ImageURL,
			&subject.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}

	return subjects, nil
}

// GetByID returns a subject by ID, nil when it does not exist.
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	query := `
		SELECT id, name, description, icon, color, image_url, created_at
		FROM subjects
		WHERE id = $1
	`

	var subject model.Subject
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Description,
		&subject.Icon,
		&subject.Color,
		&subject.ImageURL,
		&subject.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject: %w", err)
	}

	return &subject, nil
}
