package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccessRepository struct {
	pool *pgxpool.Pool
}

func NewAccessRepository(pool *pgxpool.Pool) *AccessRepository {
	return &AccessRepository{pool: pool}
}

// GrantedLessonIDs returns the IDs of every lesson the user has access to.
func (r *AccessRepository) GrantedLessonIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT lesson_id
		FROM access_grants
		WHERE user_id = $1
		ORDER BY granted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get granted lessons: %w", err)
	}
	defer rows.Close()

	var lessonIDs []string
	for rows.Next() {
		var lessonID string
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("scan lesson id: %w", err)
		}
		lessonIDs = append(lessonIDs, lessonID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson ids: %w", err)
	}

	return lessonIDs, nil
}

// HasAccess checks whether the user holds a grant for the lesson.
func (r *AccessRepository) HasAccess(ctx context.Context, userID, lessonID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM access_grants
			WHERE user_id = $1 AND lesson_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, lessonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}

	return exists, nil
}

// Grant unlocks a lesson for the user. Granting twice is a no-op.
func (r *AccessRepository) Grant(ctx context.Context, userID, lessonID, grantType string) error {
	query := `
		INSERT INTO access_grants (id, user_id, lesson_id, grant_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, lesson_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, uuid.NewString(), userID, lessonID, grantType)
	if err != nil {
		return fmt.Errorf("grant access: %w", err)
	}

	return nil
}

// Revoke removes the user's grant for the lesson.
func (r *AccessRepository) Revoke(ctx context.Context, userID, lessonID string) error {
	query := `
		DELETE FROM access_grants
		WHERE user_id = $1 AND lesson_id = $2
	`

	result, err := r.pool.Exec(ctx, query, userID, lessonID)
	if err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("access grant not found")
	}

	return nil
}
