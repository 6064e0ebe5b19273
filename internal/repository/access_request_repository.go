package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessongate/lessongate/internal/model"
)

type AccessRequestRepository struct {
	pool *pgxpool.Pool
}

func NewAccessRequestRepository(pool *pgxpool.Pool) *AccessRequestRepository {
	return &AccessRequestRepository{pool: pool}
}

// Create inserts a new request.
func (r *AccessRequestRepository) Create(ctx context.Context, req *model.AccessRequest) error {
	query := `
		INSERT INTO access_requests (id, user_id, lesson_id, subject_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		req.ID,
		req.UserID,
		req.LessonID,
		req.SubjectID,
		req.Message,
		req.Status,
	).Scan(&req.CreatedAt)

	if err != nil {
		return fmt.Errorf("create access request: %w", err)
	}

	return nil
}

// GetByID returns a request by ID, nil when it does not exist.
func (r *AccessRequestRepository) GetByID(ctx context.Context, id string) (*model.AccessRequest, error) {
	query := `
		SELECT id, user_id, lesson_id, subject_id, message, status, response, created_at, updated_at
		FROM access_requests
		WHERE id = $1
	`

	var req model.AccessRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.UserID,
		&req.LessonID,
		&req.SubjectID,
		&req.Message,
		&req.Status,
		&req.Response,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get access request: %w", err)
	}

	return &req, nil
}

// StatusesByUser returns the latest known request status per lesson for the
// user. Lessons the user never requested have no entry.
func (r *AccessRequestRepository) StatusesByUser(ctx context.Context, userID string) (map[string]model.RequestStatus, error) {
	query := `
		SELECT DISTINCT ON (lesson_id) lesson_id, status
		FROM access_requests
		WHERE user_id = $1
		ORDER BY lesson_id, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get request statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]model.RequestStatus)
	for rows.Next() {
		var lessonID string
		var status model.RequestStatus
		if err := rows.Scan(&lessonID, &status); err != nil {
			return nil, fmt.Errorf("scan request status: %w", err)
		}
		statuses[lessonID] = status
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request statuses: %w", err)
	}

	return statuses, nil
}

// HasPending checks whether the user already has a pending request for the lesson.
func (r *AccessRequestRepository) HasPending(ctx context.Context, userID, lessonID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM access_requests
			WHERE user_id = $1 AND lesson_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, lessonID, model.RequestStatusPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}

	return exists, nil
}

// GetPending returns all pending requests, oldest first.
func (r *AccessRequestRepository) GetPending(ctx context.Context) ([]*model.AccessRequest, error) {
	query := `
		SELECT id, user_id, lesson_id, subject_id, message, status, response, created_at, updated_at
		FROM access_requests
		WHERE status = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, model.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("get pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.AccessRequest
	for rows.Next() {
		var req model.AccessRequest
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.LessonID,
			&req.SubjectID,
			&req.Message,
			&req.Status,
			&req.Response,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan access request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}

// UpdateStatus moves a request to a new status with the decision response.
func (r *AccessRequestRepository) UpdateStatus(ctx context.Context, id string, status model.RequestStatus, response string) error {
	query := `
		UPDATE access_requests
		SET status = $1, response = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, status, response, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("request not found")
	}

	return nil
}

// DeleteDecidedBefore removes approved/rejected requests older than the cutoff.
func (r *AccessRequestRepository) DeleteDecidedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM access_requests
		WHERE status IN ($1, $2) AND created_at < $3
	`

	result, err := r.pool.Exec(ctx, query, model.RequestStatusApproved, model.RequestStatusRejected, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete decided requests: %w", err)
	}

	return result.RowsAffected(), nil
}
