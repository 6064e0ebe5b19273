package model

import "time"

// RequestStatus is the lifecycle state of an access request as seen by the
// requesting user.
type RequestStatus string

const (
	RequestStatusNone     RequestStatus = "none" // no request on record
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// AccessRequest represents a user's request for access to a locked lesson.
// Requests are created with status pending; only the admin decision path
// moves them to approved or rejected.
type AccessRequest struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	LessonID  string        `json:"lesson_id"`
	SubjectID string        `json:"subject_id"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
	Response  string        `json:"response"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`
}

// IsPending checks if request is pending
func (r *AccessRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsApproved checks if request is approved
func (r *AccessRequest) IsApproved() bool {
	return r.Status == RequestStatusApproved
}

// IsRejected checks if request is rejected
func (r *AccessRequest) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
