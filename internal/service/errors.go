package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyGranted = errors.New("access already granted")
	ErrRequestPending = errors.New("pending request already exists")
	ErrNotPending     = errors.New("request is not pending")
)
