package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrQueueFull         = errors.New("message queue is full")
	ErrMessageNotFound   = errors.New("message not found")
	ErrTokenNotFound     = errors.New("continuation token not found")
	ErrSnapshotNotFound  = errors.New("mailbox snapshot not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid agent status transition")
)
