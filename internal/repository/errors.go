package repository

import "errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrStaleState = errors.New("record changed concurrently")
	ErrOverlap    = errors.New("overlapping interview")
	ErrExpired    = errors.New("record expired")
)
