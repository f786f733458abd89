package domain

import "errors"

var (
	ErrEmptyInput = errors.New("please enter a URL")
	ErrNoLink     = errors.New("generate affiliate link first")
	ErrClipboard  = errors.New("clipboard unavailable")
	ErrNotEditing = errors.New("no card is being edited")
	ErrPersist    = errors.New("failed to persist state")
)
