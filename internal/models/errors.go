package models

import (
	"errors"
)

var (
	ErrConfig       = errors.New("configuration error")
	ErrUpstream     = errors.New("upstream request failed")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
