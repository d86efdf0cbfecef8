package store

import "errors"

var (
	ErrDuplicate         = errors.New("store: duplicate resource")
	ErrUnsupportedDriver = errors.New("store: unsupported history driver")
)
