// Package repo holds the errors every storage driver reports in common.
package repo

import "errors"

var (
	ErrDuplicate = errors.New("record already exists")
	ErrNotFound  = errors.New("record not found")
)
