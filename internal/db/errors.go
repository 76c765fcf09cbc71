package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrCaseNotFound    = errors.New("case not found")
	ErrDuplicateCaseID = errors.New("case ID already exists")
)
