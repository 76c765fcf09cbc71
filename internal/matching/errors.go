package matching

import "errors"

// Failure kinds at the matching boundary. None of them is returned by the
// ranking calls; they tag log records and wrapped repository errors.
var (
	ErrRepositoryUnavailable = errors.New("case repository unavailable")
	ErrUnsupportedUserType   = errors.New("unsupported user type")
	ErrEmptyNormalizedQuery  = errors.New("query is empty after normalization")
)
