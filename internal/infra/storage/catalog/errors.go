package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("catalog storage: service not found")
	ErrBuildQuery      = errors.New("catalog storage: failed to build query")
	ErrExecQuery       = errors.New("catalog storage: failed to execute query")
	ErrScanRow         = errors.New("catalog storage: failed to scan row")
)
