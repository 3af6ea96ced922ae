package professional

import "errors"

var (
	ErrProfessionalNotFound = errors.New("professional storage: professional not found")
	ErrEmailTaken           = errors.New("professional storage: email already registered")
	ErrBuildQuery           = errors.New("professional storage: failed to build query")
	ErrExecQuery            = errors.New("professional storage: failed to execute query")
	ErrScanRow              = errors.New("professional storage: failed to scan row")
)
