package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer storage: customer not found")
	ErrEmailTaken       = errors.New("customer storage: email already registered")
	ErrBuildQuery       = errors.New("customer storage: failed to build query")
	ErrExecQuery        = errors.New("customer storage: failed to execute query")
	ErrScanRow          = errors.New("customer storage: failed to scan row")
)
