package establishment

import "errors"

var (
	// ErrEstablishmentNotFound is returned when the establishment does not exist
	ErrEstablishmentNotFound = errors.New("establishment.repository: establishment not found")

	// ErrSlugTaken is returned when the URL slug is already in use by another tenant
	ErrSlugTaken = errors.New("establishment.repository: slug already in use")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("establishment.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("establishment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("establishment.repository: failed to scan row")
)
