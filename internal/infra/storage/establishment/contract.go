package establishment

import (
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works both with
// the plain *sql.DB and the metrics wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
