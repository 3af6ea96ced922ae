package appointment

import (
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

type TxExecutor = dbmetrics.TxExecutor
