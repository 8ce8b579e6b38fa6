package reservation

import "github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
