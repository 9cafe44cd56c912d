package profile

import "github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения SQL запросов
type DBExecutor = dbmetrics.DBExecutor
