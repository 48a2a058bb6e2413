package appointment

// Переиспользуем интерфейсы из dbmetrics для работы с БД
import "github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
