package update_visit

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Request модель запроса на изменение визита (полная замена полей)
type Request struct {
	Actor        domain.Actor
	VisitID      int64
	PropertyID   int64
	InterestedID int64
	Date         time.Time
	Slot         types.TimeString
	Notes        *string
}
