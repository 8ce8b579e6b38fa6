package schedule

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// FreeSlots свободные слоты на дату в каноническом порядке:
// из каталога убираются прошедшие (или слишком близкие) и занятые слоты.
// Пустой результат - не ошибка.
func (r *Rules) FreeSlots(date time.Time, now time.Time, occupied []types.TimeString) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(occupied))
	for _, slot := range occupied {
		taken[slot] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(r.cfg.Slots))
	for _, slot := range r.cfg.Slots {
		if !r.IsNotPast(date, slot, now) {
			continue
		}
		if _, ok := taken[slot]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// Occupancy занятые слоты объекта по датам (ключ - domain.DateFormat)
type Occupancy map[string][]types.TimeString

// NewOccupancy строит индекс занятости по визитам.
// Учитываются визиты в любом статусе, включая отменённые.
func NewOccupancy(visits []*domain.Visit) Occupancy {
	occ := make(Occupancy)
	for _, v := range visits {
		key := v.Date.Format(domain.DateFormat)
		occ[key] = append(occ[key], v.Slot)
	}
	return occ
}

// At занятые слоты на дату
func (o Occupancy) At(date time.Time) []types.TimeString {
	return o[date.Format(domain.DateFormat)]
}
