package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
)

// Коды отказов по резервациям
const (
	CodeReservationConflict = "ReservationConflict"
	CodeContractConflict    = "ContractConflict"
	CodeMissingExpiry       = "MissingExpiry"
	CodeExpiryNotFuture     = "ExpiryNotFuture"
	CodeCancelWindowClosed  = "CancelWindowClosed"
)

type kindInfo struct {
	status  int
	message string
}

var scheduleKinds = map[string]kindInfo{
	schedule.KindOutOfWindow:         {http.StatusUnprocessableEntity, "дата вне окна записи"},
	schedule.KindNonBusinessDay:      {http.StatusUnprocessableEntity, "визиты возможны только в рабочие дни"},
	schedule.KindHoliday:             {http.StatusUnprocessableEntity, "выбранная дата - праздничный день"},
	schedule.KindInvalidSlot:         {http.StatusUnprocessableEntity, "такого временного слота нет"},
	schedule.KindPastOrTooSoon:       {http.StatusUnprocessableEntity, "слот уже прошёл или начинается слишком скоро"},
	schedule.KindSlotTaken:           {http.StatusConflict, "слот уже занят"},
	schedule.KindClientQuotaExceeded: {http.StatusConflict, "у клиента слишком много активных визитов"},
	schedule.KindDailyQuotaExceeded:  {http.StatusConflict, "у клиента уже есть визит в этот день"},
}

var reservationKinds = map[string]kindInfo{
	CodeReservationConflict: {http.StatusConflict, "на объект уже есть активная резервация"},
	CodeContractConflict:    {http.StatusConflict, "на объект есть действующий договор"},
	CodeMissingExpiry:       {http.StatusUnprocessableEntity, "не указан срок резервации"},
	CodeExpiryNotFuture:     {http.StatusUnprocessableEntity, "срок резервации должен быть в будущем"},
	CodeCancelWindowClosed:  {http.StatusUnprocessableEntity, "резервацию уже нельзя отменить"},
}

// RespondScheduleError отвечает на отказ валидатора визитов
// Возвращает false, если err не является отказом валидатора
func RespondScheduleError(w http.ResponseWriter, err error) bool {
	kind, ok := schedule.KindOf(err)
	if !ok {
		return false
	}
	info := scheduleKinds[kind]
	RespondCode(w, info.status, kind, info.message)
	return true
}

// ScheduleMessage текст отказа валидатора для клиента
func ScheduleMessage(kind string) string {
	return scheduleKinds[kind].message
}

// RespondReservationError отвечает отказом по резервации с кодом code
func RespondReservationError(w http.ResponseWriter, code string) {
	info, ok := reservationKinds[code]
	if !ok {
		RespondInternalError(w)
		return
	}
	RespondCode(w, info.status, code, info.message)
}
