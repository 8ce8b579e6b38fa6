package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_available_slots"
)

// FromUseCaseResponse слоты в виде строк "HH:MM"
func FromUseCaseResponse(resp *getAvailableSlots.Response) []string {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
// Отсутствующая или некорректная дата означает запрос всего каталога
func ToUseCaseRequest(propertyIDStr, dateStr string) (*getAvailableSlots.Request, error) {
	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	var date time.Time
	if parsed, err := handlers.ParseDate(dateStr); err == nil {
		date = parsed
	}

	return &getAvailableSlots.Request{
		PropertyID: propertyID,
		Date:       date,
	}, nil
}
