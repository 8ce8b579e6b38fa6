package domain

import "github.com/m04kA/SMC-VisitScheduler/pkg/types"

// Default calendar configuration values
const (
	DefaultMaxFutureDays            = 30
	DefaultLeadMinutes              = 0
	DefaultMaxActiveVisitsPerClient = 3
	DefaultMaxVisitsPerDay          = 2
	DefaultAgendaDays               = 14
	DefaultMaxAgendaDays            = 31
	DefaultTimezone                 = "America/Santiago"
)

// Default reservation values
const (
	DefaultReservationTTLHours = 72
)

// Business validation constants
const (
	MaxNotesLength             = 500
	MaxNotificationTitleLength = 120
	MaxHolidayLabelLength      = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultSlotCatalog the bookable times of day: mornings 09-13, afternoons 16-18, on the hour
var DefaultSlotCatalog = []types.TimeString{
	"09:00", "10:00", "11:00", "12:00", "13:00",
	"16:00", "17:00", "18:00",
}

// ActiveVisitStatuses statuses counted by the client quotas
var ActiveVisitStatuses = []VisitStatus{
	VisitStatusScheduled,
	VisitStatusConfirmed,
}
