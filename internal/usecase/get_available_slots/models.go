package get_available_slots

import (
	"time"

	"github.com/barberhub/scheduling-service/pkg/types"
)

// Request identifies the professional and day to inspect.
type Request struct {
	ProfessionalID int64
	Date           time.Time
}

// Response lists the free slots of the day, in chronological order. A day the
// professional does not work yields an empty list, not an error.
type Response struct {
	EstablishmentID int64
	ProfessionalID  int64
	Date            time.Time
	Slots           []types.TimeString
}
