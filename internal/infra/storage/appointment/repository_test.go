package appointment

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// stubRow feeds scanInto one row's worth of column values.
type stubRow struct {
	values []interface{}
}

func (r stubRow) Scan(dest ...interface{}) error {
	for i, v := range r.values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func stubValues() []interface{} {
	return []interface{}{
		int64(7),                                // id
		int64(1),                                // establishment_id
		int64(100),                              // customer_id
		int64(10),                               // professional_id
		pq.Int64Array{5, 6},                     // service_ids
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), // appointment_date
		"10:00",                                 // time_slot
		60,                                      // total_duration
		80.0,                                    // total_price
		domain.StatusScheduled,                  // status
		sql.NullInt64{},                         // rating_score
		sql.NullString{},                        // rating_comment
		[]byte(nil),                             // notifications
		sql.NullTime{Time: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Valid: true},
		sql.NullTime{Time: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Valid: true},
	}
}

func TestScanInto_MapsRowToAppointment(t *testing.T) {
	appt, err := scanInto(stubRow{values: stubValues()})
	require.NoError(t, err)
	require.NotNil(t, appt)

	assert.Equal(t, int64(7), appt.ID)
	assert.Equal(t, int64(1), appt.EstablishmentID)
	assert.Equal(t, int64(100), appt.CustomerID)
	assert.Equal(t, int64(10), appt.ProfessionalID)
	assert.Equal(t, []int64{5, 6}, appt.ServiceIDs)
	assert.Equal(t, "10:00", appt.TimeSlot.String())
	assert.Equal(t, 60, appt.TotalDuration)
	assert.InDelta(t, 80.0, appt.TotalPrice, 0.001)
	assert.Equal(t, domain.StatusScheduled, appt.Status)
	assert.Nil(t, appt.Rating)
	assert.Empty(t, appt.Notifications)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), appt.CreatedAt)
}

func TestScanInto_DecodesRatingAndNotifications(t *testing.T) {
	values := stubValues()
	values[10] = sql.NullInt64{Int64: 5, Valid: true}
	values[11] = sql.NullString{String: "great cut", Valid: true}
	values[12] = []byte(`[{"type":"email","status":"sent","sentAt":"2026-03-02T09:00:00Z"}]`)

	appt, err := scanInto(stubRow{values: values})
	require.NoError(t, err)

	require.NotNil(t, appt.Rating)
	assert.Equal(t, 5, appt.Rating.Score)
	assert.Equal(t, "great cut", appt.Rating.Comment)
	require.Len(t, appt.Notifications, 1)
	assert.Equal(t, domain.NotificationEmail, appt.Notifications[0].Type)
}
