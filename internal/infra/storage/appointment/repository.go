package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/internal/infra/storage/pgerrors"
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
	"github.com/barberhub/scheduling-service/pkg/psqlbuilder"
	"github.com/barberhub/scheduling-service/pkg/types"
)

const slotUniqueConstraint = "uq_appointments_active_slot"

var selectColumns = []string{
	"id",
	"establishment_id",
	"customer_id",
	"professional_id",
	"service_ids",
	"appointment_date",
	"time_slot",
	"total_duration",
	"total_price",
	"status",
	"rating_score",
	"rating_comment",
	"notifications",
	"created_at",
	"updated_at",
}

// Repository persists appointments. The partial unique index on active
// appointments makes the store, not process memory, the arbiter of slot
// ownership: whichever concurrent insert commits second gets ErrSlotTaken.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new appointment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment in scheduled status. A concurrent insert
// into the same (establishment, professional, date, slot) maps to ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"establishment_id",
			"customer_id",
			"professional_id",
			"service_ids",
			"appointment_date",
			"time_slot",
			"total_duration",
			"total_price",
			"status",
		).
		Values(
			appt.EstablishmentID,
			appt.CustomerID,
			appt.ProfessionalID,
			pq.Array(appt.ServiceIDs),
			appt.Date,
			string(appt.TimeSlot),
			appt.TotalDuration,
			appt.TotalPrice,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerrors.IsUniqueViolation(err, slotUniqueConstraint) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID fetches one appointment by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	return appt, err
}

// ListActiveByProfessionalAndDate returns the professional's slot-occupying
// appointments on the given date. With forUpdate set the rows are locked,
// which pins them for the duration of the booking transaction.
func (r *Repository) ListActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time, forUpdate bool) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"professional_id":  professionalID,
			"appointment_date": date,
			"status":           domain.ActiveStatuses,
		}).
		OrderBy("time_slot ASC")

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByProfessionalAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryMany(ctx, executor, query, args, "ListActiveByProfessionalAndDate")
}

// ListWithFilter returns establishment-scoped appointments narrowed by the
// optional filter fields, newest date first.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"establishment_id": filter.EstablishmentID}).
		OrderBy("appointment_date DESC", "time_slot ASC")

	if filter.ProfessionalID != nil {
		builder = builder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.CustomerID != nil {
		builder = builder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.OnlyActive {
		builder = builder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryMany(ctx, executor, query, args, "ListWithFilter")
}

// UpdateStatus moves the appointment into the target status and, when a
// notification intent accompanies the transition, appends it to the
// notifications log in the same statement.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, notification *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if notification != nil {
		notificationJSON, err := json.Marshal([]domain.Notification{*notification})
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - marshal notification: %v", ErrBuildQuery, err)
		}
		builder = builder.Set("notifications", squirrel.Expr("notifications || ?::jsonb", string(notificationJSON)))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// SetRating stores the customer's one-time rating.
func (r *Repository) SetRating(ctx context.Context, id int64, rating domain.Rating) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("rating_score", rating.Score).
		Set("rating_comment", rating.Comment).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetRating - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetRating")
}

func (r *Repository) queryMany(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return appointments, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInto(s rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime
	var serviceIDs pq.Int64Array
	var timeSlot string
	var ratingScore sql.NullInt64
	var ratingComment sql.NullString
	var notifications []byte

	err := s.Scan(
		&appt.ID,
		&appt.EstablishmentID,
		&appt.CustomerID,
		&appt.ProfessionalID,
		&serviceIDs,
		&appt.Date,
		&timeSlot,
		&appt.TotalDuration,
		&appt.TotalPrice,
		&appt.Status,
		&ratingScore,
		&ratingComment,
		&notifications,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanInto: %v", ErrScanRow, err)
	}

	appt.ServiceIDs = []int64(serviceIDs)
	appt.TimeSlot = types.TimeString(timeSlot)

	if ratingScore.Valid {
		appt.Rating = &domain.Rating{
			Score:   int(ratingScore.Int64),
			Comment: ratingComment.String,
		}
	}

	if len(notifications) > 0 {
		if err := json.Unmarshal(notifications, &appt.Notifications); err != nil {
			return nil, fmt.Errorf("%w: scanInto - decode notifications: %v", ErrScanRow, err)
		}
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
