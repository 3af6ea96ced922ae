package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/internal/infra/storage/pgerrors"
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
	"github.com/barberhub/scheduling-service/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"appointment_history",
	"created_at",
	"updated_at",
}

// Repository persists customers.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new customer repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer. A duplicate email maps to ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, cust *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email", "phone").
		Values(cust.Name, cust.Email, cust.Phone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cust.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerrors.IsUniqueViolation(err, "") {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cust.CreatedAt = createdAt.Time
	cust.UpdatedAt = updatedAt.Time

	return cust, nil
}

// GetByID fetches one customer by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var cust domain.Customer
	var createdAt, updatedAt sql.NullTime
	var history pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cust.ID,
		&cust.Name,
		&cust.Email,
		&cust.Phone,
		&history,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrScanRow, err)
	}

	cust.AppointmentHistory = []int64(history)
	cust.CreatedAt = createdAt.Time
	cust.UpdatedAt = updatedAt.Time

	return &cust, nil
}

// AppendAppointment adds the appointment id to the customer's append-only
// history. Runs in the booking transaction so the log and the appointment
// commit together.
func (r *Repository) AppendAppointment(ctx context.Context, customerID, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("appointment_history", squirrel.Expr("array_append(appointment_history, ?)", appointmentID)).
		Where(squirrel.Eq{"id": customerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AppendAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AppendAppointment - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
