package professional

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
	"github.com/barberhub/scheduling-service/pkg/types"
)

var selectColumns = []string{
	"id",
	"establishment_id",
	"name",
	"email",
	"specialties",
	"work_start",
	"work_end",
	"work_weekdays",
	"active",
	"created_at",
	"updated_at",
}

// Repository persists professionals.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new professional repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new professional. A duplicate email maps to ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, prof *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekdays := make([]int64, 0, len(prof.WorkingHours.AvailableWeekdays))
	for _, d := range prof.WorkingHours.AvailableWeekdays {
		weekdays = append(weekdays, int64(d))
	}

	query, args, err := psqlbuilder.Insert("professionals").
		Columns(
			"establishment_id",
			"name",
			"email",
			"specialties",
			"work_start",
			"work_end",
			"work_weekdays",
			"active",
		).
		Values(
			prof.EstablishmentID,
			prof.Name,
			prof.Email,
			pq.Array(prof.Specialties),
			string(prof.WorkingHours.Start),
			string(prof.WorkingHours.End),
			pq.Array(weekdays),
			prof.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&prof.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerrors.IsUniqueViolation(err, "") {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	prof.CreatedAt = createdAt.Time
	prof.UpdatedAt = updatedAt.Time

	return prof, nil
}

// GetByID fetches one professional by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	return scanProfessional(row)
}

// ListByEstablishment returns the tenant's professionals, active ones only
// when onlyActive is set, ordered by name.
func (r *Repository) ListByEstablishment(ctx context.Context, establishmentID int64, onlyActive bool) ([]domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("professionals").
		Where(squirrel.Eq{"establishment_id": establishmentID}).
		OrderBy("name ASC")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEstablishment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEstablishment - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]domain.Professional, 0)
	for rows.Next() {
		prof, err := scanProfessionalRows(rows)
		if err != nil {
			return nil, err
		}
		professionals = append(professionals, *prof)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEstablishment - iterate rows: %v", ErrExecQuery, err)
	}

	return professionals, nil
}

// CountActive returns how many active professionals the tenant currently has.
// Run it inside the same transaction as the insert so the plan quota check
// cannot race a concurrent add.
func (r *Repository) CountActive(ctx context.Context, establishmentID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("professionals").
		Where(squirrel.Eq{
			"establishment_id": establishmentID,
			"active":           true,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - execute select: %v", ErrExecQuery, err)
	}

	return count, nil
}

// Deactivate flips the professional to inactive. The row is never deleted so
// past appointments keep a valid reference.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("professionals").
		Set("active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfessionalNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfessional(row *sql.Row) (*domain.Professional, error) {
	prof, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	return prof, err
}

func scanProfessionalRows(rows *sql.Rows) (*domain.Professional, error) {
	return scanInto(rows)
}

func scanInto(s rowScanner) (*domain.Professional, error) {
	var prof domain.Professional
	var createdAt, updatedAt sql.NullTime
	var workStart, workEnd string
	var specialties pq.StringArray
	var weekdays pq.Int64Array

	err := s.Scan(
		&prof.ID,
		&prof.EstablishmentID,
		&prof.Name,
		&prof.Email,
		&specialties,
		&workStart,
		&workEnd,
		&weekdays,
		&prof.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanInto: %v", ErrScanRow, err)
	}

	prof.Specialties = []string(specialties)
	prof.WorkingHours.Start = types.TimeString(workStart)
	prof.WorkingHours.End = types.TimeString(workEnd)
	prof.WorkingHours.AvailableWeekdays = make([]int, 0, len(weekdays))
	for _, d := range weekdays {
		prof.WorkingHours.AvailableWeekdays = append(prof.WorkingHours.AvailableWeekdays, int(d))
	}
	prof.CreatedAt = createdAt.Time
	prof.UpdatedAt = updatedAt.Time

	return &prof, nil
}
