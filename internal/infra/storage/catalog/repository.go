package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
	"github.com/barberhub/scheduling-service/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"establishment_id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"category",
	"active",
	"promo_active",
	"promo_price",
	"promo_start",
	"promo_end",
	"promo_description",
	"created_at",
	"updated_at",
}

// Repository persists the service catalog.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new catalog repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new service.
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"establishment_id",
			"name",
			"description",
			"price",
			"duration_minutes",
			"category",
			"active",
		).
		Values(
			svc.EstablishmentID,
			svc.Name,
			svc.Description,
			svc.Price,
			svc.DurationMinutes,
			svc.Category,
			svc.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// GetByID fetches one service by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	svc, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	return svc, err
}

// GetActiveByIDs fetches the requested services, active ones only, in a single
// query. Fewer rows than ids means at least one id is unknown or inactive; the
// caller compares counts.
func (r *Repository) GetActiveByIDs(ctx context.Context, establishmentID int64, ids []int64) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("services").
		Where(squirrel.Eq{
			"id":               ids,
			"establishment_id": establishmentID,
			"active":           true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryMany(ctx, executor, query, args, "GetActiveByIDs")
}

// ListByEstablishment returns the tenant's catalog, active services only when
// onlyActive is set.
func (r *Repository) ListByEstablishment(ctx context.Context, establishmentID int64, onlyActive bool) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("services").
		Where(squirrel.Eq{"establishment_id": establishmentID}).
		OrderBy("name ASC")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEstablishment - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryMany(ctx, executor, query, args, "ListByEstablishment")
}

// SetPromotion attaches a promotion window to the service.
func (r *Repository) SetPromotion(ctx context.Context, serviceID int64, promo domain.Promotion) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("promo_active", promo.Active).
		Set("promo_price", promo.DiscountedPrice).
		Set("promo_start", promo.StartDate).
		Set("promo_end", promo.EndDate).
		Set("promo_description", promo.Description).
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPromotion - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPromotion")
}

// ClearPromotion deactivates the promotion but keeps its window and price on
// the row for auditing.
func (r *Repository) ClearPromotion(ctx context.Context, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("promo_active", false).
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearPromotion - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ClearPromotion")
}

func (r *Repository) queryMany(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]domain.Service, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		svc, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return services, nil
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
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInto(s rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var createdAt, updatedAt sql.NullTime
	var promoActive bool
	var promoPrice sql.NullFloat64
	var promoStart, promoEnd sql.NullTime
	var promoDescription string

	err := s.Scan(
		&svc.ID,
		&svc.EstablishmentID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&svc.DurationMinutes,
		&svc.Category,
		&svc.Active,
		&promoActive,
		&promoPrice,
		&promoStart,
		&promoEnd,
		&promoDescription,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanInto: %v", ErrScanRow, err)
	}

	if promoPrice.Valid {
		svc.Promotion = &domain.Promotion{
			Active:          promoActive,
			DiscountedPrice: promoPrice.Float64,
			StartDate:       promoStart.Time,
			EndDate:         promoEnd.Time,
			Description:     promoDescription,
		}
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}
