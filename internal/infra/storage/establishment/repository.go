package establishment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/internal/infra/storage/pgerrors"
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
	"github.com/barberhub/scheduling-service/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"name",
	"slug",
	"owner_id",
	"cancellation_notice_hours",
	"active",
	"plan",
	"subscription_status",
	"subscription_start",
	"renewal_date",
	"payment_method_type",
	"payment_method_last_digits",
	"payment_method_token",
	"billing_history",
	"created_at",
	"updated_at",
}

// Repository persists establishments together with their owned subscription.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new establishment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new establishment. The slug is stored as given; a duplicate
// maps to ErrSlugTaken via the unique constraint.
func (r *Repository) Create(ctx context.Context, est *domain.Establishment) (*domain.Establishment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("establishments").
		Columns(
			"name",
			"slug",
			"owner_id",
			"cancellation_notice_hours",
			"active",
			"plan",
			"subscription_status",
			"subscription_start",
			"renewal_date",
		).
		Values(
			est.Name,
			est.Slug,
			est.OwnerID,
			est.CancellationNoticeHours,
			est.Active,
			est.Subscription.Plan,
			est.Subscription.Status,
			est.Subscription.StartDate,
			est.Subscription.RenewalDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&est.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerrors.IsUniqueViolation(err, "") {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	est.CreatedAt = createdAt.Time
	est.UpdatedAt = updatedAt.Time

	return est, nil
}

// GetByID fetches one establishment by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Establishment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug fetches one establishment by its URL slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Establishment, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Establishment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("establishments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	return scanEstablishment(row)
}

// UpdateSubscriptionStatus flips the subscription status only. Used for
// cancellation (inactive) and trial expiry (pending); the renewal date is
// left untouched.
func (r *Repository) UpdateSubscriptionStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("establishments").
		Set("subscription_status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSubscriptionStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSubscriptionStatus")
}

// RenewSubscription applies a plan change or reactivation: plan, status and
// renewal date move together with the billing-history append in a single
// statement, so history and renewal can never diverge.
func (r *Repository) RenewSubscription(
	ctx context.Context,
	id int64,
	plan domain.Plan,
	status domain.SubscriptionStatus,
	renewalDate time.Time,
	entry domain.BillingEntry,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	entryJSON, err := json.Marshal([]domain.BillingEntry{entry})
	if err != nil {
		return fmt.Errorf("%w: RenewSubscription - marshal billing entry: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("establishments").
		Set("plan", plan).
		Set("subscription_status", status).
		Set("renewal_date", renewalDate).
		Set("billing_history", squirrel.Expr("billing_history || ?::jsonb", string(entryJSON))).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RenewSubscription - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "RenewSubscription")
}

// SetPaymentMethod stores the mocked payment token for the tenant.
func (r *Repository) SetPaymentMethod(ctx context.Context, id int64, pm domain.PaymentMethod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("establishments").
		Set("payment_method_type", pm.Type).
		Set("payment_method_last_digits", pm.LastDigits).
		Set("payment_method_token", pm.ProviderToken).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentMethod - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentMethod")
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
		return ErrEstablishmentNotFound
	}

	return nil
}

func scanEstablishment(row *sql.Row) (*domain.Establishment, error) {
	var est domain.Establishment
	var createdAt, updatedAt sql.NullTime
	var billingHistory []byte

	err := row.Scan(
		&est.ID,
		&est.Name,
		&est.Slug,
		&est.OwnerID,
		&est.CancellationNoticeHours,
		&est.Active,
		&est.Subscription.Plan,
		&est.Subscription.Status,
		&est.Subscription.StartDate,
		&est.Subscription.RenewalDate,
		&est.Subscription.PaymentMethod.Type,
		&est.Subscription.PaymentMethod.LastDigits,
		&est.Subscription.PaymentMethod.ProviderToken,
		&billingHistory,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEstablishmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanEstablishment: %v", ErrScanRow, err)
	}

	if len(billingHistory) > 0 {
		if err := json.Unmarshal(billingHistory, &est.Subscription.BillingHistory); err != nil {
			return nil, fmt.Errorf("%w: scanEstablishment - decode billing history: %v", ErrScanRow, err)
		}
	}

	est.CreatedAt = createdAt.Time
	est.UpdatedAt = updatedAt.Time

	return &est, nil
}
