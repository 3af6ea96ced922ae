package list_invoices

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	ListInvoices(ctx context.Context, establishmentID int64, actor models.Actor) (*models.InvoiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
