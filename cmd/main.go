package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addProfessionalHandler "github.com/barberhub/scheduling-service/internal/api/handlers/add_professional"
	bookAppointmentHandler "github.com/barberhub/scheduling-service/internal/api/handlers/book_appointment"
	cancelSubscriptionHandler "github.com/barberhub/scheduling-service/internal/api/handlers/cancel_subscription"
	changePlanHandler "github.com/barberhub/scheduling-service/internal/api/handlers/change_plan"
	createEstablishmentHandler "github.com/barberhub/scheduling-service/internal/api/handlers/create_establishment"
	createPromotionHandler "github.com/barberhub/scheduling-service/internal/api/handlers/create_promotion"
	createServiceHandler "github.com/barberhub/scheduling-service/internal/api/handlers/create_service"
	endPromotionHandler "github.com/barberhub/scheduling-service/internal/api/handlers/end_promotion"
	getAppointmentHandler "github.com/barberhub/scheduling-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/barberhub/scheduling-service/internal/api/handlers/get_available_slots"
	getEstablishmentHandler "github.com/barberhub/scheduling-service/internal/api/handlers/get_establishment"
	getSubscriptionHandler "github.com/barberhub/scheduling-service/internal/api/handlers/get_subscription"
	listAppointmentsHandler "github.com/barberhub/scheduling-service/internal/api/handlers/list_appointments"
	listInvoicesHandler "github.com/barberhub/scheduling-service/internal/api/handlers/list_invoices"
	listProfessionalsHandler "github.com/barberhub/scheduling-service/internal/api/handlers/list_professionals"
	rateAppointmentHandler "github.com/barberhub/scheduling-service/internal/api/handlers/rate_appointment"
	reactivateSubscriptionHandler "github.com/barberhub/scheduling-service/internal/api/handlers/reactivate_subscription"
	removeProfessionalHandler "github.com/barberhub/scheduling-service/internal/api/handlers/remove_professional"
	transitionAppointmentHandler "github.com/barberhub/scheduling-service/internal/api/handlers/transition_appointment"
	updatePaymentMethodHandler "github.com/barberhub/scheduling-service/internal/api/handlers/update_payment_method"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/config"
	appointmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/appointment"
	catalogRepo "github.com/barberhub/scheduling-service/internal/infra/storage/catalog"
	customerRepo "github.com/barberhub/scheduling-service/internal/infra/storage/customer"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	authServiceClient "github.com/barberhub/scheduling-service/internal/integrations/authservice"
	appointmentsService "github.com/barberhub/scheduling-service/internal/service/appointments"
	catalogService "github.com/barberhub/scheduling-service/internal/service/catalog"
	establishmentsService "github.com/barberhub/scheduling-service/internal/service/establishments"
	staffService "github.com/barberhub/scheduling-service/internal/service/staff"
	subscriptionsService "github.com/barberhub/scheduling-service/internal/service/subscriptions"
	bookAppointmentUC "github.com/barberhub/scheduling-service/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/barberhub/scheduling-service/internal/usecase/get_available_slots"
	"github.com/barberhub/scheduling-service/migrations"
	"github.com/barberhub/scheduling-service/pkg/dbmetrics"
	"github.com/barberhub/scheduling-service/pkg/logger"
	"github.com/barberhub/scheduling-service/pkg/metrics"
	"github.com/barberhub/scheduling-service/pkg/simpletxmanager"
	"github.com/barberhub/scheduling-service/pkg/txmanager"
)

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics collector initialized (service=%s)", cfg.Metrics.ServiceName)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := runMigrations(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	log.Info("Auth service client initialized (url=%s)", cfg.AuthService.URL)

	// Repositories accept either the raw pool or the metrics wrapper.
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var (
		executor dbmetrics.DBExecutor = db
		txMgr    TxManager            = simpletxmanager.NewTransactionManager(db)
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	appointmentRepository := appointmentRepo.NewRepository(executor)
	establishmentRepository := establishmentRepo.NewRepository(executor)
	professionalRepository := professionalRepo.NewRepository(executor)
	customerRepository := customerRepo.NewRepository(executor)
	catalogRepository := catalogRepo.NewRepository(executor)

	appointmentsSvc := appointmentsService.NewService(appointmentRepository, establishmentRepository, log)
	establishmentsSvc := establishmentsService.NewService(establishmentRepository, catalogRepository, professionalRepository, log)
	subscriptionsSvc := subscriptionsService.NewService(establishmentRepository, professionalRepository, log)
	staffSvc := staffService.NewService(professionalRepository, establishmentRepository, appointmentRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, establishmentRepository, log)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		establishmentRepository,
		professionalRepository,
		customerRepository,
		catalogRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		establishmentRepository,
		professionalRepository,
		log,
	)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getEstablishment := getEstablishmentHandler.NewHandler(establishmentsSvc, log)
	createEstablishment := createEstablishmentHandler.NewHandler(establishmentsSvc, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(appointmentsSvc, log)
	rateAppointment := rateAppointmentHandler.NewHandler(appointmentsSvc, log)
	addProfessional := addProfessionalHandler.NewHandler(staffSvc, log)
	removeProfessional := removeProfessionalHandler.NewHandler(staffSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(staffSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	createPromotion := createPromotionHandler.NewHandler(catalogSvc, log)
	endPromotion := endPromotionHandler.NewHandler(catalogSvc, log)
	getSubscription := getSubscriptionHandler.NewHandler(subscriptionsSvc, log)
	changePlan := changePlanHandler.NewHandler(subscriptionsSvc, log)
	updatePaymentMethod := updatePaymentMethodHandler.NewHandler(subscriptionsSvc, log)
	cancelSubscription := cancelSubscriptionHandler.NewHandler(subscriptionsSvc, log)
	reactivateSubscription := reactivateSubscriptionHandler.NewHandler(subscriptionsSvc, log)
	listInvoices := listInvoicesHandler.NewHandler(subscriptionsSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/establishments/{establishmentId:[0-9]+}",
		getEstablishment.HandleByID).Methods(http.MethodGet)
	api.HandleFunc("/establishments",
		getEstablishment.HandleBySlug).Methods(http.MethodGet)

	// Protected routes, Bearer token verified against the auth service
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.NewAuth(authClient, log))

	protected.HandleFunc("/establishments",
		createEstablishment.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/appointments",
		bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}",
		getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		transitionAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/rating",
		rateAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/establishments/{establishmentId}/appointments",
		listAppointments.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/establishments/{establishmentId}/professionals",
		addProfessional.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/establishments/{establishmentId}/professionals",
		listProfessionals.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/establishments/{establishmentId}/professionals/{professionalId}",
		removeProfessional.Handle).Methods(http.MethodDelete)

	protected.HandleFunc("/establishments/{establishmentId}/services",
		createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}/promotion",
		createPromotion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}/promotion",
		endPromotion.Handle).Methods(http.MethodDelete)

	protected.HandleFunc("/establishments/{establishmentId}/subscription",
		getSubscription.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/establishments/{establishmentId}/subscription/plan",
		changePlan.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/establishments/{establishmentId}/subscription/payment-method",
		updatePaymentMethod.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/establishments/{establishmentId}/subscription/cancel",
		cancelSubscription.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/establishments/{establishmentId}/subscription/reactivate",
		reactivateSubscription.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/establishments/{establishmentId}/subscription/invoices",
		listInvoices.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
