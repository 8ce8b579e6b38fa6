package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/cancel_reservation"
	createHolidayHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/create_holiday"
	createReservationHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/create_reservation"
	createVisitHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/create_visit"
	deleteHolidayHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/delete_holiday"
	getAgendaHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_agenda"
	getAvailableSlotsHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_available_slots"
	getInterestedVisitsHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_interested_visits"
	getReservationHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_reservation"
	getVisitHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_visit"
	listHolidaysHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/list_holidays"
	sweepReservationsHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/sweep_reservations"
	updateVisitHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/update_visit"
	updateVisitStatusHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/update_visit_status"
	validateVisitHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/validate_visit"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/bootstrap"
	"github.com/m04kA/SMC-VisitScheduler/internal/config"
	contractRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/contract"
	holidayRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/holiday"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	reservationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/reservation"
	visitRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/visit"
	holidaysService "github.com/m04kA/SMC-VisitScheduler/internal/service/holidays"
	reservationsService "github.com/m04kA/SMC-VisitScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	visitsService "github.com/m04kA/SMC-VisitScheduler/internal/service/visits"
	cancelReservationUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_reservation"
	createVisitUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_visit"
	getAgendaUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_agenda"
	getAvailableSlotsUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_available_slots"
	sweepExpiredUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/sweep_expired_reservations"
	updateVisitUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/update_visit"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/metrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-VisitScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	calendar, err := cfg.Calendar.ToDomain()
	if err != nil {
		log.Fatal("Invalid calendar config: %v", err)
	}

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := bootstrap.OpenDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts))

	// Уведомления
	notify, closeNotifier, err := bootstrap.NewNotifier(cfg.Notifications, cfg.Metrics.ServiceName, wrappedDB, log)
	if err != nil {
		log.Fatal("Failed to initialize notifications: %v", err)
	}
	defer closeNotifier()

	// Инициализируем репозитории
	visitRepository := visitRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	propertyRepository := propertyRepo.NewRepository(wrappedDB)
	interestedRepository := interestedRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	contractRepository := contractRepo.NewRepository(wrappedDB)

	// Правила календаря и валидатор
	rules := schedule.NewRules(calendar)
	validator := schedule.NewValidator(rules, visitRepository, holidayRepository)

	// Инициализируем сервисы
	visitSvc := visitsService.NewService(
		visitRepository,
		propertyRepository,
		interestedRepository,
		validator,
		notify,
		log,
	)
	holidaySvc := holidaysService.NewService(holidayRepository, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		contractRepository,
		propertyRepository,
		interestedRepository,
		notify,
		calendar.Location,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(visitRepository, rules, log)
	getAgendaUseCase := getAgendaUC.NewUseCase(holidayRepository, visitRepository, rules, log)
	createVisitUseCase := createVisitUC.NewUseCase(
		visitRepository,
		propertyRepository,
		interestedRepository,
		validator,
		visitSvc,
		metricsCollector,
		txMgr,
		log,
	)
	updateVisitUseCase := updateVisitUC.NewUseCase(
		visitRepository,
		propertyRepository,
		interestedRepository,
		validator,
		visitSvc,
		metricsCollector,
		txMgr,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		contractRepository,
		propertyRepository,
		interestedRepository,
		reservationSvc,
		txMgr,
		cfg.Reservations.DefaultTTL(),
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		propertyRepository,
		reservationSvc,
		txMgr,
		log,
	)
	sweepUseCase := sweepExpiredUC.NewUseCase(
		reservationRepository,
		reservationSvc,
		reservationSvc,
		metricsCollector,
		txMgr,
		cfg.Sweep.BatchSize,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAgenda := getAgendaHandler.NewHandler(getAgendaUseCase, log)
	listHolidays := listHolidaysHandler.NewHandler(holidaySvc, log)
	createHoliday := createHolidayHandler.NewHandler(holidaySvc, log)
	deleteHoliday := deleteHolidayHandler.NewHandler(holidaySvc, log)
	createVisit := createVisitHandler.NewHandler(createVisitUseCase, log)
	updateVisit := updateVisitHandler.NewHandler(updateVisitUseCase, log)
	validateVisit := validateVisitHandler.NewHandler(visitSvc, log)
	getVisit := getVisitHandler.NewHandler(visitSvc, log)
	updateVisitStatus := updateVisitStatusHandler.NewHandler(visitSvc, log)
	getInterestedVisits := getInterestedVisitsHandler.NewHandler(visitSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	sweepReservations := sweepReservationsHandler.NewHandler(sweepUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/properties/{propertyId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}/agenda", getAgenda.Handle).Methods(http.MethodGet)
	api.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Визиты ---
	// validate регистрируется раньше {visitId}
	protected.HandleFunc("/visits/validate", validateVisit.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/visits", createVisit.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/visits/{visitId}", getVisit.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId}", updateVisit.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/visits/{visitId}/status", updateVisitStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/interested/{interestedId}/visits", getInterestedVisits.Handle).Methods(http.MethodGet)

	// --- Резервации ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)
	admin.HandleFunc("/holidays", createHoliday.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{date}", deleteHoliday.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/reservations/sweep", sweepReservations.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
