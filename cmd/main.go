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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAppointmentHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/create_appointment"
	createTechnicianHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/create_technician"
	getAppointmentHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/get_available_slots"
	getServiceUsageHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/get_service_usage"
	listAppointmentsHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/list_appointments"
	listTechniciansHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/list_technicians"
	reconcileTechniciansHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/reconcile_technicians"
	updateAppointmentHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/update_appointment"
	updateTechnicianStatusHandler "github.com/m04kA/SMC-WashScheduler/internal/api/handlers/update_technician_status"
	"github.com/m04kA/SMC-WashScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-WashScheduler/internal/availability"
	"github.com/m04kA/SMC-WashScheduler/internal/config"
	"github.com/m04kA/SMC-WashScheduler/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-WashScheduler/internal/infra/storage/appointment"
	technicianRepo "github.com/m04kA/SMC-WashScheduler/internal/infra/storage/technician"
	appointmentsService "github.com/m04kA/SMC-WashScheduler/internal/service/appointments"
	techniciansService "github.com/m04kA/SMC-WashScheduler/internal/service/technicians"
	createAppointmentUC "github.com/m04kA/SMC-WashScheduler/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-WashScheduler/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/m04kA/SMC-WashScheduler/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
	"github.com/m04kA/SMC-WashScheduler/pkg/logger"
	"github.com/m04kA/SMC-WashScheduler/pkg/metrics"
	"github.com/m04kA/SMC-WashScheduler/pkg/txmanager"
)

// schedulerMetrics метрики, которые пишут use cases
type schedulerMetrics interface {
	ObserveSlotGrid()
	ObserveSelection(outcome string)
	ObserveAdjustment(direction, result string)
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

	log.Info("Starting SMC-WashScheduler...")
	log.Info("Configuration loaded from %s (timezone=%s, slots=%d, cutoff=%dm, strict_slot_claim=%t)",
		configPath, cfg.Scheduling.Timezone, len(cfg.Scheduling.Definitions()),
		cfg.Scheduling.CutoffMinutes, cfg.Scheduling.StrictSlotClaim)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var useCaseMetrics schedulerMetrics = metrics.Nop{}

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		useCaseMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Metrics.Enabled {
		metricsCollector.RegisterDBStats(db, cfg.Database.DBName)
		log.Info("Database pool metrics collection started")
	}

	// Блокировка слотов: redis для нескольких инстансов, иначе в памяти процесса
	var slotLocker lock.Locker
	if cfg.Redis.Enabled {
		redisLock, err := lock.NewRedisLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisLock.Close()
		slotLocker = redisLock
		log.Info("Slot locks stored in redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		slotLocker = lock.NewLocalLock()
		log.Warn("Redis disabled, slot locks are process-local")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db)
	technicianRepository := technicianRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Доменные компоненты
	balancer := workload.NewBalancer(log)
	calculator := availability.NewCalculator(cfg.Scheduling.CutoffLookAhead(), log)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	technicianSvc := techniciansService.NewService(
		technicianRepository,
		appointmentRepository,
		balancer,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		calculator,
		cfg.Scheduling.Definitions(),
		cfg.Scheduling.Location(),
		useCaseMetrics,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		technicianRepository,
		balancer,
		slotLocker,
		txMgr,
		useCaseMetrics,
		createAppointmentUC.Options{
			Location:        cfg.Scheduling.Location(),
			Definitions:     cfg.Scheduling.Definitions(),
			CutoffLookAhead: cfg.Scheduling.CutoffLookAhead(),
			StrictSlotClaim: cfg.Scheduling.StrictSlotClaim,
			LockTTL:         cfg.Scheduling.LockTTL(),
		},
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		technicianRepository,
		balancer,
		txMgr,
		useCaseMetrics,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getServiceUsage := getServiceUsageHandler.NewHandler(appointmentSvc, log)
	listTechnicians := listTechniciansHandler.NewHandler(technicianSvc, log)
	createTechnician := createTechnicianHandler.NewHandler(technicianSvc, log)
	updateTechnicianStatus := updateTechnicianStatusHandler.NewHandler(technicianSvc, log)
	reconcileTechnicians := reconcileTechniciansHandler.NewHandler(technicianSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты ---
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Статичный путь регистрируем раньше шаблона {appointmentId}
	api.HandleFunc("/appointments/service-usage", getServiceUsage.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// --- Мастера ---
	api.HandleFunc("/technicians", listTechnicians.Handle).Methods(http.MethodGet)
	api.HandleFunc("/technicians", createTechnician.Handle).Methods(http.MethodPost)
	api.HandleFunc("/technicians/reconcile", reconcileTechnicians.Handle).Methods(http.MethodPost)
	api.HandleFunc("/technicians/{technicianId}/status", updateTechnicianStatus.Handle).Methods(http.MethodPatch)

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
