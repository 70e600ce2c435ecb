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

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	confirmRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/confirm_request"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	currentRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/current_request"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getEmployeeAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_employee_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_appointment"
	resolveAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/resolve_appointment"
	resolveRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/resolve_request"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/mailer"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	requestsService "github.com/m04kA/SMC-AppointmentService/internal/service/requests"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/worker"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем клиент DirectoryService
	dirClient := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)

	// Инициализируем отправку почты
	var mailSender mailerContract
	if cfg.Mail.Enabled {
		smtpMailer, err := mailer.NewSMTPMailer(
			cfg.Mail.Host,
			cfg.Mail.Port,
			cfg.Mail.Username,
			cfg.Mail.Password,
			cfg.Mail.From,
		)
		if err != nil {
			log.Fatal("Failed to initialize SMTP mailer: %v", err)
		}
		mailSender = smtpMailer
		log.Info("SMTP mailer initialized (host=%s, port=%d)", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		mailSender = mailer.NewNopMailer()
		log.Info("Mail disabled, using nop mailer")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		requestRepository     *requestRepo.Repository
		txMgr                 txManagerContract
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		requestRepository = requestRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		requestRepository = requestRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	idleTimeout := time.Duration(cfg.Booking.RequestIdleTimeoutMinutes) * time.Minute
	reaperInterval := time.Duration(cfg.Booking.ReaperIntervalSeconds) * time.Second

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		dirClient,
		mailSender,
		log,
	)
	requestSvc := requestsService.NewService(
		requestRepository,
		appointmentRepository,
		dirClient,
		txMgr,
		mailSender,
		idleTimeout,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		requestRepository,
		dirClient,
		txMgr,
		mailSender,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		dirClient,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		dirClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	resolveAppointment := resolveAppointmentHandler.NewHandler(appointmentSvc, log)
	getEmployeeAppointments := getEmployeeAppointmentsHandler.NewHandler(appointmentSvc, log)
	currentRequest := currentRequestHandler.NewHandler(requestSvc, log)
	confirmRequest := confirmRequestHandler.NewHandler(requestSvc, log)
	resolveRequest := resolveRequestHandler.NewHandler(requestSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты сотрудника (как есть или нарезанные под услугу)
	api.HandleFunc("/employees/{employeeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Доступные слоты услуги по всем оказывающим её сотрудникам
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (клиентского или self-block)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос бронирования на новый интервал
	protected.HandleFunc("/appointments/{appointmentId}", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Отмена бронирования (soft delete)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Физическое удаление бронирования
	protected.HandleFunc("/appointments/{appointmentId}", cancelAppointment.HandlePurge).Methods(http.MethodDelete)

	// Подтверждение или отклонение одного бронирования
	protected.HandleFunc("/appointments/{appointmentId}/resolve", resolveAppointment.Handle).Methods(http.MethodPost)

	// Бронирования сотрудника с фильтрацией и режимами видимости
	protected.HandleFunc("/employees/{employeeId}/appointments", getEmployeeAppointments.Handle).Methods(http.MethodGet)

	// --- Запросы (корзины бронирований) ---
	// Текущий незавершённый запрос пользователя в компании (get-or-create)
	protected.HandleFunc("/companies/{companyId}/requests/current", currentRequest.Handle).Methods(http.MethodGet)

	// Завершение текущего запроса
	protected.HandleFunc("/companies/{companyId}/requests/current/confirm", confirmRequest.Handle).Methods(http.MethodPost)

	// Принятие или отклонение запроса целиком (каскад на бронирования)
	protected.HandleFunc("/requests/{requestId}/resolve", resolveRequest.Handle).Methods(http.MethodPost)

	// Запускаем чистку брошенных запросов
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	reaper := worker.NewReaper(requestSvc, reaperInterval, log)
	go reaper.Run(reaperCtx)

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

	// Останавливаем чистку запросов
	stopReaper()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
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

// Локальные интерфейсы, чтобы выбирать реализацию по конфигурации
type txManagerContract interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type mailerContract interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}
