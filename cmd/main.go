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

	adminLoginHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/admin_login"
	cancelAppointmentHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/delete_appointment"
	getAdminCalendarHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/get_admin_calendar"
	getAppointmentHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/get_appointment"
	getDayAvailabilityHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/get_day_availability"
	listAppointmentsHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/list_services"
	lookupAppointmentsHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/lookup_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/LCM-BookingService/internal/api/handlers/reschedule_appointment"
	"github.com/m04kA/LCM-BookingService/internal/api/middleware"
	"github.com/m04kA/LCM-BookingService/internal/config"
	appointmentRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/LCM-BookingService/internal/notify"
	appointmentsService "github.com/m04kA/LCM-BookingService/internal/service/appointments"
	authService "github.com/m04kA/LCM-BookingService/internal/service/auth"
	catalogService "github.com/m04kA/LCM-BookingService/internal/service/catalog"
	remindersService "github.com/m04kA/LCM-BookingService/internal/service/reminders"
	createAppointmentUC "github.com/m04kA/LCM-BookingService/internal/usecase/create_appointment"
	getDayAvailabilityUC "github.com/m04kA/LCM-BookingService/internal/usecase/get_day_availability"
	rescheduleAppointmentUC "github.com/m04kA/LCM-BookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/LCM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LCM-BookingService/pkg/logger"
	"github.com/m04kA/LCM-BookingService/pkg/metrics"
	"github.com/m04kA/LCM-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/LCM-BookingService/pkg/txmanager"
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

	log.Info("Starting LCM-BookingService...")
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

	// Инициализируем отправку уведомлений
	emailSender := notify.NewSMTPSender(cfg.Notify.SMTP.Host, cfg.Notify.SMTP.Port, cfg.Notify.SMTP.From, log)
	smsSender := notify.NewTwilioSender(cfg.Notify.Twilio.AccountSID, cfg.Notify.Twilio.AuthToken,
		cfg.Notify.Twilio.FromPhone, log)
	notifier := notify.NewNotifier(emailSender, smsSender, log)
	log.Info("Notifier initialized (smtp=%v, twilio=%v)",
		cfg.Notify.SMTP.Host != "", cfg.Notify.Twilio.AccountSID != "")

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		customerRepository    *customerRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, notifier, log)
	catalogSvc := catalogService.NewService()
	authSvc := authService.NewService(cfg.Admin.Password, cfg.Admin.JWTSecret, cfg.Admin.TokenTTLHours, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		customerRepository,
		notifier,
		txMgr,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		notifier,
		txMgr,
		log,
	)

	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(appointmentRepository, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	lookupAppointments := lookupAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, cfg.Admin.CookieSecure, log)
	getAdminCalendar := getAdminCalendarHandler.NewHandler(appointmentsSvc, log)

	// Планировщик напоминаний
	var remindersSvc *remindersService.Service
	if cfg.Reminders.Enabled {
		remindersSvc = remindersService.NewService(appointmentRepository, notifier, cfg.Reminders.Spec, log)
		if err := remindersSvc.Start(); err != nil {
			log.Fatal("Failed to start reminders scheduler: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Сетка доступности на день
	api.HandleFunc("/availability", getDayAvailability.Handle).Methods(http.MethodGet)

	// --- Записи ---
	// Создание записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Список записей с фильтрацией
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Поиск записей клиента по контактам
	api.HandleFunc("/appointments/lookup", lookupAppointments.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи
	api.HandleFunc("/appointments/{id}", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	api.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют admin_token cookie)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(authSvc))

	// Календарь администратора
	admin.HandleFunc("/admin/calendar", getAdminCalendar.Handle).Methods(http.MethodGet)

	// Физическое удаление записи
	admin.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)

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

	// Останавливаем планировщик напоминаний
	if remindersSvc != nil {
		remindersSvc.Stop()
	}

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
