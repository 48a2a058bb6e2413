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

	createRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_rule"
	deleteRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_rule"
	generateFutureHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/generate_future"
	generateNextMonthHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/generate_next_month"
	getDayScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_day_schedule"
	getWeekScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_week_schedule"
	listRulesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_rules"
	listSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_slots"
	updateRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_rule"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	ruleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	professionalServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/professionalservice"
	"github.com/m04kA/SMC-ScheduleService/internal/jobs"
	generationService "github.com/m04kA/SMC-ScheduleService/internal/service/generation"
	rulesService "github.com/m04kA/SMC-ScheduleService/internal/service/rules"
	generateFutureUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_future"
	generateNextMonthUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_month"
	getDayScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
	getWeekScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_week_schedule"
	listSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/list_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем интеграционного клиента
	profClient := professionalServiceClient.NewClient(
		cfg.ProfessionalService.URL,
		time.Duration(cfg.ProfessionalService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProfessionalService=%s timeout=%ds)",
		cfg.ProfessionalService.URL, cfg.ProfessionalService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		ruleRepository        *ruleRepo.Repository
		slotRepository        *slotRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		ruleRepository = ruleRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	var metricsObserver generationService.MetricsObserver
	if cfg.Metrics.Enabled {
		metricsObserver = metricsCollector
	}
	generationSvc := generationService.NewService(
		ruleRepository,
		slotRepository,
		metricsObserver,
		log,
	)
	rulesSvc := rulesService.NewService(
		ruleRepository,
		slotRepository,
		generationSvc,
		profClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	generateNextMonthUseCase := generateNextMonthUC.NewUseCase(generationSvc, log)
	generateFutureUseCase := generateFutureUC.NewUseCase(generationSvc, log)
	listSlotsUseCase := listSlotsUC.NewUseCase(slotRepository, log)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(appointmentRepository, log)
	getWeekScheduleUseCase := getWeekScheduleUC.NewUseCase(appointmentRepository, log)

	// Инициализируем handlers
	createRule := createRuleHandler.NewHandler(rulesSvc, log)
	listRules := listRulesHandler.NewHandler(rulesSvc, log)
	updateRule := updateRuleHandler.NewHandler(rulesSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(rulesSvc, log)
	generateNextMonth := generateNextMonthHandler.NewHandler(generateNextMonthUseCase, log)
	generateFuture := generateFutureHandler.NewHandler(generateFutureUseCase, log)
	listSlots := listSlotsHandler.NewHandler(listSlotsUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getWeekSchedule := getWeekScheduleHandler.NewHandler(getWeekScheduleUseCase, log)

	// Фоновый планировщик продления горизонта (если включен)
	var horizonExtender *jobs.HorizonExtender
	if cfg.Scheduler.Enabled {
		horizonExtender = jobs.NewHorizonExtender(ruleRepository, generationSvc, log)
		if err := horizonExtender.Start(cfg.Scheduler.CronSpec); err != nil {
			log.Fatal("Failed to start horizon extender: %v", err)
		}
	}

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

	// Материализованные слоты профессионала
	api.HandleFunc("/professionals/{professionalId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// Правила доступности профессионала
	api.HandleFunc("/professionals/{professionalId}/rules", listRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Правила доступности ---
	// Создание правил (разовое или weekday-группа)
	protected.HandleFunc("/professionals/{professionalId}/rules", createRule.Handle).Methods(http.MethodPost)

	// Изменение правила с регенерацией будущих слотов
	protected.HandleFunc("/rules/{ruleId}", updateRule.Handle).Methods(http.MethodPut)

	// Удаление правила вместе с будущими слотами
	protected.HandleFunc("/rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

	// --- Генерация слотов ---
	// Генерация на следующий календарный месяц
	protected.HandleFunc("/professionals/{professionalId}/slots/generate-next-month",
		generateNextMonth.Handle).Methods(http.MethodPost)

	// Генерация на горизонт 1/3/6/12 месяцев
	protected.HandleFunc("/professionals/{professionalId}/slots/generate-future",
		generateFuture.Handle).Methods(http.MethodPost)

	// --- Календарные представления ---
	// Дневное расписание с раскладкой по колонкам
	protected.HandleFunc("/professionals/{professionalId}/schedule/day",
		getDaySchedule.Handle).Methods(http.MethodGet)

	// Недельное расписание с усечением ячеек
	protected.HandleFunc("/professionals/{professionalId}/schedule/week",
		getWeekSchedule.Handle).Methods(http.MethodGet)

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

	// Останавливаем планировщик
	if horizonExtender != nil {
		horizonExtender.Stop()
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
