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
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/create_reservation"
	createTableHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/create_table"
	deleteTableHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/delete_table"
	getAvailabilityHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/get_availability"
	getBarReservationsHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/get_bar_reservations"
	getBarSettingsHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/get_bar_settings"
	getGuestReservationsHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/get_guest_reservations"
	getReservationHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/get_reservation"
	listTablesHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/list_tables"
	updateBarSettingsHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/update_bar_settings"
	updateReservationStatusHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/update_reservation_status"
	updateTableHandler "github.com/matchtag/MT-ReservationService/internal/api/handlers/update_table"
	"github.com/matchtag/MT-ReservationService/internal/api/middleware"
	"github.com/matchtag/MT-ReservationService/internal/config"
	availabilityCache "github.com/matchtag/MT-ReservationService/internal/infra/cache/availability"
	reservationRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/reservation"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
	tableRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/table"
	"github.com/matchtag/MT-ReservationService/internal/queue"
	reservationsService "github.com/matchtag/MT-ReservationService/internal/service/reservations"
	settingsService "github.com/matchtag/MT-ReservationService/internal/service/settings"
	tablesService "github.com/matchtag/MT-ReservationService/internal/service/tables"
	createReservationUC "github.com/matchtag/MT-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/matchtag/MT-ReservationService/internal/usecase/get_availability"
	"github.com/matchtag/MT-ReservationService/pkg/dbmetrics"
	"github.com/matchtag/MT-ReservationService/pkg/logger"
	"github.com/matchtag/MT-ReservationService/pkg/metrics"
	"github.com/matchtag/MT-ReservationService/pkg/simpletxmanager"
	"github.com/matchtag/MT-ReservationService/pkg/txmanager"
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

	log.Info("Starting MT-ReservationService...")
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

	// Инициализируем кеш доступности (если включен)
	var availCache *availabilityCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Недоступный Redis не блокирует запуск - работаем без кеша
			log.Warn("Failed to ping redis at %s, availability cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			availCache = availabilityCache.New(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
			defer redisClient.Close()
			log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}

	// Инициализируем публикацию событий (если включена)
	var publisher *queue.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = queue.NewPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			// Недоступный брокер не блокирует запуск - работаем без событий
			log.Warn("Failed to connect to RabbitMQ, events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
			log.Info("Event publisher connected to RabbitMQ")
		}
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		tableRepository       *tableRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		tableRepository = tableRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		tableRepository = tableRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Опциональные зависимости передаются как нетипизированный nil, если выключены,
	// чтобы проверки вида uc.cache != nil внутри usecases работали корректно
	var (
		ucCache             getAvailabilityUC.AvailabilityCache
		ucCacheInvalidator  createReservationUC.CacheInvalidator
		svcCacheInvalidator reservationsService.CacheInvalidator
		ucPublisher         createReservationUC.EventPublisher
		svcPublisher        reservationsService.EventPublisher
	)
	if availCache != nil {
		ucCache = availCache
		ucCacheInvalidator = availCache
		svcCacheInvalidator = availCache
	}
	if publisher != nil {
		ucPublisher = publisher
		svcPublisher = publisher
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		svcPublisher,
		svcCacheInvalidator,
		log,
	)
	tableSvc := tablesService.NewService(tableRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		tableRepository,
		reservationRepository,
		settingsRepository,
		ucCache,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		settingsRepository,
		txMgr,
		ucPublisher,
		ucCacheInvalidator,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationSvc, log)
	getBarReservations := getBarReservationsHandler.NewHandler(reservationSvc, log)
	listTables := listTablesHandler.NewHandler(tableSvc, log)
	createTable := createTableHandler.NewHandler(tableSvc, log)
	updateTable := updateTableHandler.NewHandler(tableSvc, log)
	deleteTable := deleteTableHandler.NewHandler(tableSvc, log)
	getBarSettings := getBarSettingsHandler.NewHandler(settingsSvc, log)
	updateBarSettings := updateBarSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Расчёт доступных слотов
	api.HandleFunc("/bars/{barId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Настройки бронирования бара
	api.HandleFunc("/bars/{barId}/settings", getBarSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для персонала)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/reservations", getGuestReservations.Handle).Methods(http.MethodGet)

	// --- Управление баром (для персонала) ---
	// Список бронирований бара
	protected.HandleFunc("/bars/{barId}/reservations", getBarReservations.Handle).Methods(http.MethodGet)

	// Настройки бронирования
	protected.HandleFunc("/bars/{barId}/settings", updateBarSettings.Handle).Methods(http.MethodPut)

	// Столы
	protected.HandleFunc("/bars/{barId}/tables", listTables.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bars/{barId}/tables", createTable.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bars/{barId}/tables/{tableId}", updateTable.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bars/{barId}/tables/{tableId}", deleteTable.Handle).Methods(http.MethodDelete)

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
