package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	addLotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/add_lot"
	adminStatsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/admin_stats"
	adminUsersHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/admin_users"
	assignOperatorHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/assign_operator"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	checkInBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_in_booking"
	completeBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createPaymentOrderHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_payment_order"
	createWalkInBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_walk_in_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getLotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_lot"
	getLotBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_lot_bookings"
	getMyBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_my_bookings"
	initializeSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/initialize_slots"
	listLotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_lots"
	meHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/me"
	payOrderHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/pay_order"
	setupProfileHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/setup_profile"
	verifyPaymentHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/verify_payment"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	lotsCache "github.com/m04kA/SMC-ParkingService/internal/infra/cache/lots"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
	operatorRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/operator"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocator"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	lotsService "github.com/m04kA/SMC-ParkingService/internal/service/lots"
	paymentsService "github.com/m04kA/SMC-ParkingService/internal/service/payments"
	profilesService "github.com/m04kA/SMC-ParkingService/internal/service/profiles"
	"github.com/m04kA/SMC-ParkingService/internal/service/reconciler"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ParkingService/internal/worker/sweeper"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

type eventPublisher interface {
	createBookingUC.EventPublisher
	Close() error
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Close()
	defer db.Close()

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", cfgPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Metrics enabled at %s, database metrics collection started", cfg.Metrics.Path)
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Внешние зависимости
	cache, closeCache, err := newListCache(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeCache()

	publisher := newPublisher(cfg.Kafka, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	verifier, err := newVerifier(cfg.Auth, log)
	if err != nil {
		return err
	}

	gateway, err := newGateway(cfg.Payments, log)
	if err != nil {
		return err
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	lotRepository := lotRepo.NewRepository(wrappedDB)
	operatorRepository := operatorRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы и use cases
	syncer := reconciler.New(
		lotRepository,
		bookingRepository,
		cache,
		metricsCollector,
		reconciler.Config{
			MaxRetries: cfg.Reconciler.MaxRetries,
			Timeout:    cfg.Reconciler.ReconcileTimeout(),
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(lotRepository, bookingRepository, log)
	slotAllocator := allocator.NewAllocator(getAvailableSlotsUseCase, metricsCollector, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		lotRepository,
		operatorRepository,
		slotAllocator,
		syncer,
		publisher,
		txMgr,
		metricsCollector,
		cfg.Booking.MaxDurationHours,
		log,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		lotRepository,
		operatorRepository,
		syncer,
		publisher,
		log,
	)
	lotSvc := lotsService.NewService(
		lotRepository,
		bookingRepository,
		operatorRepository,
		profileRepository,
		cache,
		txMgr,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		gateway,
		bookingSvc,
		cfg.Payments.Currency,
		log,
	)
	profileSvc := profilesService.NewService(
		profileRepository,
		lotRepository,
		bookingRepository,
		log,
	)

	// Периодическая сверка кэша занятости
	var sweep *sweeper.Sweeper
	if interval := cfg.Reconciler.SweepEvery(); interval > 0 {
		sweep, err = sweeper.New(syncer, interval, cfg.Reconciler.ReconcileTimeout(), log)
		if err != nil {
			return fmt.Errorf("create sweeper: %w", err)
		}
		if err := sweep.Start(); err != nil {
			return fmt.Errorf("start sweeper: %w", err)
		}
		log.Info("Occupancy sweeper started (interval=%s)", interval)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/lots", listLotsHandler.NewHandler(lotSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}", getLotHandler.NewHandler(lotSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/available-slots",
		getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, profileSvc, log))

	// --- Парковки (администрирование) ---
	protected.HandleFunc("/lots", addLotHandler.NewHandler(lotSvc, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lots/{lotId}/slots/initialize",
		initializeSlotsHandler.NewHandler(lotSvc, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lots/{lotId}/operators",
		assignOperatorHandler.NewHandler(lotSvc, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lots/{lotId}/bookings",
		getLotBookingsHandler.NewHandler(bookingSvc, log).Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings",
		createBookingHandler.NewHandler(createBookingUseCase, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/walk-in",
		createWalkInBookingHandler.NewHandler(createBookingUseCase, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}",
		getBookingHandler.NewHandler(bookingSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel",
		cancelBookingHandler.NewHandler(bookingSvc, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete",
		completeBookingHandler.NewHandler(bookingSvc, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/check-in",
		checkInBookingHandler.NewHandler(bookingSvc, log).Handle).Methods(http.MethodPost)

	// --- Профиль ---
	protected.HandleFunc("/me", meHandler.NewHandler(profileSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/profile", setupProfileHandler.NewHandler(profileSvc, log).Handle).Methods(http.MethodPut)
	protected.HandleFunc("/me/bookings", getMyBookingsHandler.NewHandler(bookingSvc, log).Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments/orders",
		createPaymentOrderHandler.NewHandler(paymentSvc, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/orders/{orderId}/pay",
		payOrderHandler.NewHandler(paymentSvc, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/orders/{orderId}/verify",
		verifyPaymentHandler.NewHandler(paymentSvc, log).Handle).Methods(http.MethodPost)

	// --- Администрирование ---
	protected.HandleFunc("/admin/stats", adminStatsHandler.NewHandler(profileSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users", adminUsersHandler.NewHandler(profileSvc, log).Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sweep != nil {
		if err := sweep.Stop(); err != nil {
			log.Error("Failed to stop sweeper: %v", err)
		}
	}

	// Дожидаемся фоновых синхронизаций, запущенных запросами
	syncer.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
	return nil
}

func newListCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (lotsService.ListCache, func(), error) {
	if !cfg.Enabled {
		log.Info("Redis disabled, lot list is not cached")
		return lotsCache.Nop{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	log.Info("Redis lot list cache enabled (addr=%s, ttl=%ds)", cfg.Addr, cfg.ListTTL)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
	return lotsCache.NewCache(client, time.Duration(cfg.ListTTL)*time.Second), closeFn, nil
}

func newPublisher(cfg config.KafkaConfig, log *logger.Logger) eventPublisher {
	if !cfg.Enabled {
		log.Info("Kafka disabled, booking events are not published")
		return events.Nop{}
	}

	log.Info("Booking events published to kafka (brokers=%v, topic=%s)", cfg.Brokers, cfg.Topic)
	return events.NewProducer(cfg.Brokers, cfg.Topic)
}

func newVerifier(cfg config.AuthConfig, log *logger.Logger) (middleware.TokenVerifier, error) {
	switch cfg.Provider {
	case config.AuthProviderJWT:
		log.Info("Bearer tokens verified locally (HS256)")
		return identity.NewJWTVerifier(cfg.JWTSecret), nil
	case config.AuthProviderRemote:
		log.Info("Bearer tokens verified by identity provider %s (timeout=%ds)", cfg.URL, cfg.Timeout)
		return identity.NewClient(cfg.URL, cfg.APIKey, time.Duration(cfg.Timeout)*time.Second, log), nil
	default:
		return nil, fmt.Errorf("%w: unknown auth provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}

func newGateway(cfg config.PaymentsConfig, log *logger.Logger) (paymentsService.Gateway, error) {
	switch cfg.Provider {
	case config.PaymentProviderMock:
		log.Info("Payments settled by the in-process mock gateway")
		return payment.NewMockGateway(), nil
	case config.PaymentProviderStripe:
		log.Info("Payments settled through Stripe PaymentIntents")
		return payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripePaymentMethod), nil
	default:
		return nil, fmt.Errorf("%w: unknown payment provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}
