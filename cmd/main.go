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

	addCartItemHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/add_cart_item"
	advanceCartStatusHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/advance_cart_status"
	changeCartSlotHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/change_cart_slot"
	createCartHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/create_cart"
	editSlotHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/edit_slot"
	getCartHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/get_cart"
	getNeededQuantitiesHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/get_needed_quantities"
	getPreparationBoardHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/get_preparation_board"
	listDeliveriesHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/list_deliveries"
	removeCartItemHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/remove_cart_item"
	updateCartAnnotationHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/update_cart_annotation"
	"github.com/m04kA/SMC-BasketService/internal/api/middleware"
	"github.com/m04kA/SMC-BasketService/internal/config"
	articleRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/article"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	deliveryRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/delivery"
	slotRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/slot"
	cartsService "github.com/m04kA/SMC-BasketService/internal/service/carts"
	deliveriesService "github.com/m04kA/SMC-BasketService/internal/service/deliveries"
	changeCartSlotUC "github.com/m04kA/SMC-BasketService/internal/usecase/change_cart_slot"
	createCartUC "github.com/m04kA/SMC-BasketService/internal/usecase/create_cart"
	editSlotUC "github.com/m04kA/SMC-BasketService/internal/usecase/edit_slot"
	"github.com/m04kA/SMC-BasketService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BasketService/pkg/logger"
	"github.com/m04kA/SMC-BasketService/pkg/metrics"
	"github.com/m04kA/SMC-BasketService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BasketService/pkg/txmanager"
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

	log.Info("Starting SMC-BasketService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		deliveryRepository *deliveryRepo.Repository
		slotRepository     *slotRepo.Repository
		cartRepository     *cartRepo.Repository
		articleRepository  *articleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		deliveryRepository = deliveryRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		cartRepository = cartRepo.NewRepository(wrappedDB)
		articleRepository = articleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		deliveryRepository = deliveryRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		cartRepository = cartRepo.NewRepository(db)
		articleRepository = articleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	cartsSvc := cartsService.NewService(cartRepository, articleRepository, log)
	deliveriesSvc := deliveriesService.NewService(deliveryRepository, slotRepository, cartRepository, log)

	// Инициализируем use cases
	createCartUseCase := createCartUC.NewUseCase(deliveryRepository, slotRepository, cartRepository, txMgr, log)
	changeCartSlotUseCase := changeCartSlotUC.NewUseCase(cartRepository, slotRepository, deliveryRepository, txMgr, log)
	editSlotUseCase := editSlotUC.NewUseCase(slotRepository, txMgr, log)

	// Инициализируем handlers
	listDeliveries := listDeliveriesHandler.NewHandler(deliveriesSvc, log)
	createCart := createCartHandler.NewHandler(createCartUseCase, log)
	getCart := getCartHandler.NewHandler(cartsSvc, log)
	changeCartSlot := changeCartSlotHandler.NewHandler(changeCartSlotUseCase, log)
	addCartItem := addCartItemHandler.NewHandler(cartsSvc, log)
	removeCartItem := removeCartItemHandler.NewHandler(cartsSvc, log)
	updateCartAnnotation := updateCartAnnotationHandler.NewHandler(cartsSvc, log)
	advanceCartStatus := advanceCartStatusHandler.NewHandler(cartsSvc, log)
	editSlot := editSlotHandler.NewHandler(editSlotUseCase, log)
	getNeededQuantities := getNeededQuantitiesHandler.NewHandler(deliveriesSvc, log)
	getPreparationBoard := getPreparationBoardHandler.NewHandler(deliveriesSvc, log)

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

	// Витрина: предстоящие доставки со слотами и занятостью
	api.HandleFunc("/deliveries", listDeliveries.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Корзины ---
	// Создание корзины в доставке (слот выбирается автоматически)
	protected.HandleFunc("/deliveries/{deliveryId}/carts", createCart.Handle).Methods(http.MethodPost)

	// Получение корзины с позициями и суммой
	protected.HandleFunc("/carts/{cartId}", getCart.Handle).Methods(http.MethodGet)

	// Перенос корзины в другой слот
	protected.HandleFunc("/carts/{cartId}/slot", changeCartSlot.Handle).Methods(http.MethodPatch)

	// Позиции корзины
	protected.HandleFunc("/carts/{cartId}/items", addCartItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/carts/{cartId}/items/{itemId}", removeCartItem.Handle).Methods(http.MethodDelete)

	// Комментарий к корзине
	protected.HandleFunc("/carts/{cartId}/annotation", updateCartAnnotation.Handle).Methods(http.MethodPatch)

	// Действия сборщика над статусом
	protected.HandleFunc("/carts/{cartId}/status", advanceCartStatus.Handle).Methods(http.MethodPatch)

	// --- Администрирование слотов ---
	protected.HandleFunc("/slots/{slotId}", editSlot.Handle).Methods(http.MethodPut)

	// --- Отчеты сборщика ---
	protected.HandleFunc("/deliveries/{deliveryId}/needed-quantities", getNeededQuantities.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/deliveries/{deliveryId}/preparation", getPreparationBoard.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped")
}
