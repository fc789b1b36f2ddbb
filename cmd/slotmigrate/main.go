package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-BasketService/internal/config"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	deliveryRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/delivery"
	slotRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/slot"
	migrateSlots "github.com/m04kA/SMC-BasketService/internal/usecase/migrate_slots"
	"github.com/m04kA/SMC-BasketService/pkg/logger"
	"github.com/m04kA/SMC-BasketService/pkg/simpletxmanager"
)

// Версии схемы вокруг миграции данных: слоты появляются во 2-й версии,
// интервальные колонки исчезают в 3-й. Перенос данных выполняется Go-кодом
// между этими двумя шагами, пока обе формы существуют одновременно.
const (
	versionWithBothSchemas = 2
	versionSlotsOnly       = 3
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурации")
	migrationsDir := flag.String("migrations", "migrations", "каталог SQL миграций")
	rollback := flag.Bool("rollback", false, "откатить миграцию слотов")
	flag.Parse()

	cfg, err := config.Load(*configPath)
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

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		log.Fatal("Failed to init migrate driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+*migrationsDir, "postgres", driver)
	if err != nil {
		log.Fatal("Failed to init migrate: %v", err)
	}

	uc := migrateSlots.NewUseCase(
		deliveryRepo.NewRepository(db),
		slotRepo.NewRepository(db),
		cartRepo.NewRepository(db),
		simpletxmanager.NewTransactionManager(db),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *rollback {
		runRollback(ctx, m, uc, log)
		return
	}

	runForward(ctx, m, uc, log)
}

// runForward доводит схему до промежуточной версии (обе формы данных
// существуют), переносит данные в слоты и дочищает интервальные колонки
func runForward(ctx context.Context, m *migrate.Migrate, uc *migrateSlots.UseCase, log *logger.Logger) {
	log.Info("slotmigrate: migrating schema to version %d", versionWithBothSchemas)
	if err := stepTo(m, versionWithBothSchemas); err != nil {
		log.Fatal("slotmigrate: schema migration failed: %v", err)
	}

	report, err := uc.Execute(ctx)
	if err != nil {
		log.Fatal("slotmigrate: data migration failed: %v", err)
	}
	log.Info("slotmigrate: %d deliveries migrated, %d slots created, %d carts moved, %d unattached",
		report.Deliveries, report.SlotsCreated, report.CartsMoved, report.Unattached)

	log.Info("slotmigrate: dropping legacy columns (schema version %d)", versionSlotsOnly)
	if err := stepTo(m, versionSlotsOnly); err != nil {
		log.Fatal("slotmigrate: failed to drop legacy columns: %v", err)
	}

	log.Info("slotmigrate: done")
}

// runRollback возвращает интервальные колонки, восстанавливает в них
// данные из слотов и убирает слоты из схемы
func runRollback(ctx context.Context, m *migrate.Migrate, uc *migrateSlots.UseCase, log *logger.Logger) {
	log.Info("slotmigrate: restoring legacy columns (schema version %d)", versionWithBothSchemas)
	if err := stepTo(m, versionWithBothSchemas); err != nil {
		log.Fatal("slotmigrate: schema rollback failed: %v", err)
	}

	report, err := uc.Rollback(ctx)
	if err != nil {
		log.Fatal("slotmigrate: data rollback failed: %v", err)
	}
	log.Info("slotmigrate: %d deliveries restored, %d slots dropped, %d carts moved",
		report.Deliveries, report.SlotsDropped, report.CartsMoved)

	log.Info("slotmigrate: removing slot schema (version %d)", versionWithBothSchemas-1)
	if err := stepTo(m, versionWithBothSchemas-1); err != nil {
		log.Fatal("slotmigrate: failed to remove slot schema: %v", err)
	}

	log.Info("slotmigrate: done")
}

// stepTo приводит схему к указанной версии; отсутствие изменений не ошибка
func stepTo(m *migrate.Migrate, version uint) error {
	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
