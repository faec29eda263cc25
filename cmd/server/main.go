package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stream-ledger.backend/internal/config"
	"stream-ledger.backend/internal/infrastructure/models"
	"stream-ledger.backend/internal/infrastructure/repositories"
	"stream-ledger.backend/internal/interfaces/http/handlers"
	"stream-ledger.backend/internal/usecases"
	"stream-ledger.backend/pkg/jwt"
	"stream-ledger.backend/pkg/logger"
	"stream-ledger.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Wallet{},
		&models.LedgerEntry{},
		&models.MediaItem{},
		&models.MediaUnlock{},
		&models.Payment{},
		&models.WithdrawalRequest{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	balanceCache := redis.NewBalanceCache(cfg.Ledger.BalanceCacheTTL)

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	walletRepo := repositories.NewWalletRepository(db, cfg.Ledger.Currency)
	ledgerRepo := repositories.NewLedgerRepository(db)
	mediaRepo := repositories.NewMediaRepository(db)
	unlockRepo := repositories.NewMediaUnlockRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	walletUsecase := usecases.NewWalletUsecase(walletRepo, ledgerRepo, balanceCache, cfg.Ledger.Currency)
	unlockUsecase := usecases.NewUnlockUsecase(mediaRepo, unlockRepo, walletRepo, ledgerRepo, uow, balanceCache, cfg.Ledger.Currency)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, accountRepo, walletRepo, ledgerRepo, uow, balanceCache, cfg.Ledger.Currency)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(withdrawalRepo, walletRepo, ledgerRepo, uow, balanceCache, cfg.Ledger.Currency, cfg.Ledger.MinWithdrawal)

	// Handlers
	deps := routeDeps{
		walletHandler:     handlers.NewWalletHandler(walletUsecase),
		mediaHandler:      handlers.NewMediaHandler(unlockUsecase),
		paymentHandler:    handlers.NewPaymentHandler(paymentUsecase),
		withdrawalHandler: handlers.NewWithdrawalHandler(withdrawalUsecase),
		jwtService:        jwtService,
	}

	r := gin.New()
	registerRoutes(r, deps)

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
