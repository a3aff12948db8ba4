package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ShopCart/internal/config"
	"github.com/GoArmGo/ShopCart/internal/core/ports"
	"github.com/GoArmGo/ShopCart/internal/database/client"
	"github.com/GoArmGo/ShopCart/internal/usecase"
)

type App struct {
	Config             *config.Config
	logger             *slog.Logger
	dbClient           *client.Client
	authUseCase        usecase.AuthUseCase
	cartUseCase        usecase.CartUseCase
	catalogFetcher     usecase.CatalogFetcher
	cartEventPublisher ports.CartEventPublisher
	cartEventConsumer  ports.CartEventConsumer
	eventStorage       ports.CartEventStorage
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	authUseCase usecase.AuthUseCase,
	cartUseCase usecase.CartUseCase,
	catalogFetcher usecase.CatalogFetcher,
	cartEventPublisher ports.CartEventPublisher,
	cartEventConsumer ports.CartEventConsumer,
	eventStorage ports.CartEventStorage,
) *App {
	return &App{
		Config:             cfg,
		logger:             logger,
		dbClient:           dbClient,
		authUseCase:        authUseCase,
		cartUseCase:        cartUseCase,
		catalogFetcher:     catalogFetcher,
		cartEventPublisher: cartEventPublisher,
		cartEventConsumer:  cartEventConsumer,
		eventStorage:       eventStorage,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.authUseCase, a.cartUseCase, a.catalogFetcher, a.cartEventPublisher)

	case "worker":
		err = runWorker(ctx, a.logger, a.cartEventConsumer, a.eventStorage)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	a.logger.Info("shutting down")

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("stopped gracefully")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	// если publisher/consumer имеют методы Close — вызываем их
	if closer, ok := a.cartEventPublisher.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
