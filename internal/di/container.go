package di

import (
	"github.com/GoArmGo/ShopCart/internal/adapter/catalog"
	"github.com/GoArmGo/ShopCart/internal/app"
	"github.com/GoArmGo/ShopCart/internal/config"
	"github.com/GoArmGo/ShopCart/internal/database/client"
	"github.com/GoArmGo/ShopCart/internal/database/storage"
	"github.com/GoArmGo/ShopCart/internal/logger"
	"github.com/GoArmGo/ShopCart/internal/rabbitmq"
	"github.com/GoArmGo/ShopCart/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + миграции + GORM)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)
	cartStorage := storage.NewCartStorage(dbClient.Gorm, slogger)
	eventStorage := storage.NewEventStorage(dbClient.DB, slogger)

	// 4. Инициализация клиента внешнего каталога
	catalogClient := catalog.NewAPIClient(cfg)

	// 5. Инициализация RabbitMQ клиента (publisher и consumer в одном)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики (usecases)
	authUseCase := usecase.NewAuthUseCase(userStorage, []byte(cfg.JWTSecret), cfg.TokenTTL, slogger)
	cartUseCase := usecase.NewCartUseCase(cartStorage, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		authUseCase,
		cartUseCase,
		catalogClient,
		rabbitMQClient,
		rabbitMQClient,
		eventStorage,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
