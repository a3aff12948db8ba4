package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/ShopCart/internal/config"
	"github.com/GoArmGo/ShopCart/internal/core/ports"
	"github.com/GoArmGo/ShopCart/internal/handler"
	"github.com/GoArmGo/ShopCart/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер storefront API
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	authUseCase usecase.AuthUseCase,
	cartUseCase usecase.CartUseCase,
	catalogFetcher usecase.CatalogFetcher,
	cartEventPublisher ports.CartEventPublisher,
) error {
	authHandler := handler.NewAuthHandler(authUseCase, logger)
	cartHandler := handler.NewCartHandler(cartUseCase, cartEventPublisher, logger)
	productHandler := handler.NewProductHandler(catalogFetcher, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", handler.HealthHandler(logger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
	})

	// все маршруты корзины проходят через шлюз авторизации
	r.Route("/cart", func(r chi.Router) {
		r.Use(handler.AuthMiddleware([]byte(cfg.JWTSecret), logger))
		r.Get("/", cartHandler.GetCart)
		r.Post("/", cartHandler.AddItem)
		r.Put("/{id}", cartHandler.UpdateItem)
		r.Delete("/{id}", cartHandler.RemoveItem)
	})

	r.NotFound(handler.NotFoundHandler(logger))

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
