package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/warehouse-backend/internal/config"
	"github.com/rocketscienceinc/warehouse-backend/internal/repository"
	"github.com/rocketscienceinc/warehouse-backend/internal/repository/storage"
	"github.com/rocketscienceinc/warehouse-backend/internal/service"
	"github.com/rocketscienceinc/warehouse-backend/internal/usecase"
	"github.com/rocketscienceinc/warehouse-backend/transport/rest"
	"github.com/rocketscienceinc/warehouse-backend/transport/websocket"
)

// RunApp - runs the application until a signal arrives or a server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gameRepo, locker, closeStorage, err := initStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	log.Info("Storage ready", "driver", conf.Storage.Driver, "gameTTL", conf.Storage.GameTTL)

	gameService := service.NewGameService(gameRepo)
	gamePlayService := service.NewGamePlayService(logger.With("component", "gameplay"), gameService, locker)
	gameUseCase := usecase.NewGameUseCase(gameService, gamePlayService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger, rest.NewGameHandlers(logger.With("component", "rest"), gameUseCase))
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, router); httpErr != nil {
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger.With("component", "websocket"), gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initStorage - picks the game repository and locker for the configured driver.
func initStorage(ctx context.Context, conf *config.Config) (repository.GameRepository, repository.Locker, func() error, error) {
	if conf.Storage.Driver == config.DriverMemory {
		return repository.NewMemoryGameRepository(conf.Storage.GameTTL), repository.NewLocalLocker(), func() error { return nil }, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.Host, conf.Redis.Port)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Storage.GameTTL)
	locker := repository.NewRedisLocker(redisStorage.Connection, conf.Redis.LockExpiry)

	return gameRepo, locker, redisStorage.Close, nil
}
