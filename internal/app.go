package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"real-estate-catalog/internal/adapters/filestorage"
	logger_adapter "real-estate-catalog/internal/adapters/logger"
	"real-estate-catalog/internal/adapters/mongodb"
	"real-estate-catalog/internal/adapters/rest"
	"real-estate-catalog/internal/configs"
	"real-estate-catalog/internal/core/port"
	"real-estate-catalog/internal/core/usecase"
	fluentlogger "real-estate-catalog/pkg/fluentlogger"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	config      *configs.AppConfig
	mongoClient *mongo.Client
	apiServer   *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИНИЦИАЛИЗАЦИЯ НИЗКОУРОВНЕВЫХ ЗАВИСИМОСТЕЙ ---
	mongoClient, err := mongodb.NewClient(context.Background(), mongodb.Config{URL: appConfig.Mongo.URL})
	if err != nil {
		appLogger.Error("Failed to connect to MongoDB", err, nil)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	appLogger.Info("Successfully connected to MongoDB!", nil)

	propertyRepository, err := mongodb.NewMongoPropertyRepository(mongoClient, appConfig.Mongo.Database, appConfig.Mongo.Collection)
	if err != nil {
		appLogger.Error("Failed to create mongo property repository", err, nil)
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create mongo property repository: %w", err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(appConfig.Storage.RootDir)
	if err != nil {
		appLogger.Error("Failed to create file storage", err, nil)
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create file storage: %w", err)
	}
	appLogger.Info("All persistence adapters initialized.", nil)

	// --- 4. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	listPropertiesUseCase := usecase.NewListPropertiesUseCase(propertyRepository)
	getPropertyUseCase := usecase.NewGetPropertyUseCase(propertyRepository)
	createPropertyUseCase := usecase.NewCreatePropertyUseCase(propertyRepository, fileStorage)
	deletePropertyUseCase := usecase.NewDeletePropertyUseCase(propertyRepository, fileStorage)

	// --- 5. REST API Server ---
	apiHandlers := rest.NewPropertyHandler(
		listPropertiesUseCase,
		getPropertyUseCase,
		createPropertyUseCase,
		deletePropertyUseCase,
		appConfig.Rest.PublicBaseURL,
	)
	apiServer := rest.NewServer(appConfig.Rest.PORT, appConfig.Storage.RootDir, apiHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:      appConfig,
		mongoClient: mongoClient,
		apiServer:   apiServer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.mongoClient != nil {
			if err := a.mongoClient.Disconnect(context.Background()); err != nil {
				a.logger.Error("Error during MongoDB disconnect", err, nil)
			} else {
				a.logger.Info("MongoDB client closed.", nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
