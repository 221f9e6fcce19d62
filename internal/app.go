package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	token_adapter "marketplace-service/internal/adapters/jwt"
	logger_adapter "marketplace-service/internal/adapters/logger"
	openai_adapter "marketplace-service/internal/adapters/openai"
	postgres_adapter "marketplace-service/internal/adapters/postgres"
	rabbitmq_adapter "marketplace-service/internal/adapters/rabbitmq"
	redis_adapter "marketplace-service/internal/adapters/redis"
	"marketplace-service/internal/adapters/rest"
	"marketplace-service/internal/configs"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/usecase"
	fluentlogger "marketplace-service/pkg/fluent_logger"
	"marketplace-service/pkg/postgres"
	"marketplace-service/pkg/rabbitmq/rabbitmq_common"
	"marketplace-service/pkg/rabbitmq/rabbitmq_producer"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	estimateCache *redis_adapter.EstimateCache
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
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

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	if err := application.wire(baseLogger); err != nil {
		application.closeResources()
		return nil, err
	}
	return application, nil
}

// wire поднимает хранилища, внешние клиенты, use cases и HTTP-сервер.
// Уже созданные ресурсы сохраняются в App, чтобы при ошибке их можно было закрыть.
func (a *App) wire(baseLogger port.LoggerPort) error {
	cfg := a.config
	startupCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	// --- 3. POSTGRES ---
	dbPool, err := postgres.NewClient(startupCtx, postgres.Config{DatabaseURL: cfg.Database.URL})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	if cfg.Database.AutoMigrate {
		if err := postgres_adapter.Migrate(startupCtx, dbPool); err != nil {
			a.logger.Error("Failed to apply migrations", err, nil)
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	propertyStorage, err := postgres_adapter.NewPostgresStorageAdapter(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create postgres storage adapter: %w", err)
	}
	userRepo, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create user repository: %w", err)
	}
	favoritesRepo, err := postgres_adapter.NewPostgresFavoritesRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create favorites repository: %w", err)
	}
	inquiryRepo, err := postgres_adapter.NewInquiryRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create inquiry repository: %w", err)
	}
	statsRepo, err := postgres_adapter.NewStatsRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create stats repository: %w", err)
	}
	a.logger.Info("Postgres storage adapters initialized.", nil)

	// --- 4. НЕОБЯЗАТЕЛЬНЫЕ ЗАВИСИМОСТИ ---
	// Интерфейсы остаются nil, если зависимость выключена: use cases это понимают.
	var estimateCache port.EstimateCachePort
	if cfg.Redis.Enabled {
		cache, err := redis_adapter.NewEstimateCache(startupCtx, redis_adapter.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.logger.Error("Failed to connect to Redis", err, nil)
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.estimateCache = cache
		estimateCache = cache
		a.logger.Info("Estimate cache initialized.", port.Fields{"addr": cfg.Redis.Addr})
	}

	var eventPublisher port.EventPublisherPort
	if cfg.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: cfg.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			a.logger.Error("Failed to create connection manager", err, nil)
			return fmt.Errorf("failed to create connection manager: %w", err)
		}
		a.connManager = connManager

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             cfg.RabbitMQ.Exchange,
			ExchangeType:             constants.EventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			a.logger.Error("Failed to create event producer", err, nil)
			return fmt.Errorf("failed to create event producer: %w", err)
		}
		a.eventProducer = producer

		publisher, err := rabbitmq_adapter.NewRabbitMQEventPublisher(producer)
		if err != nil {
			return fmt.Errorf("failed to create event publisher: %w", err)
		}
		eventPublisher = publisher
		a.logger.Info("Event publisher initialized.", port.Fields{"exchange": cfg.RabbitMQ.Exchange})
	}

	var chatCompletion port.ChatCompletionPort
	if cfg.OpenAI.APIKey != "" {
		client, err := openai_adapter.NewChatClient(openai_adapter.Config{
			APIKey:     cfg.OpenAI.APIKey,
			URL:        cfg.OpenAI.URL,
			Model:      cfg.OpenAI.Model,
			MaxRetries: cfg.OpenAI.MaxRetries,
			Timeout:    cfg.OpenAI.Timeout,
		}, baseLogger.WithFields(port.Fields{"component": "openai_client"}))
		if err != nil {
			return fmt.Errorf("failed to create chat client: %w", err)
		}
		chatCompletion = client
		a.logger.Info("Chat completion client initialized.", port.Fields{"model": cfg.OpenAI.Model})
	} else {
		a.logger.Warn("OPENAI_API_KEY is not set, assistant will answer with canned replies", nil)
	}

	tokenService, err := token_adapter.NewTokenService(cfg.Jwt.SECRET_KEY)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	// --- 5. USE CASES ---
	registerUC := usecase.NewRegisterUserUseCase(userRepo, tokenService, cfg.Jwt.TokenTTL)
	loginUC := usecase.NewLoginUserUseCase(userRepo, tokenService, cfg.Jwt.TokenTTL)
	getProfileUC := usecase.NewGetProfileUseCase(userRepo)
	validateTokenUC := usecase.NewValidateTokenUseCase(tokenService)

	searchUC := usecase.NewSearchPropertiesUseCase(propertyStorage)
	listUC := usecase.NewListPropertiesUseCase(propertyStorage)
	getPropertyUC := usecase.NewGetPropertyUseCase(propertyStorage)
	listSellerUC := usecase.NewListSellerPropertiesUseCase(propertyStorage)
	createPropertyUC := usecase.NewCreatePropertyUseCase(propertyStorage, eventPublisher)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(propertyStorage)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(propertyStorage)
	purgePropertyUC := usecase.NewPurgePropertyUseCase(propertyStorage)

	addFavoriteUC := usecase.NewAddToFavoritesUseCase(favoritesRepo, propertyStorage)
	removeFavoriteUC := usecase.NewRemoveFromFavoritesUseCase(favoritesRepo)
	getFavoritesUC := usecase.NewGetUserFavoritesUseCase(favoritesRepo)
	checkFavoriteUC := usecase.NewCheckFavoriteUseCase(favoritesRepo)

	createInquiryUC := usecase.NewCreateInquiryUseCase(inquiryRepo, propertyStorage, eventPublisher)
	receivedInquiriesUC := usecase.NewListReceivedInquiriesUseCase(inquiryRepo)
	sentInquiriesUC := usecase.NewListSentInquiriesUseCase(inquiryRepo)

	estimateValueUC := usecase.NewEstimateValueUseCase(propertyStorage, estimateCache, cfg.Redis.TTL, time.Now)
	estimateLoanUC := usecase.NewEstimateLoanUseCase(estimateCache, cfg.Redis.TTL)
	chatUC := usecase.NewAssistantChatUseCase(chatCompletion, propertyStorage)

	statsUC := usecase.NewGetStatsUseCase(statsRepo)
	a.logger.Info("Use cases initialized.", nil)

	// --- 6. REST API ---
	prefix := cfg.Rest.ImageURLPrefix
	handlers := rest.Handlers{
		Auth:       rest.NewAuthHandlers(registerUC, loginUC, getProfileUC),
		Properties: rest.NewPropertyHandlers(searchUC, listUC, getPropertyUC, listSellerUC, createPropertyUC, updatePropertyUC, deletePropertyUC, prefix),
		Favorites:  rest.NewFavoritesHandlers(addFavoriteUC, removeFavoriteUC, getFavoritesUC, checkFavoriteUC, prefix),
		Inquiries:  rest.NewInquiryHandlers(createInquiryUC, receivedInquiriesUC, sentInquiriesUC),
		Estimates:  rest.NewEstimateHandlers(estimateValueUC, estimateLoanUC),
		Assistant:  rest.NewAssistantHandlers(chatUC),
		Admin:      rest.NewAdminHandlers(listUC, purgePropertyUC, statsUC, prefix),
	}

	router := rest.NewRouter(handlers, rest.NewAuthMiddleware(validateTokenUC), cfg.Rest.CORSAllowedOrigins, baseLogger)
	a.apiServer = rest.NewServer(cfg.Rest.PORT, router, baseLogger)
	a.logger.Info("REST API server configured.", nil)

	return nil
}

// Run запускает HTTP-сервер и ждет сигнала на завершение.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := a.apiServer.Stop(ctx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancel()
		}

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

// closeResources закрывает все, что успело открыться. Порядок обратный созданию.
func (a *App) closeResources() {
	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}

	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing rabbitmq connection", err, nil)
		}
	}

	if a.estimateCache != nil {
		if err := a.estimateCache.Close(); err != nil {
			a.logger.Error("Error closing estimate cache", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
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
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
