// Точка входа Billboard ACP — панели администрирования контента ECAMS Billboard.
// Загружает конфигурацию, подключается к MongoDB, создаёт клиент Image API,
// сервисный слой, вход через Google OAuth2 и страницы ACP,
// запускает topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bigkaa/billboard-acp/internal/api/handlers"
	"github.com/bigkaa/billboard-acp/internal/config"
	"github.com/bigkaa/billboard-acp/internal/database"
	"github.com/bigkaa/billboard-acp/internal/imageclient"
	"github.com/bigkaa/billboard-acp/internal/repository"
	"github.com/bigkaa/billboard-acp/internal/server"
	"github.com/bigkaa/billboard-acp/internal/service"
	"github.com/bigkaa/billboard-acp/internal/ui/auth"
	uihandlers "github.com/bigkaa/billboard-acp/internal/ui/handlers"
	"github.com/bigkaa/billboard-acp/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/billboard-acp/internal/ui/middleware"
)

const (
	// jwksRefreshInterval — период фонового обновления JWKS провайдера.
	jwksRefreshInterval = time.Hour
	// oauthTimeout — таймаут запросов к token endpoint.
	oauthTimeout = 30 * time.Second
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Billboard ACP запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if os.Getenv("ACP_SESSION_SECRET") == "" {
		logger.Warn("ACP_SESSION_SECRET не задан, сессии не сохраняются между рестартами")
	}

	// 3. Подключение к MongoDB и индексы
	ctx := context.Background()
	mongoClient, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn("Ошибка отключения от MongoDB", slog.String("error", err.Error()))
		}
	}()

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := database.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Error("Ошибка создания индексов MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	professorRepo := repository.NewProfessorRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	bannerRepo := repository.NewBannerRepository(db)

	// 5. Клиент Image API
	images, err := imageclient.New(cfg.ImageAPIBaseURI, cfg.ImageAPICACertPath, cfg.ImageAPITimeout, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента Image API", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Клиент Image API создан", slog.String("base_uri", cfg.ImageAPIBaseURI))

	// 6. Services
	userSvc := service.NewUserService(userRepo, logger)
	professorSvc := service.NewProfessorService(professorRepo, logger)
	departmentSvc := service.NewDepartmentService(departmentRepo, logger)
	bannerSvc := service.NewBannerService(bannerRepo, images, cfg.ImageDeleteTimeout, logger)
	identitySvc := service.NewIdentityService(userRepo, logger)

	// 7. topologymetrics — мониторинг зависимостей (Image API + JWKS)
	var depsChecker handlers.ReadinessChecker
	dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthConfig{
		ServiceID:          "billboard-acp",
		Group:              cfg.DephealthGroup,
		ImageAPIURL:        cfg.ImageAPIBaseURI,
		ImageAPIHealthPath: cfg.ImageAPIHealthPath,
		JWKSURL:            cfg.OAuthJWKSURL,
		CheckInterval:      cfg.DephealthCheckInterval,
	}, logger)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
		dephealthSvc = nil
	} else {
		depsChecker = dephealthSvc
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 8. Сессии (AES-256-GCM)
	sessionMgr, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SecureCookies(), cfg.SessionMaxAge)
	if err != nil {
		logger.Error("Ошибка создания Session Manager", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 9. OAuth2-клиент и проверка id_token
	oidcClient := auth.NewOIDCClient(auth.OIDCConfig{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURI:  cfg.OAuthCallbackURI,
		AuthorizeURL: cfg.OAuthAuthorizeURL,
		TokenURL:     cfg.OAuthTokenURL,
		Timeout:      oauthTimeout,
	})

	verifier, err := auth.NewIDTokenVerifier(
		cfg.OAuthJWKSURL,
		cfg.OAuthClientID,
		cfg.OAuthIssuer,
		jwksRefreshInterval,
		logger,
	)
	if err != nil {
		logger.Error("Ошибка создания проверки id_token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Вход через OAuth2 настроен",
		slog.String("jwks_url", cfg.OAuthJWKSURL),
		slog.String("issuer", cfg.OAuthIssuer),
		slog.Bool("secure_cookie", cfg.SecureCookies()),
	)

	// 10. Каталоги переводов и страницы ACP
	catalog, err := i18n.Load(logger)
	if err != nil {
		logger.Error("Ошибка загрузки каталогов переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ui := &server.UIComponents{
		Catalog:  catalog,
		Language: uihandlers.NewLanguageHandler(catalog),
		Guard:    uimiddleware.NewSessionGuard(uimiddleware.NewCookiePrincipalLoader(sessionMgr), logger),
		Pages:    uihandlers.NewPagesHandler(logger),
		Auth:     uihandlers.NewAuthHandler(oidcClient, verifier, identitySvc, sessionMgr, logger),
		Users:    uihandlers.NewUsersHandler(userSvc, logger),
		Professors: uihandlers.NewProfessorsHandler(
			professorSvc, departmentSvc,
			logger,
		),
		Departments: uihandlers.NewDepartmentsHandler(departmentSvc, logger),
		Banners:     uihandlers.NewBannersHandler(bannerSvc, images.ImageURL, logger),
	}

	// 11. Health (MongoDB + зависимости)
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(mongoClient), depsChecker)

	// 12. Создание HTTP-сервера
	srv := server.New(cfg, logger, server.NewRouter(logger, healthHandler, ui))

	// 13. После остановки приёма запросов — дождаться фоновых удалений изображений
	srv.OnShutdown(bannerSvc.Wait)
	if dephealthSvc != nil {
		srv.OnShutdown(func(context.Context) error {
			dephealthSvc.Stop()
			return nil
		})
	}

	// 14. Запуск
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Billboard ACP остановлен")
}
