// Пакет server — HTTP-сервер ACP с graceful shutdown.
// Без TLS — TLS termination на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/billboard-acp/internal/api/handlers"
	"github.com/bigkaa/billboard-acp/internal/api/middleware"
	"github.com/bigkaa/billboard-acp/internal/config"
	uihandlers "github.com/bigkaa/billboard-acp/internal/ui/handlers"
	"github.com/bigkaa/billboard-acp/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/billboard-acp/internal/ui/middleware"
	"github.com/bigkaa/billboard-acp/internal/ui/static"
)

// UIComponents — обработчики и middleware страниц ACP.
type UIComponents struct {
	Catalog     *i18n.Catalog
	Guard       *uimiddleware.SessionGuard
	Pages       *uihandlers.PagesHandler
	Auth        *uihandlers.AuthHandler
	Users       *uihandlers.UsersHandler
	Professors  *uihandlers.ProfessorsHandler
	Departments *uihandlers.DepartmentsHandler
	Banners     *uihandlers.BannersHandler
	Language    *uihandlers.LanguageHandler
}

// NewRouter собирает маршруты ACP.
// Защищённые маршруты проходят SessionGuard.Require: без сессии — 403.
func NewRouter(logger *slog.Logger, health *handlers.HealthHandler, ui *UIComponents) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(uimiddleware.Recover(logger))
	router.Use(ui.Catalog.Middleware())
	router.Use(ui.Guard.Session())

	// Health и metrics проверяются Kubernetes и Prometheus напрямую
	router.Get("/health/live", health.HealthLive)
	router.Get("/health/ready", health.HealthReady)
	router.Get("/metrics", health.GetMetrics)

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	// Публичные страницы
	router.Get("/", ui.Pages.HandleHome)
	router.Get("/ping", ui.Pages.HandlePing)
	router.Get("/unauthorized", ui.Pages.HandleUnauthorized)
	router.Get("/lang/{lang}", ui.Language.HandleSetLanguage)

	// Вход и выход
	router.Get("/login", ui.Auth.HandleLogin)
	router.Get("/auth/google/callback", ui.Auth.HandleCallback)
	router.Get("/logout", ui.Auth.HandleLogout)

	// Защищённые маршруты
	router.Group(func(r chi.Router) {
		r.Use(ui.Guard.Require())

		r.Get("/protected", ui.Pages.HandleProtected)

		r.Route("/users", func(r chi.Router) {
			r.Get("/manage", ui.Users.HandleManage)
			r.Get("/add", ui.Users.HandleAddForm)
			r.Post("/add", ui.Users.HandleAdd)
			r.Get("/edit/{id}", ui.Users.HandleEditForm)
			r.Post("/edit", ui.Users.HandleEdit)
			r.Get("/delete/{id}", ui.Users.HandleDelete)
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/manage", ui.Professors.HandleManage)
			r.Get("/add", ui.Professors.HandleAddForm)
			r.Post("/add", ui.Professors.HandleAdd)
			r.Get("/edit/{id}", ui.Professors.HandleEditForm)
			r.Post("/edit", ui.Professors.HandleEdit)
			r.Get("/delete/{id}", ui.Professors.HandleDelete)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/manage", ui.Departments.HandleManage)
			r.Get("/add", ui.Departments.HandleAddForm)
			r.Post("/add", ui.Departments.HandleAdd)
			r.Get("/edit/{id}", ui.Departments.HandleEditForm)
			r.Post("/edit", ui.Departments.HandleEdit)
			r.Get("/delete/{id}", ui.Departments.HandleDelete)
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/manage", ui.Banners.HandleManage)
			r.Get("/add", ui.Banners.HandleAddForm)
			r.Post("/add", ui.Banners.HandleAdd)
			r.Get("/edit/{id}", ui.Banners.HandleEditForm)
			r.Post("/edit", ui.Banners.HandleEdit)
			r.Get("/delete/{id}", ui.Banners.HandleDelete)
		})
	})

	// Всё остальное, включая неподдерживаемые методы, — страница 404
	router.NotFound(ui.Pages.HandleNotFound)
	router.MethodNotAllowed(ui.Pages.HandleNotFound)

	return router
}

// Server — HTTP-сервер ACP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
	// onShutdown — действия после остановки HTTP-сервера (в пределах ShutdownTimeout).
	onShutdown []func(ctx context.Context) error
}

// New создаёт новый HTTP-сервер.
func New(cfg *config.Config, logger *slog.Logger, handler http.Handler) *Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger.With(slog.String("component", "server")),
		cfg:        cfg,
	}
}

// OnShutdown регистрирует действие, выполняемое после остановки приёма запросов.
func (s *Server) OnShutdown(fn func(ctx context.Context) error) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	return s.Shutdown()
}

// Shutdown останавливает сервер и выполняет действия OnShutdown.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	for _, fn := range s.onShutdown {
		if err := fn(ctx); err != nil {
			s.logger.Warn("Ошибка завершения фоновой задачи", slog.String("error", err.Error()))
		}
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
