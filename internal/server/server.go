package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"notes-api/internal/api/rest"
	"notes-api/internal/api/rest/middleware"
	"notes-api/internal/config"
	"notes-api/internal/repository/sqlitedb"
	notesService "notes-api/internal/service/notes"
)

// Server представляет HTTP сервер приложения
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
}

// NewServer создает и инициализирует новый экземпляр сервера:
// открывает базу и собирает цепочку Repository → Service → Handler
func NewServer(cfg *config.Config) (*Server, error) {
	httpPort := cfg.Server.PortHTTP
	if httpPort == 0 {
		httpPort = 8080
		log.Printf("Warning: PortHTTP is 0, using default 8080")
	}

	httpAddr := "0.0.0.0:" + strconv.Itoa(httpPort)
	log.Printf("Config loaded: HTTP port=%d, database=%s", httpPort, cfg.Database.URL)

	if !strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.ReleaseMode)
	}

	// Открываем SQLite базу и применяем схему
	db, err := sqlitedb.Open(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Инициализация компонентов (DI): Repository → Service → Handler
	noteRepo := sqlitedb.NewRepository(db)
	log.Println("Initialized SQLite repository")

	// Проверяем доступность базы до старта сервера
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := noteRepo.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	noteSvc := notesService.NewNoteService(noteRepo)
	log.Println("Initialized note service")

	noteHandler := rest.NewHandler(noteSvc)
	engine := rest.NewRouter(noteHandler)
	log.Println("Initialized REST handler")

	// Применение middleware (в порядке выполнения):
	// 1. CORS (обработка CORS заголовков)
	// 2. RequestID (идентификатор запроса для логов)
	// 3. Logging (логирует все запросы)
	// 4. Rate Limiting (ограничивает количество запросов)
	var handler http.Handler = engine
	handler = middleware.RateLimit(handler, cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = setupCORS(cfg.HTTP).Handler(handler)

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.Server.HTTPReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.HTTPWriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.HTTPIdleTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.HTTPReadHeaderTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		cfg:        cfg,
	}, nil
}

// Start запускает HTTP сервер в горутине.
// Возвращает канал ошибок для отслеживания ошибок сервера
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP server listening on %s", s.httpServer.Addr)
		log.Printf("CORS enabled for origins: %s", s.cfg.HTTP.CORSAllowedOrigins)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	log.Println("Starting graceful shutdown...")

	shutdownTimeout := time.Duration(s.cfg.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown timeout, closing server: %v", err)
		return s.httpServer.Close()
	}

	log.Println("HTTP server stopped gracefully")
	return nil
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigHTTP) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	// Убираем пробелы из origins
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}
