package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"briefy/internal/logger"
	"briefy/internal/services"
)

// Pinger checks AI connectivity. *client.Gateway satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Addr        string
	Origins     []string
	JWTSecret   string
	ServiceName string
	// FontPath is an optional TTF used for PNG exports.
	FontPath string
	// MaxUploadBytes caps video uploads. Zero means 200 MiB.
	MaxUploadBytes int64
}

type Server struct {
	Engine *gin.Engine
	cfg    Config
	http   *http.Server
	log    *logger.Logger
}

func New(cfg Config, svc *services.Services, pinger Pinger, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "briefy"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 200 << 20
	}
	log = log.With("component", "http")

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(cfg.ServiceName))
	engine.Use(RequestLogger(log))
	engine.Use(CORS(cfg.Origins))
	engine.MaxMultipartMemory = 32 << 20

	h := &handlers{svc: svc, pinger: pinger, cfg: cfg, log: log}
	registerRoutes(engine, h, RequireAuth(cfg.JWTSecret, log))

	return &Server{
		Engine: engine,
		cfg:    cfg,
		log:    log,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return s.http.Shutdown(shutdownCtx)
}
