package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/ustclug/tailr/pkg/metrics"
	"github.com/ustclug/tailr/pkg/model"
	"github.com/ustclug/tailr/pkg/utils"
)

type Server struct {
	e       *echo.Echo
	config  *Config
	db      *gorm.DB
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(configPath string) (*Server, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg *Config) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DbURL), os.ModePerm); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(cfg.DbURL), &gorm.Config{
		QueryFields: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// Concurrent writers on sqlite fail with "database is locked".
	sqlDB.SetMaxOpenConns(1)
	if err := model.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	if err := os.MkdirAll(cfg.LogDir, os.ModePerm); err != nil {
		return nil, err
	}
	logfile, err := os.OpenFile(filepath.Join(cfg.LogDir, "tailrd.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	slogger := utils.NewSlogger(logfile, cfg.Debug, cfg.LogLevel)
	if missing := utils.MissingDirs(cfg.SourceConfigDir...); len(missing) > 0 {
		slogger.Warn("Some source config dirs do not exist", slog.Any("dirs", missing))
	}
	s := Server{
		e:      echo.New(),
		db:     db,
		logger: slogger,
		config: cfg,
	}
	s.metrics = metrics.New(s.countSources)

	v := validator.New()
	s.e.Validator = echoValidator(v.Struct)
	s.e.Debug = cfg.Debug
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.Logger.SetOutput(io.Discard)

	// Middlewares.
	// The order matters.
	s.e.Use(middleware.RequestID())
	s.e.Use(setLogger(slogger))
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogURI:       true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.Int("status", v.Status),
				slog.String("uri", v.URI),
				slog.String("user_agent", v.UserAgent),
				slog.Duration("latency", v.Latency),
			}
			l := getLogger(c)
			l.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST", attrs...)
			return nil
		},
	}))

	s.registerAPIs(s.e)

	return &s, nil
}

func (s *Server) countSources() float64 {
	var n int64
	if err := s.db.Model(&model.Source{}).Count(&n).Error; err != nil {
		s.logger.Warn("Fail to count sources", utils.SlogErrAttr(err))
		return 0
	}
	return float64(n)
}

// ListenAddr returns the address the HTTP server is bound to, or an empty
// string before it starts listening.
func (s *Server) ListenAddr() string {
	addr := s.e.ListenerAddr()
	if addr == nil {
		return ""
	}
	return addr.String()
}

// Start serves the API until ctx is cancelled or the listener fails.
func (s *Server) Start(rootCtx context.Context) error {
	l := s.logger
	eg, ctx := errgroup.WithContext(rootCtx)

	eg.Go(func() error {
		l.Info("Running HTTP server", slog.String("addr", s.config.ListenAddr))
		if err := s.e.Start(s.config.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Fail to run HTTP server", utils.SlogErrAttr(err))
			return err
		}
		return nil
	})

	eg.Go(func() error {
		if err := s.reloadAllSources(ctx, l); err != nil {
			l.Warn("Fail to load sources", utils.SlogErrAttr(err))
		}
		<-ctx.Done()
		l.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		return s.e.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
