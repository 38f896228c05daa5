package web

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/signlingo/backend/internal/auth"
	"github.com/signlingo/backend/internal/config"
	"github.com/signlingo/backend/internal/database"
	"github.com/signlingo/backend/internal/leaderboard"
	lf "github.com/signlingo/backend/internal/logfield"
	"github.com/signlingo/backend/internal/signs"
	"github.com/signlingo/backend/internal/storage"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	db       *database.DataBase
	engine   *leaderboard.Engine
	verifier *auth.Verifier
	images   *storage.Client
	analyzer *signs.Analyzer

	ready *atomic.Bool
}

func newServer(
	config *config.Config,
	logger *zap.Logger,
	db *database.DataBase,
	engine *leaderboard.Engine,
	verifier *auth.Verifier,
	images *storage.Client,
	analyzer *signs.Analyzer,
) (*server, error) {
	return &server{
		config:   config,
		logger:   logger,
		db:       db,
		engine:   engine,
		verifier: verifier,
		images:   images,
		analyzer: analyzer,
		ready:    atomic.NewBool(false),
	}, nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-Id", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func (s *server) run() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(requestID())

	setupLeaderboardService(s, r)
	setupImagesService(s, r)
	if err := setupSignsService(s, r); err != nil {
		return err
	}
	setupProfileService(s, r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "SignLingo API is running!", "version": "1.0.0"})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})
	r.GET("/health", func(c *gin.Context) {
		if !s.ready.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "environment": s.config.Environment})
	})

	httpServer := &http.Server{
		Addr:    s.config.Server.ListenAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
		s.ready.Store(true)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		s.ready.Store(false)
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func (s *server) requestLogger(c *gin.Context) *zap.Logger {
	if id, ok := c.Get("request_id"); ok {
		return s.logger.With(lf.RequestID(id.(string)))
	}
	return s.logger
}
