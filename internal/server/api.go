// Package server assembles the HTTP service: configuration, database
// bootstrap, route wiring and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"intertask/internal/ai"
	"intertask/internal/authmw"
	"intertask/internal/identity"
	"intertask/internal/logging"
	"intertask/internal/submissions"
	"intertask/internal/tasks"
)

var (
	config Config
	engine *gin.Engine
	pool   *pgxpool.Pool
)

func setCors() {
	corsconfig := cors.DefaultConfig()
	corsconfig.AllowOrigins = config.AllowedOrigins
	corsconfig.AllowMethods = config.AllowedMethods
	corsconfig.AllowHeaders = config.AllowedHeaders
	engine.Use(cors.New(corsconfig))
}

func setRoutes(auth *authmw.SessionAuth, aiClient *ai.Client) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	identity.RegisterRoutes(engine, auth)
	tasks.RegisterRoutes(engine, auth, aiClient)
	submissions.RegisterRoutes(engine, auth)
}

func InitAndServe(confPath string) {
	config = loadConfig(confPath)
	logging.Init("intertask", config.LogDir)

	engine = gin.Default()
	setGinMode(config.ApiGinMode)

	setCors()

	pool = initDBConn(config)
	identity.UsePool(pool)
	tasks.UsePool(pool)
	submissions.UsePool(pool)

	auth := authmw.NewSessionAuth([]byte(config.SessionSecret))
	aiClient := ai.NewClient(ai.Config{
		APIKey:  config.GeminiAPIKey,
		Model:   config.GeminiModel,
		Timeout: config.AITimeout,
	})

	setRoutes(auth, aiClient)

	// serve http
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           engine,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("listen: %s", err)
		}
	}()

	<-ctx.Done()

	stop()
	logging.Logger.Info("shutting down gracefully, press Ctrl+C again to force")

	// close db conn
	pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Logger.Fatalf("server forced to shutdown: %v", err)
	}

	logging.Logger.Info("server exiting")
}

func setGinMode(mode string) {
	switch strings.ToLower(mode) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
