package server

import (
	"campus-discover/config"
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/logger"
	"campus-discover/internal/global/middleware"
	internalOtel "campus-discover/internal/global/otel"
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/sentry"
	"campus-discover/internal/global/storage"
	"campus-discover/internal/global/validate"
	"campus-discover/internal/module"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	validate.Init()
	database.Init()

	if err := sentry.Init(); err != nil {
		log.Warn("sentry disabled", "error", err)
	}

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	if err := storage.Init(); err != nil {
		log.Warn("image storage disabled", "error", err)
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(sentry.Middleware())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Campus Discover API is running",
		})
	})

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.ResponseBody{
			Error: response.ErrorBody{
				Message: "Route not found",
				Path:    c.Request.URL.Path,
			},
		})
	})

	srv := &http.Server{
		Addr:    config.Get().Host + ":" + config.Get().Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	sentry.Flush(2 * time.Second)
	if config.Get().OTel.Enable {
		if err := internalOtel.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown TracerProvider", "error", err)
		}
	}
}
