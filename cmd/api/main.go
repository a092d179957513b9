package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "proofreview-service/internal/adapter/http"
	appmw "proofreview-service/internal/adapter/middleware"
	"proofreview-service/internal/adapter/repository/mysql"
	"proofreview-service/internal/config"
	"proofreview-service/internal/infrastructure/cache"
	"proofreview-service/internal/infrastructure/db"
	"proofreview-service/internal/metrics"
	annotationUC "proofreview-service/internal/usecase/annotation"
	"proofreview-service/internal/usecase/review"
	"proofreview-service/internal/usecase/signoff"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	proofRepo := mysql.NewProofRepository(gdb)
	annotRepo := mysql.NewAnnotationRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	reviewUC := review.NewUsecase(proofRepo, annotRepo)
	annotsUC := annotationUC.NewUsecase(proofRepo, annotRepo)
	signoffUC := signoff.NewUsecase(proofRepo, uow)

	metrics.Register(prometheus.DefaultRegisterer)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	h := httpadp.NewHandler()
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// The review surface opts into idempotent replay via X-Request-Id on
	// mutating requests.
	e.Use(appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	ph := httpadp.NewProofHandler(reviewUC, annotsUC, signoffUC)
	ph.Register(e)

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
