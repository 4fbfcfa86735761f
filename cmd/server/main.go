package main

import (
	"log"
	"net/http"

	_ "tablebook/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"tablebook/internal/cache"
	"tablebook/internal/config"
	"tablebook/internal/db"
	"tablebook/internal/handler"
	"tablebook/internal/model"
	"tablebook/internal/repository"
	"tablebook/internal/router"
	"tablebook/internal/service"
)

// @title Restaurant Reservation API
// @version 1.0
// @description Restaurant table reservation API with duplicate-booking detection and an admin surface.
// @host localhost:3000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := gormDB.AutoMigrate(&model.Reservation{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	reservationRepo := repository.NewReservationRepository(gormDB)
	reservationService := service.NewReservationService(reservationRepo, cacheClient)
	reservationHandler := handler.NewReservationHandler(reservationService)

	router.Register(e, cfg, reservationHandler)

	addr := ":" + cfg.ServerPort
	log.Printf("Server running on port %s", cfg.ServerPort)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
