package main

import (
	"bunkhouse/config"
	"bunkhouse/di"
	"bunkhouse/shared/logger"
)

// @title Bunkhouse API
// @version 1.0
// @description Hostel management backend: rooms, beds, bookings, housekeeping, and guest documents.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
