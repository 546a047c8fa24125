package main

import (
	"rendezvous/config"
	"rendezvous/di"
	"rendezvous/shared/logger"
)

// @title Rendezvous API
// @version 1.0
// @description Truck appointment booking with QR entry credentials.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	http := di.InitializeService()
	http.Serve()
}
