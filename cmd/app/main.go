package main

import (
	"innkeeper/config"
	"innkeeper/di"
	"innkeeper/shared/logger"
)

// @title Innkeeper API
// @version 1.0
// @description Multi-tenant hotel management backend.
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
