package main

import (
	"lead-market/pkg/config"
	app "lead-market/services/market/internal/app"
)

// @title           Lead Market API
// @version         1.0
// @description     Lead marketplace: lead publishing, purchases, provider payments, payouts and balance topups.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == config.DefaultJWTSecret || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}
	if cfg.PaymentWebhookSecret == "" {
		panic("PAYMENT_WEBHOOK_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
