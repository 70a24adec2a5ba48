package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/estilobarber/reservas-api/internal/config"
	dbpkg "github.com/estilobarber/reservas-api/internal/db"
	"github.com/estilobarber/reservas-api/internal/infra/payment"
	"github.com/estilobarber/reservas-api/internal/routes"
	"github.com/estilobarber/reservas-api/internal/wizard"
)

func main() {

	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	gateway, err := payment.NewMercadoPago(cfg.MercadoPagoToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init payment gateway")
	}

	store := wizard.NewStore(cfg.WizardSessionTTL)
	store.Start()
	defer store.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Redis:       rdb,
		Config:      cfg,
		Gateway:     gateway,
		WizardStore: store,
		Log:         logger,
	})

	logger.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
