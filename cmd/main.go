package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/spoilme-vintage/store-api/internal/router"
	"github.com/spoilme-vintage/store-api/pkg/ai"
	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid engine configuration")
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	ai.InitializeAIService()
	router.InitEngine()
	router.InitializeRoutes(cfg)

	port := global.GetEnvOrDefault("PORT", "8000")
	logrus.WithField("port", port).Info("server starting")

	if err := router.Router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("failed to run server")
	}
}
