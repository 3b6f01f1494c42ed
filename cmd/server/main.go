package main

import (
	"log"
	"os"
	"strings"

	"clickstore_back_end/internal/config"
	"clickstore_back_end/internal/database"
	"clickstore_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	clients, err := database.Connect()
	if err != nil {
		log.Fatal("❌ Échec connexion aux bases de données: ", err)
	}
	defer clients.Close()

	r := gin.Default()
	r.Use(corsMiddleware())

	routes.RegisterRoutes(r, clients)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Click Store lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur serveur: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
