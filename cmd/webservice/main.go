package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"soulconnect/utils"
	"soulconnect/web/controllers"
	"soulconnect/web/db"
	"soulconnect/web/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	utils.LoadEnv()
}

func corsConfig() cors.Config {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowCredentials = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key"}
	return cfg
}

func main() {
	store, err := db.Connect(os.Getenv("DB"))
	if err != nil {
		log.Fatalln("Error connecting to the database:", err)
	}
	defer store.Close()

	if err := store.Sync(); err != nil {
		log.Fatalln("Error migrating the database:", err)
	}

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	globalLimiter := middleware.NewRateLimiter(60, time.Minute) // 60 requests/min/IP
	globalLimiter.StartCleanup(10 * time.Minute)
	r.Use(globalLimiter.Middleware())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Soul Connect server is running")
	})

	controllers.Register(r, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("Soul Connect server is listening on port " + port)
	r.Run(":" + port)
}
