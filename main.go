package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "libris-backend/docs"
	"libris-backend/internal/catalog/authors"
	"libris-backend/internal/catalog/books"
	"libris-backend/internal/lending"
	"libris-backend/internal/platform/auth"
	"libris-backend/internal/platform/db"
)

// @title        Libris Library Management API
// @version      1.0.0
// @description  Library management backend: users, authors, books and borrow/return tracking.
// @BasePath     /api/v1

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description Enter: Bearer <token>

func main() {
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if mode != "dev" && mode != "release" {
		log.Fatal("config mode must be dev or release")
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("auth.secret must be set")
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	tokens := auth.NewTokenIssuer([]byte(cfg.Auth.Secret), time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	userStore := auth.NewStore(conn)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		origins := cfg.CORS.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Library API",
			"docs":    "/swagger/index.html",
		})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	auth.RegisterRoutes(api, auth.NewService(conn, tokens))

	protected := api.Group("")
	protected.Use(auth.RequireAuth(tokens, userStore))
	authors.RegisterRoutes(protected, authors.NewService(conn))
	books.RegisterRoutes(protected, books.NewService(conn))
	lending.RegisterRoutes(protected, lending.NewService(conn))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
