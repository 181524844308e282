package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"travel-backend/config"
	"travel-backend/controllers"
	"travel-backend/logger"
	"travel-backend/routes"
	"travel-backend/services"
	"travel-backend/utils"
)

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Logging)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid logging configuration")
	}
	if envErr != nil {
		log.Info(".env not found; continuing with environment variables")
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set. Cannot issue admin sessions.")
	}

	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDatabase(cfg, log.Logger)
	if err != nil {
		log.WithError(err).Fatal("Database connect failed")
	}
	log.WithFields(logger.Fields{"driver": cfg.Database.Driver}).Info("Database connection established")

	// Initialize services
	mailer := utils.NewEnquiryMailer(cfg.Mail, log.Logger)
	packageService := services.NewPackageService(db)
	filterService := services.NewFilterOptionsService(db)
	packageWriter := services.NewPackageWriter(db)
	destinationService := services.NewDestinationService(db)
	currencyService := services.NewCurrencyService(db)
	enquiryService := services.NewEnquiryService(db, mailer, log)
	authService := services.NewAuthService(db, cfg.Auth)
	dashboardService := services.NewDashboardService(db)
	imageService := services.NewImageService(cfg.UploadDir)

	// Initialize controllers
	ctl := routes.Controllers{
		Packages:     controllers.NewPackageController(packageService, filterService, packageWriter, log),
		Destinations: controllers.NewDestinationController(destinationService, log),
		Currencies:   controllers.NewCurrencyController(currencyService, log),
		Enquiries:    controllers.NewEnquiryController(enquiryService, log),
		Admin:        controllers.NewAdminController(authService, dashboardService, imageService, log),
		Blogs:        controllers.NewContentController(services.NewBlogService(db), log, nil),
		Reviews:      controllers.NewContentController(services.NewReviewService(db), log, map[string]string{"packageId": "package_id", "featured": "is_featured", "approved": "is_approved"}),
		FAQs:         controllers.NewContentController(services.NewFAQService(db), log, map[string]string{"category": "category"}),
		Services:     controllers.NewContentController(services.NewServiceCatalog(db), log, nil),
		Seo:          controllers.NewContentController(services.NewSeoMetaService(db), log, nil),
	}

	router := routes.SetupRouter(cfg, log, ctl)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logger.Fields{"addr": addr}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped gracefully")
}
