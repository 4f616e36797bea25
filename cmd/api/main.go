package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/iqac-report-api/internal/config"
	"github.com/noah-isme/iqac-report-api/internal/database"
	"github.com/noah-isme/iqac-report-api/internal/handler"
	"github.com/noah-isme/iqac-report-api/internal/middleware"
	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/render/document"
	"github.com/noah-isme/iqac-report-api/internal/render/workbook"
	"github.com/noah-isme/iqac-report-api/internal/report"
	"github.com/noah-isme/iqac-report-api/internal/repository"
	"github.com/noah-isme/iqac-report-api/internal/router"
	"github.com/noah-isme/iqac-report-api/internal/service"
	cloud "github.com/noah-isme/iqac-report-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, database.PostgresOptions{
		MaxConns:    cfg.DatabaseMaxConns,
		MaxLifetime: cfg.DatabaseMaxLifetime,
	}, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(models.Owned()...); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not set, department cache disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	var attachments service.AttachmentResolver
	if cfg.CloudinaryEnabled() {
		resolver, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		attachments = resolver
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	directoryRepo := repository.NewDirectoryRepository(db)
	reportRepo := repository.NewReportRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	departments := service.NewDepartmentCache(directoryRepo, redisClient, cfg.DepartmentCacheTTL, logger)
	builder := repository.NewRecordQueryBuilder(departments)
	aggregator := service.NewReportAggregator(reportRepo, builder, attachments, logger)
	activityService := service.NewActivityService(activityRepo, logger)
	pdfRenderer, err := document.NewRenderer(document.Options{
		Compress:    cfg.PDFCompression,
		RegularFont: cfg.PDFFontRegular,
		BoldFont:    cfg.PDFFontBold,
	}, logger)
	if err != nil {
		log.Fatalf("failed to load pdf fonts: %v", err)
	}

	reportService := service.NewReportService(
		departments,
		builder,
		aggregator,
		[]report.Renderer{
			pdfRenderer,
			workbook.NewRenderer(logger),
		},
		activityService,
		service.NewNATSReportPublisher(natsConn, cfg.NATSSubject, logger),
		service.ReportServiceConfig{
			Institution: cfg.InstitutionName,
			Subtitle:    cfg.InstitutionSubtitle,
			Timeout:     cfg.ReportTimeout,
		},
		logger,
	)

	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ReportTimeout + 30*time.Second,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ReportHandler:   handler.NewReportHandler(reportService, validate, logger),
		ActivityHandler: handler.NewActivityHandler(activityService, logger),
		HealthProbes:    probes,
		JWTMiddleware:   middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Msg("report api listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
