package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/reservaa/hall-booking-service/config"
	"github.com/reservaa/hall-booking-service/internal/consumer"
	"github.com/reservaa/hall-booking-service/internal/handler"
	appmw "github.com/reservaa/hall-booking-service/internal/middleware"
	"github.com/reservaa/hall-booking-service/internal/notifier"
	"github.com/reservaa/hall-booking-service/internal/repository"
	"github.com/reservaa/hall-booking-service/internal/service"
	"github.com/reservaa/hall-booking-service/internal/worker"
	"github.com/reservaa/hall-booking-service/pkg/database"
	"github.com/reservaa/hall-booking-service/pkg/mailer"
	"github.com/reservaa/hall-booking-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	database.SeedHalls(db)

	// RabbitMQ: bookings publish notification messages, the consumer below
	// turns them into emails.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	hallRepo := repository.NewHallRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	workshopRepo := repository.NewWorkshopRepository(db)

	// Notification pipeline
	gateway := notifier.NewQueueGateway(publisher)
	mail := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		FromName: cfg.FromName,
	})
	consumer.NewNotificationConsumer(bookingRepo, mail).Start(msgs)

	// Services
	finder := service.NewSlotFinderService(bookingRepo)
	resched := service.NewRescheduleService(bookingRepo, facultyRepo, finder, gateway)
	bookingSvc := service.NewBookingService(bookingRepo, hallRepo, facultyRepo, resched, gateway)
	authSvc := service.NewAuthService(facultyRepo,
		service.StaticAdminCredentials{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash},
		gateway,
		service.AuthConfig{JWTSecret: cfg.JWTSecret, AppBaseURL: cfg.AppBaseURL})
	hallSvc := service.NewHallService(hallRepo, bookingRepo)
	workshopSvc := service.NewWorkshopService(workshopRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = appmw.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "hall-booking-service"})
	})

	auth := appmw.RequireAuth(authSvc)
	admin := appmw.RequireAdmin()

	handler.NewAuthHandler(authSvc).RegisterRoutes(e, auth)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, auth)
	handler.NewAdminHandler(authSvc, bookingSvc, finder).RegisterRoutes(e, auth, admin)
	handler.NewHallHandler(hallSvc).RegisterRoutes(e, auth, admin)
	handler.NewWorkshopHandler(workshopSvc).RegisterRoutes(e, auth)

	// Daily retention sweep for finished bookings.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.NewCleanupWorker(bookingRepo).Run(ctx)

	log.Printf("Hall Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
