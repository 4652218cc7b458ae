package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/config"
	"github.com/tridentevents/crm-api/internal/infra/database"
	"github.com/tridentevents/crm-api/internal/infra/http/handlers"
	"github.com/tridentevents/crm-api/internal/infra/http/middleware"
	"github.com/tridentevents/crm-api/internal/infra/mail"
	"github.com/tridentevents/crm-api/internal/infra/queue"
	"github.com/tridentevents/crm-api/internal/infra/worker"
	"github.com/tridentevents/crm-api/internal/usecase"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPUser, cfg.AMQPPass, cfg.AMQPHost, cfg.AMQPPort)
	if err != nil {
		logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	eventRepo := database.NewEventRepository(db)
	userRepo := database.NewUserRepository(db)
	entryRepo := database.NewTimeEntryRepository(db)

	// Gateways and adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	viewCache := handlers.NewViewCache(30 * time.Second)

	// Notification worker drains the queue and mails the sales inbox.
	notifier := &mail.SalesNotifier{Sender: mailSender, Inbox: cfg.SalesInbox}
	notifyWorker := queue.NewWorker(rabbitMQ.Ch, notifier, logger)
	go notifyWorker.Start(queue.QueueName)

	// Weekly follow-up digest.
	digest := worker.NewFollowUpDigest(leadRepo, mailSender, cfg.SalesInbox, logger)
	if err := digest.Start(cfg.DigestSchedule); err != nil {
		logger.Fatal("failed to schedule digest", zap.Error(err))
	}
	defer digest.Stop()

	// UseCases
	transitionUC := usecase.NewTransitionLeadUseCase(leadRepo, viewCache, logger)
	assignUC := usecase.NewAssignLeadUseCase(
		leadRepo, userRepo, usecase.NewLeadOwnerPolicy(cfg.LeadOwnerRoles), viewCache, logger)
	intakeUC := usecase.NewIntakeLeadUseCase(leadRepo, producer, viewCache, logger)
	clockUC := usecase.NewTimeClockUseCase(entryRepo, logger)
	timesheetUC := usecase.NewTimesheetUseCase(
		entryRepo, userRepo, cfg.DailyTargetHours, cfg.WeeklyTargetHours, logger)
	manageUserUC := usecase.NewManageUserUseCase(userRepo, logger)
	createEventUC := usecase.NewCreateEventUseCase(eventRepo, viewCache, logger)

	// Handlers
	leadHandler := handlers.NewLeadHandler(transitionUC, assignUC, leadRepo, viewCache, logger)
	webhookHandler := handlers.NewWebhookHandler(intakeUC, cfg.WebhookAllowedOrigins, logger)
	eventHandler := handlers.NewEventHandler(createEventUC, eventRepo, userRepo, viewCache, logger)
	clockHandler := handlers.NewTimeClockHandler(clockUC, timesheetUC, userRepo, logger)
	entriesHandler := handlers.NewTimeEntriesHandler(clockUC, timesheetUC, userRepo, logger)
	userHandler := handlers.NewUserHandler(manageUserUC, userRepo, logger)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Public intake webhook: the only unauthenticated write.
	r.Post("/leads/webhook", webhookHandler.Handle)
	r.Options("/leads/webhook", webhookHandler.HandlePreflight)

	// Staff API
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Get("/leads", leadHandler.HandleList)
		r.Patch("/leads/{leadID}/status", leadHandler.HandleUpdateStatus)
		r.Patch("/leads/{leadID}/assign", leadHandler.HandleAssign)

		r.Get("/events", eventHandler.HandleList)
		r.Post("/events", eventHandler.HandleCreate)

		r.Get("/time-clock", clockHandler.HandleStatus)
		r.Post("/time-clock", clockHandler.HandleAction)
		r.Get("/time-clock/team", clockHandler.HandleTeam)

		r.Get("/time-entries/me", entriesHandler.HandleMyWeek)
		r.Delete("/time-entries", entriesHandler.HandleBulkDelete)
		r.Patch("/time-entries", entriesHandler.HandleSetBreak)

		r.Patch("/admin/users/{userID}", userHandler.HandleUpdate)
		r.Delete("/admin/users/{userID}", userHandler.HandleDeactivate)
	})

	logger.Info("crm-api listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
