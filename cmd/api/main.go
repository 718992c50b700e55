package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brunovale/lead-exchange/internal/infra/database"
	"github.com/brunovale/lead-exchange/internal/infra/http/handlers"
	"github.com/brunovale/lead-exchange/internal/infra/http/middleware"
	"github.com/brunovale/lead-exchange/internal/infra/integration/checkout"
	"github.com/brunovale/lead-exchange/internal/infra/mail"
	"github.com/brunovale/lead-exchange/internal/infra/queue"
	"github.com/brunovale/lead-exchange/internal/infra/worker"
	"github.com/brunovale/lead-exchange/internal/pricing"
	"github.com/brunovale/lead-exchange/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "user"),
		envOr("RABBITMQ_PASS", "password"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Taxa de markup resolvida UMA vez; todas as superfícies usam essa.
	markup := pricing.Load()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	refundRepo := database.NewRefundRequestRepository(db)

	// 2. Gateways e Adapters
	gateway := checkout.NewClient(os.Getenv("CHECKOUT_API_KEY"), os.Getenv("CHECKOUT_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envIntOr("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "nao-responda@leadexchange.app"),
	)

	// 3. Workers
	mailWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go mailWorker.Start(queue.QueueName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	warningWorker := worker.NewAppointmentWarningWorker(db, producer)
	go warningWorker.Start(ctx)

	// 4. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, producer)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo)
	beginCheckoutUC := usecase.NewBeginCheckoutUseCase(
		leadRepo, gateway, markup,
		envOr("CHECKOUT_SUCCESS_URL", "https://app.leadexchange.app/checkout/success"),
		envOr("CHECKOUT_CANCEL_URL", "https://app.leadexchange.app/checkout/cancel"),
	)
	completeSaleUC := usecase.NewCompleteSaleUseCase(leadRepo, producer, markup)
	requestRefundUC := usecase.NewRequestRefundUseCase(leadRepo, refundRepo)
	adminUC := usecase.NewAdminUseCase(leadRepo, refundRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, updateLeadUC, adminUC, leadRepo, markup)
	checkoutHandler := handlers.NewCheckoutHandler(beginCheckoutUC)
	webhookHandler := handlers.NewWebhookHandler(completeSaleUC, os.Getenv("WEBHOOK_TOKEN"))
	refundHandler := handlers.NewRefundHandler(requestRefundUC, leadRepo)
	adminHandler := handlers.NewAdminHandler(adminUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, gateway)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhook/checkout", webhookHandler.Handle)

	auth := middleware.Auth(os.Getenv("JWT_SECRET"))
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/leads", leadHandler.List)
		r.Get("/leads/mine", leadHandler.Mine)
		r.Post("/leads", leadHandler.Create)
		r.Put("/leads/{id}", leadHandler.Update)
		r.Delete("/leads/{id}", leadHandler.Delete)

		r.Post("/checkout/{leadID}", checkoutHandler.Begin)
		r.Post("/checkout/{leadID}/cancel", checkoutHandler.Cancel)

		r.Post("/leads/{id}/refund-requests", refundHandler.Request)
		r.Get("/leads/{id}/refund-window", refundHandler.Window)

		r.Post("/admin/leads/{id}/paid", adminHandler.MarkPaid)
		r.Delete("/admin/leads/{id}", adminHandler.Delete)
		r.Post("/admin/refund-requests/{id}/approve", adminHandler.ApproveRefund)
		r.Post("/admin/refund-requests/{id}/deny", adminHandler.DenyRefund)
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server LeadExchange rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
