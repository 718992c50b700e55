package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/brunovale/lead-exchange/internal/infra/integration/checkout"
	"github.com/rabbitmq/amqp091-go"
)

// HealthHandler responde o estado das dependências que o marketplace não
// funciona sem: banco, broker de notificações e o gateway de checkout.
type HealthHandler struct {
	DB        *sql.DB
	Broker    *amqp091.Connection
	Gateway   *checkout.Client
	startedAt time.Time
}

func NewHealthHandler(db *sql.DB, broker *amqp091.Connection, gateway *checkout.Client) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Broker:    broker,
		Gateway:   gateway,
		startedAt: time.Now(),
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks"`
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": h.checkDatabase(r.Context()),
		"rabbitmq": h.checkBroker(),
		"checkout": h.checkGateway(),
	}

	status := "healthy"
	httpStatus := http.StatusOK
	for _, v := range checks {
		if v != "ok" && v != "not_configured" {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: status,
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
		Checks: checks,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) string {
	if h.DB == nil {
		return "not_configured"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkBroker() string {
	if h.Broker == nil {
		return "not_configured"
	}
	if h.Broker.IsClosed() {
		return "error: connection closed"
	}
	return "ok"
}

// checkGateway só olha a configuração do client: o provedor não expõe um
// ping barato, e abrir sessão de verdade cobraria alguém.
func (h *HealthHandler) checkGateway() string {
	if h.Gateway == nil || !h.Gateway.Configured() {
		return "not_configured"
	}
	return "ok"
}
