package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunovale/lead-exchange/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError traduz a taxonomia do core pra HTTP. ConflictError sai com
// código próprio pro front dizer "this lead was just purchased" em vez de
// erro genérico.
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *usecase.ValidationFailure:
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: "VALIDATION_ERROR", Error: e.Error()})
	case *usecase.GuardViolation:
		status := http.StatusForbidden
		if e.Code == "LEAD_NOT_FOUND" || e.Code == "REFUND_NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Code: e.Code, Error: e.Message})
	case *usecase.ConflictError:
		writeJSON(w, http.StatusConflict, errorResponse{Code: e.Code, Error: e.Message})
	case *usecase.CollaboratorFailure:
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: e.Code, Error: e.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Error: "internal error"})
	}
}
