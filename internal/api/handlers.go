package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"slotchecker/internal/browser"
	"slotchecker/pkg/slots"
)

// SlotChecker runs one availability check end to end
type SlotChecker interface {
	CheckSlots(ctx context.Context, req slots.CheckRequest) (*slots.Result, error)
}

type Handler struct {
	Checker SlotChecker
}

func NewHandler(checker SlotChecker) *Handler {
	return &Handler{Checker: checker}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Visa Slot Checker API!"))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// CheckSlots validates the request and hands it to the checker. Upstream
// errors (the site answered, unhappily) come back as 200 with success:false;
// orchestration failures come back as 500.
func (h *Handler) CheckSlots(w http.ResponseWriter, r *http.Request) {
	var req slots.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.Checker.CheckSlots(r.Context(), req)
	if err != nil {
		var upstream *browser.UpstreamError
		if errors.As(err, &upstream) {
			writeJSON(w, http.StatusOK, errorResponse{
				Error:   upstream.Error(),
				Message: "Failed to fetch slot data",
			})
			return
		}
		log.Printf("❌ Slot check failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Success:    true,
		Slots:      result.Slots,
		TotalSlots: result.Total,
		CheckedAt:  result.CheckedAt,
	})
}
