package api

import (
	"encoding/json"
	"net/http"
	"time"

	"slotchecker/pkg/slots"
)

type checkResponse struct {
	Success    bool         `json:"success"`
	Slots      []slots.Slot `json:"slots"`
	TotalSlots int          `json:"totalSlots"`
	CheckedAt  time.Time    `json:"checkedAt"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
