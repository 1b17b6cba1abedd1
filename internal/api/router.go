package api

import (
	"github.com/gorilla/mux"

	"slotchecker/pkg/config"
)

// NewRouter wires the public endpoints and the protected check endpoint
func NewRouter(cfg config.Config, checker SlotChecker) *mux.Router {
	h := NewHandler(checker)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/", h.Welcome).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Protected endpoints
	protected := r.NewRoute().Subrouter()
	protected.Use(BearerAuth(cfg.APISecret))
	protected.HandleFunc("/check-slots", h.CheckSlots).Methods("POST")

	return r
}
