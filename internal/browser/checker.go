package browser

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"slotchecker/pkg/config"
	"slotchecker/pkg/slots"
)

// Checker runs slot checks, one browser session per check
type Checker struct {
	cfg  config.Config
	gate *Gate
}

// NewChecker creates a checker bounded by the configured session cap
func NewChecker(cfg config.Config) *Checker {
	return &Checker{
		cfg:  cfg,
		gate: NewGate(cfg.MaxSessions, cfg.QueueTimeout),
	}
}

// CheckSlots performs one end-to-end availability check: launch, login,
// schedule navigation, in-page slot fetch, normalization. The session is torn
// down on every exit path.
func (c *Checker) CheckSlots(ctx context.Context, req slots.CheckRequest) (*slots.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := c.gate.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("no browser session available: %v", err)
	}
	defer c.gate.Release()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.CheckTimeout)
	defer cancel()

	startTime := time.Now()
	log.Println("Launching browser...")
	session, err := newSession(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.login(c.cfg, req.Username, req.Password); err != nil {
		return nil, err
	}
	log.Println("Logged in successfully")

	if err := session.openSchedule(c.cfg, req.Appd); err != nil {
		return nil, fmt.Errorf("❌ Failed to open schedule page: %v", err)
	}

	log.Println("Fetching slot data from API...")
	cacheString := strconv.FormatInt(time.Now().UnixMilli(), 10)
	payload, err := session.fetchScheduleEntries(c.cfg, req.Appd, cacheString)
	if err != nil {
		return nil, err
	}
	log.Println("API response received")

	if upstreamErr := upstreamFailure(payload); upstreamErr != nil {
		return nil, upstreamErr
	}

	found := slots.Normalize(payload)
	log.Printf("✓ Check complete: %d slots in %.1fs", len(found), time.Since(startTime).Seconds())

	return &slots.Result{
		Slots:     found,
		Total:     len(found),
		CheckedAt: time.Now().UTC(),
	}, nil
}

// upstreamFailure recognizes the sentinel error object produced by the in-page
// fetch when the slot API answered with a non-OK status or the request failed
func upstreamFailure(payload interface{}) *UpstreamError {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return nil
	}
	msg, ok := m["error"].(string)
	if !ok || msg == "" {
		return nil
	}
	status, _ := m["status"].(float64)
	return &UpstreamError{Status: int(status), Message: msg}
}
