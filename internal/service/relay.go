package service

import (
	"context"
	"time"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/domain"
)

type RelayResult struct {
	Target string `json:"target"`
	Body   string `json:"body"`
}

// Relay resolves a named target from startup config and fetches it with a
// hard deadline. A raw URL from a caller is unrepresentable here.
type Relay struct {
	targets map[string]string
	fetch   *collab.OutboundFetch
	timeout time.Duration
	audit   collab.AuditLog
}

func NewRelay(targets map[string]string, fetch *collab.OutboundFetch, timeout time.Duration, audit collab.AuditLog) *Relay {
	return &Relay{targets: targets, fetch: fetch, timeout: timeout, audit: audit}
}

func (r *Relay) Do(ctx context.Context, targetRef string) (RelayResult, error) {
	url, ok := r.targets[targetRef]
	if !ok {
		return RelayResult{}, domain.Validation("unknown relay target")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body, err := r.fetch.Get(ctx, url)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	r.audit.Record(collab.AuditEvent{Actor: "admin-token", Action: "relay." + targetRef, Outcome: outcome})
	if err != nil {
		return RelayResult{}, err
	}
	return RelayResult{Target: targetRef, Body: string(body)}, nil
}
