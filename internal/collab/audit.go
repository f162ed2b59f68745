// Package collab holds the narrow interfaces to external capabilities, plus
// the default implementations wired in main.
package collab

import (
	"time"

	"go.uber.org/zap"
)

type AuditEvent struct {
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	Outcome string    `json:"outcome"`
	At      time.Time `json:"at"`
}

// AuditLog 只追加、不阻塞响应路径
type AuditLog interface {
	Record(ev AuditEvent)
}

// ZapAudit drains a bounded queue into zap. Record never blocks: when the
// queue is full the event is dropped and counted.
type ZapAudit struct {
	ch   chan AuditEvent
	log  *zap.Logger
	done chan struct{}
}

func NewZapAudit(log *zap.Logger, queueSize int) *ZapAudit {
	if queueSize <= 0 {
		queueSize = 1024
	}
	a := &ZapAudit{
		ch:   make(chan AuditEvent, queueSize),
		log:  log,
		done: make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *ZapAudit) Record(ev AuditEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	select {
	case a.ch <- ev:
	default:
		a.log.Warn("audit queue full, event dropped", zap.String("action", ev.Action))
	}
}

// Close flushes queued events and stops the drain goroutine.
func (a *ZapAudit) Close() {
	close(a.ch)
	<-a.done
}

func (a *ZapAudit) drain() {
	defer close(a.done)
	for ev := range a.ch {
		a.log.Info("audit",
			zap.String("actor", ev.Actor),
			zap.String("action", ev.Action),
			zap.String("outcome", ev.Outcome),
			zap.Time("at", ev.At),
		)
	}
}
