package collab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAuditDrains(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := NewZapAudit(zap.New(core), 8)

	a.Record(AuditEvent{Actor: "alice", Action: "login", Outcome: "success"})
	a.Record(AuditEvent{Actor: "bob", Action: "login", Outcome: "failure"})
	a.Close()

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].ContextMap()["actor"])
	assert.Equal(t, "failure", entries[1].ContextMap()["outcome"])
}

func TestZapAuditFillsTimestamp(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := NewZapAudit(zap.New(core), 8)

	a.Record(AuditEvent{Actor: "alice", Action: "login", Outcome: "success"})
	a.Close()

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	at, ok := entries[0].ContextMap()["at"].(time.Time)
	require.True(t, ok)
	assert.False(t, at.IsZero())
}

// Record 满了也不会阻塞调用方
func TestZapAuditNeverBlocks(t *testing.T) {
	// 队列容量 1，没有消费者在跑之前塞满它
	a := &ZapAudit{
		ch:   make(chan AuditEvent, 1),
		log:  zap.NewNop(),
		done: make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			a.Record(AuditEvent{Action: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}
