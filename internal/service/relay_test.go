package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/domain"
)

func TestRelayUnknownTarget(t *testing.T) {
	r := NewRelay(map[string]string{}, collab.NewOutboundFetch(time.Second), time.Second, &memAudit{})

	_, err := r.Do(context.Background(), "https://attacker.example.com/")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestRelaySuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	audit := &memAudit{}
	r := NewRelay(map[string]string{"status": ts.URL}, collab.NewOutboundFetch(time.Second), time.Second, audit)

	res, err := r.Do(context.Background(), "status")
	require.NoError(t, err)
	assert.Equal(t, "status", res.Target)
	assert.Equal(t, `{"ok":true}`, res.Body)

	evs := audit.all()
	require.Len(t, evs, 1)
	assert.Equal(t, "success", evs[0].Outcome)
}

func TestRelayUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	r := NewRelay(map[string]string{"status": ts.URL}, collab.NewOutboundFetch(time.Second), time.Second, &memAudit{})

	_, err := r.Do(context.Background(), "status")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExternal))
}

// 超时是硬上限，不是更长的等待
func TestRelayTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	r := NewRelay(map[string]string{"slow": ts.URL}, collab.NewOutboundFetch(50*time.Millisecond), 50*time.Millisecond, &memAudit{})

	start := time.Now()
	_, err := r.Do(context.Background(), "slow")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExternal))
	assert.Less(t, elapsed, 400*time.Millisecond)
}
